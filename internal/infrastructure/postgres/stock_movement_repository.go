package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, user_id, type, quantity, reason, reference, notes, movement_date, is_adjustment, created_at`

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: los movimientos nunca se actualizan ni se eliminan.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del ledger.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.UserID, movement.Type, movement.Quantity,
		movement.Reason, movement.Reference, movement.Notes, movement.MovementDate,
		movement.IsAdjustment, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// movementWhere construye la cláusula WHERE del filtro del historial.
func movementWhere(productID string, f repository.MovementFilter) (string, []any) {
	where := `WHERE product_id = $1`
	args := []any{productID}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		where += fmt.Sprintf(` AND movement_date >= $%d`, len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		where += fmt.Sprintf(` AND movement_date < $%d`, len(args))
	}
	return where, args
}

// ListByProduct devuelve una página del historial ordenado por fecha descendente más el total.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	where, args := movementWhere(productID, f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+movementColumns+` FROM stock_movements %s ORDER BY movement_date DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Reason,
			&m.Reference, &m.Notes, &m.MovementDate, &m.IsAdjustment, &m.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// Summary devuelve la suma de entradas y de salidas del conjunto filtrado.
func (r *StockMovementRepo) Summary(ctx context.Context, productID string, f repository.MovementFilter) (decimal.Decimal, decimal.Decimal, error) {
	where, args := movementWhere(productID, f)
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE type = 'entrada'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'salida'), 0)
		FROM stock_movements ` + where
	var entrada, salida decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&entrada, &salida); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("movement summary: %w", err)
	}
	return entrada, salida, nil
}

// CountByProduct cuenta los movimientos de un producto (guarda de borrado).
func (r *StockMovementRepo) CountByProduct(productID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return n, nil
}

// ListRecent devuelve los últimos movimientos del usuario.
func (r *StockMovementRepo) ListRecent(ctx context.Context, ownerID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Reason,
			&m.Reference, &m.Notes, &m.MovementDate, &m.IsAdjustment, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
