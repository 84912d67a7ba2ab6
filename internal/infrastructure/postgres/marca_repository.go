package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucasgiorgi95/stock-backend/internal/domain"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

var _ repository.MarcaRepository = (*MarcaRepo)(nil)

const marcaColumns = `id, user_id, name, description, is_active, created_at, updated_at`

// MarcaRepo implementación del puerto MarcaRepository sobre PostgreSQL.
type MarcaRepo struct {
	pool *pgxpool.Pool
}

// NewMarcaRepository construye el adaptador de persistencia para marcas.
func NewMarcaRepository(pool *pgxpool.Pool) *MarcaRepo {
	return &MarcaRepo{pool: pool}
}

// Create persiste una nueva marca.
func (r *MarcaRepo) Create(marca *entity.Marca) error {
	query := `
		INSERT INTO marcas (` + marcaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		marca.ID, marca.UserID, marca.Name, marca.Description, marca.IsActive,
		marca.CreatedAt, marca.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert marca: %w", err)
	}
	return nil
}

// GetByID obtiene una marca por ID, acotada al usuario dueño.
func (r *MarcaRepo) GetByID(ownerID, id string) (*entity.Marca, error) {
	query := `SELECT ` + marcaColumns + ` FROM marcas WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id, ownerID))
}

// GetByName busca por nombre exacto case-insensitive, acotado al usuario dueño.
func (r *MarcaRepo) GetByName(ownerID, name string) (*entity.Marca, error) {
	query := `SELECT ` + marcaColumns + ` FROM marcas WHERE user_id = $1 AND lower(name) = lower($2)`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, ownerID, name))
}

// Update actualiza una marca existente.
func (r *MarcaRepo) Update(marca *entity.Marca) error {
	query := `
		UPDATE marcas SET name = $3, description = $4, is_active = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		marca.ID, marca.UserID, marca.Name, marca.Description, marca.IsActive, marca.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update marca: %w", err)
	}
	return nil
}

// Delete elimina una marca. La guarda de productos asociados vive en el caso de uso.
func (r *MarcaRepo) Delete(ownerID, id string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM marcas WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete marca: %w", err)
	}
	return nil
}

// List lista marcas del usuario con búsqueda y paginación, ordenadas por nombre.
func (r *MarcaRepo) List(ownerID string, f repository.MarcaFilter) ([]*entity.Marca, int, error) {
	where := `WHERE user_id = $1`
	args := []any{ownerID}
	if f.Search != "" {
		where += ` AND (name ILIKE $2 OR description ILIKE $2)`
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(context.Background(), `SELECT count(*) FROM marcas `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count marcas: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+marcaColumns+` FROM marcas %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list marcas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Marca
	for rows.Next() {
		var m entity.Marca
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan marca: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

func (r *MarcaRepo) scanOne(row pgx.Row) (*entity.Marca, error) {
	var m entity.Marca
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get marca: %w", err)
	}
	return &m, nil
}
