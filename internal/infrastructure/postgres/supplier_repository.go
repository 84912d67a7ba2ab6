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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, user_id, name, contact, phone, email, address, is_active, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepo {
	return &SupplierRepo{pool: pool}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		supplier.ID, supplier.UserID, supplier.Name, supplier.Contact, supplier.Phone,
		supplier.Email, supplier.Address, supplier.IsActive, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID, acotado al usuario dueño.
func (r *SupplierRepo) GetByID(ownerID, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id, ownerID))
}

// GetByName busca por nombre exacto case-insensitive, acotado al usuario dueño.
func (r *SupplierRepo) GetByName(ownerID, name string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE user_id = $1 AND lower(name) = lower($2)`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, ownerID, name))
}

// Update actualiza un proveedor existente.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $3, contact = $4, phone = $5, email = $6, address = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2`
	_, err := r.pool.Exec(context.Background(), query,
		supplier.ID, supplier.UserID, supplier.Name, supplier.Contact, supplier.Phone,
		supplier.Email, supplier.Address, supplier.IsActive, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Delete elimina un proveedor. La guarda de productos asociados vive en el caso de uso.
func (r *SupplierRepo) Delete(ownerID, id string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM suppliers WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

// List lista proveedores del usuario con búsqueda y paginación, ordenados por nombre.
func (r *SupplierRepo) List(ownerID string, f repository.SupplierFilter) ([]*entity.Supplier, int, error) {
	where := `WHERE user_id = $1`
	args := []any{ownerID}
	if f.Search != "" {
		where += ` AND (name ILIKE $2 OR contact ILIKE $2 OR email ILIKE $2)`
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(context.Background(), `SELECT count(*) FROM suppliers `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+supplierColumns+` FROM suppliers %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Contact, &s.Phone, &s.Email,
			&s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

func (r *SupplierRepo) scanOne(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Contact, &s.Phone, &s.Email,
		&s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}
