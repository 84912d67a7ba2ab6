package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/domain"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, code, name, description, stock, min_stock, price, image_url, supplier_id, marca_id, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, product.Code, product.Name, product.Description,
		product.Stock, product.MinStock, product.Price, product.ImageURL,
		product.SupplierID, product.MarcaID, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, acotado al usuario dueño.
func (r *ProductRepo) GetByID(ownerID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, ownerID))
}

// GetByCode obtiene un producto por code exacto, acotado al usuario dueño.
func (r *ProductRepo) GetByCode(ownerID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ownerID, code))
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
// Reservado al motor de ledger, dentro de una transacción.
func (r *ProductRepo) GetForUpdate(ownerID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, ownerID))
}

// Update actualiza un producto existente. El stock no se toca por esta vía.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET code = $3, name = $4, description = $5, min_stock = $6, price = $7,
		    image_url = $8, supplier_id = $9, marca_id = $10, is_active = $11, updated_at = $12
		WHERE id = $1 AND user_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, product.Code, product.Name, product.Description,
		product.MinStock, product.Price, product.ImageURL, product.SupplierID,
		product.MarcaID, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe la caché de stock (usado por el motor de ledger).
func (r *ProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// SoftDelete marca el producto como inactivo.
func (r *ProductRepo) SoftDelete(ownerID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = false, updated_at = now() WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	return nil
}

// List lista productos activos del usuario con búsqueda y paginación.
func (r *ProductRepo) List(ownerID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := `WHERE user_id = $1 AND is_active = true`
	args := []any{ownerID}
	if f.Search != "" {
		where += ` AND (code ILIKE $2 OR name ILIKE $2 OR description ILIKE $2)`
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListLowStock lista productos activos con stock <= min_stock.
func (r *ProductRepo) ListLowStock(ownerID string, limit, offset int) ([]*entity.Product, int, error) {
	where := `WHERE user_id = $1 AND is_active = true AND stock <= min_stock`

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM products `+where, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count low stock: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products ` + where + ` ORDER BY stock ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	list, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// SearchByCode busca productos activos cuyo code contenga el texto indicado.
func (r *ProductRepo) SearchByCode(ownerID, code string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE user_id = $1 AND is_active = true AND code ILIKE $2
		ORDER BY code ASC LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, "%"+code+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search products by code: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// CountBySupplier cuenta productos activos que referencian al proveedor.
func (r *ProductRepo) CountBySupplier(ownerID, supplierID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE user_id = $1 AND supplier_id = $2 AND is_active = true`,
		ownerID, supplierID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by supplier: %w", err)
	}
	return n, nil
}

// CountByMarca cuenta productos activos que referencian a la marca.
func (r *ProductRepo) CountByMarca(ownerID, marcaID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE user_id = $1 AND marca_id = $2 AND is_active = true`,
		ownerID, marcaID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by marca: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Code, &p.Name, &p.Description, &p.Stock, &p.MinStock,
		&p.Price, &p.ImageURL, &p.SupplierID, &p.MarcaID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) scanAll(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Code, &p.Name, &p.Description, &p.Stock, &p.MinStock,
			&p.Price, &p.ImageURL, &p.SupplierID, &p.MarcaID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
