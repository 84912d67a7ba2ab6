package repository

import (
	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
)

// ProductFilter filtros para listados de productos.
type ProductFilter struct {
	Search string // ILIKE sobre code, name y description
	Limit  int
	Offset int
}

// ProductRepository puerto de persistencia para productos. Toda consulta está
// acotada al usuario dueño (ownerID); Get* devuelve (nil, nil) si el producto
// no existe o pertenece a otro usuario.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(ownerID, id string) (*entity.Product, error)
	GetByCode(ownerID, code string) (*entity.Product, error)
	Update(product *entity.Product) error
	// SoftDelete marca el producto como inactivo; nunca borra la fila.
	SoftDelete(ownerID, id string) error
	List(ownerID string, f ProductFilter) ([]*entity.Product, int, error)
	// ListLowStock lista productos activos con stock <= min_stock.
	ListLowStock(ownerID string, limit, offset int) ([]*entity.Product, int, error)
	SearchByCode(ownerID, code string, limit int) ([]*entity.Product, error)
	CountBySupplier(ownerID, supplierID string) (int, error)
	CountByMarca(ownerID, marcaID string) (int, error)

	// GetForUpdate carga el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(ownerID, id string) (*entity.Product, error)
	// UpdateStock escribe la caché de stock. Reservado al motor de ledger.
	UpdateStock(id string, stock decimal.Decimal) error
}
