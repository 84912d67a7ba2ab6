package repository

import "github.com/lucasgiorgi95/stock-backend/internal/domain/entity"

// SupplierFilter filtros para listados de proveedores.
type SupplierFilter struct {
	Search string // ILIKE sobre name, contact y email
	Limit  int
	Offset int
}

// SupplierRepository puerto de persistencia para proveedores, acotado por usuario.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(ownerID, id string) (*entity.Supplier, error)
	// GetByName busca por nombre exacto case-insensitive.
	GetByName(ownerID, name string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(ownerID, id string) error
	List(ownerID string, f SupplierFilter) ([]*entity.Supplier, int, error)
}
