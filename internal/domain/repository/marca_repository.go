package repository

import "github.com/lucasgiorgi95/stock-backend/internal/domain/entity"

// MarcaFilter filtros para listados de marcas.
type MarcaFilter struct {
	Search string // ILIKE sobre name y description
	Limit  int
	Offset int
}

// MarcaRepository puerto de persistencia para marcas, acotado por usuario.
type MarcaRepository interface {
	Create(marca *entity.Marca) error
	GetByID(ownerID, id string) (*entity.Marca, error)
	GetByName(ownerID, name string) (*entity.Marca, error)
	Update(marca *entity.Marca) error
	Delete(ownerID, id string) error
	List(ownerID string, f MarcaFilter) ([]*entity.Marca, int, error)
}
