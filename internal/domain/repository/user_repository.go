package repository

import "github.com/lucasgiorgi95/stock-backend/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
// Los métodos Find* devuelven (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// FindByIdentifier busca por email o username (case-insensitive).
	FindByIdentifier(identifier string) (*entity.User, error)
	// FindByEmailOrUsername devuelve un usuario existente con ese email o username, si lo hay.
	FindByEmailOrUsername(email, username string) (*entity.User, error)
}
