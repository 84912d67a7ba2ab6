package entity

import "time"

// User representa un usuario del sistema. Todas las entidades del catálogo
// y del ledger pertenecen a un usuario (owner scoping).
type User struct {
	ID           string
	Username     string // único, siempre en minúsculas
	Email        string // único, siempre en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsActive     bool   // desactivación lógica; nunca se borra físicamente
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
