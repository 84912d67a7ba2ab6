package entity

import "time"

// Supplier representa un proveedor. Name es único por usuario (case-insensitive).
type Supplier struct {
	ID        string
	UserID    string
	Name      string
	Contact   string
	Phone     string
	Email     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
