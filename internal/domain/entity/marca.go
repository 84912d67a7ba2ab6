package entity

import "time"

// Marca representa una marca de producto. Name es único por usuario (case-insensitive).
type Marca struct {
	ID          string
	UserID      string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
