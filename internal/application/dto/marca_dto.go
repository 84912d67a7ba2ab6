package dto

import (
	"time"

	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
)

// CreateMarcaRequest cuerpo de POST /api/v1/marcas.
type CreateMarcaRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateMarcaRequest cuerpo de PUT /api/v1/marcas/:id. Campos nil no se tocan.
type UpdateMarcaRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// MarcaResponse representación JSON de una marca.
type MarcaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToMarcaResponse convierte la entidad a su representación JSON.
func ToMarcaResponse(m *entity.Marca) MarcaResponse {
	return MarcaResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToMarcaResponses convierte un slice de entidades.
func ToMarcaResponses(list []*entity.Marca) []MarcaResponse {
	out := make([]MarcaResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMarcaResponse(m))
	}
	return out
}
