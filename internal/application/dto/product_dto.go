package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
)

// CreateProductRequest cuerpo de POST /api/v1/products.
type CreateProductRequest struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Stock       *decimal.Decimal `json:"stock"`
	MinStock    *decimal.Decimal `json:"minStock"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    string           `json:"imageUrl"`
	SupplierID  *string          `json:"supplierId"`
	MarcaID     *string          `json:"marcaId"`
}

// UpdateProductRequest cuerpo de PUT /api/v1/products/:id. Campos nil no se tocan.
type UpdateProductRequest struct {
	Code        *string          `json:"code"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	MinStock    *decimal.Decimal `json:"minStock"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	SupplierID  *string          `json:"supplierId"`
	MarcaID     *string          `json:"marcaId"`
	IsActive    *bool            `json:"isActive"`
}

// ProductResponse representación JSON de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	SupplierID  *string         `json:"supplier_id,omitempty"`
	MarcaID     *string         `json:"marca_id,omitempty"`
	IsActive    bool            `json:"is_active"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse convierte la entidad a su representación JSON.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		SupplierID:  p.SupplierID,
		MarcaID:     p.MarcaID,
		IsActive:    p.IsActive,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses convierte un slice de entidades.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}
