package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock umbral de stock bajo cuando el producto no define uno.
var DefaultMinStock = decimal.NewFromInt(5)

// Product representa un producto del inventario.
//
// Stock es una caché materializada del ledger de movimientos: en todo momento
// debe ser igual a Σ(entradas) − Σ(salidas) del producto. Solo el motor de
// ledger (internal/application/ledger) puede escribirlo.
type Product struct {
	ID          string
	UserID      string
	Code        string // único por usuario
	Name        string
	Description string
	Stock       decimal.Decimal // siempre >= 0
	MinStock    decimal.Decimal // umbral de stock bajo
	Price       decimal.Decimal
	ImageURL    string
	SupplierID  *string
	MarcaID     *string
	IsActive    bool // borrado lógico
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}

// IsOutOfStock indica si el producto no tiene existencias.
func (p *Product) IsOutOfStock() bool {
	return p.Stock.IsZero()
}
