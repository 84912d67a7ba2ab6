package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
)

// ValidMovementType indica si el tipo es uno de los dos admitidos.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSalida
}

// StockMovement es una entrada inmutable del ledger de stock: una vez creada
// nunca se actualiza ni se elimina. Quantity siempre es positiva; el signo lo
// da Type.
type StockMovement struct {
	ID           string
	ProductID    string
	UserID       string
	Type         string // entrada | salida
	Quantity     decimal.Decimal // > 0
	Reason       string
	Reference    string
	Notes        string
	MovementDate time.Time
	IsAdjustment bool // true cuando nace de un ajuste manual de inventario
	CreatedAt    time.Time
}

// Signed devuelve la cantidad con signo: positiva para entradas, negativa para salidas.
func (m *StockMovement) Signed() decimal.Decimal {
	if m.Type == MovementTypeSalida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
