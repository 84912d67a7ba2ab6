package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
)

// InsufficientStockError detalla una salida rechazada: stock disponible vs cantidad solicitada.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s", e.Available, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DependentsError indica una eliminación bloqueada por registros dependientes.
type DependentsError struct {
	Resource string // "producto", "proveedor", "marca"
	Count    int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("no se puede eliminar el %s porque tiene %d registros asociados", e.Resource, e.Count)
}

// Unwrap permite errors.Is(err, ErrConflict).
func (e *DependentsError) Unwrap() error { return ErrConflict }
