package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos de un producto.
// EndDate es exclusivo: el caso de uso normaliza la fecha final sumando un día.
type MovementFilter struct {
	Type      string // entrada | salida | "" (todos)
	StartDate *time.Time
	EndDate   *time.Time
}

// StockMovementRepository puerto de persistencia del ledger. Los movimientos
// son append-only: no existe Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, f MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
	// Summary devuelve la suma de entradas y de salidas del conjunto filtrado.
	Summary(ctx context.Context, productID string, f MovementFilter) (entrada, salida decimal.Decimal, err error)
	CountByProduct(productID string) (int, error)
	ListRecent(ctx context.Context, ownerID string, limit int) ([]*entity.StockMovement, error)
}
