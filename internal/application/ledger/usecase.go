// Package ledger contiene el motor del ledger de stock: el único componente
// autorizado a escribir products.stock, siempre en la misma transacción que
// crea el movimiento correspondiente.
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/domain"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

// UseCase registra movimientos de stock de forma transaccional, con bloqueo de
// fila (SELECT FOR UPDATE) sobre el producto y Commit/Rollback.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewUseCase construye el motor de ledger.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, movementRepo: movementRepo}
}

// MovementInput entrada para RecordMovement.
type MovementInput struct {
	UserID    string
	ProductID string
	Type      string // entrada | salida
	Quantity  decimal.Decimal
	Reason    string
	Reference string
	Notes     string
}

// MovementResult movimiento creado más el stock resultante.
type MovementResult struct {
	Movement *entity.StockMovement
	NewStock decimal.Decimal
}

// RecordMovement crea un movimiento y actualiza el stock del producto en una sola
// transacción. Para salidas, falla con InsufficientStockError si la cantidad supera
// el stock disponible; la verificación se hace con la fila bloqueada, de modo que
// dos salidas concurrentes no pueden pasar el chequeo a la vez.
func (uc *UseCase) RecordMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	// Verificar que el producto exista y pertenezca al usuario
	product, err := uc.productRepo.GetByID(in.UserID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *MovementResult

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto; el stock leído aquí es el vigente
		p, err := productRepo.GetForUpdate(in.UserID, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}

		var newStock decimal.Decimal
		switch in.Type {
		case entity.MovementTypeEntrada:
			newStock = p.Stock.Add(in.Quantity)
		case entity.MovementTypeSalida:
			if p.Stock.LessThan(in.Quantity) {
				return &domain.InsufficientStockError{Available: p.Stock, Requested: in.Quantity}
			}
			newStock = p.Stock.Sub(in.Quantity)
		}

		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    in.ProductID,
			UserID:       in.UserID,
			Type:         in.Type,
			Quantity:     in.Quantity,
			Reason:       in.Reason,
			Reference:    strings.TrimSpace(in.Reference),
			Notes:        strings.TrimSpace(in.Notes),
			MovementDate: now,
			CreatedAt:    now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(p.ID, newStock); err != nil {
			return err
		}
		result = &MovementResult{Movement: mov, NewStock: newStock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustInput entrada para AdjustStockTo.
type AdjustInput struct {
	UserID    string
	ProductID string
	Target    decimal.Decimal // stock objetivo; se recorta a >= 0
	Reason    string
	Notes     string
}

// AdjustResult resultado del ajuste. Con Delta cero no se crea ningún movimiento.
type AdjustResult struct {
	ProductName   string
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Delta         decimal.Decimal
	Kind          string // entrada | salida | "" si no hubo cambio
}

// AdjustStockTo fija el stock en un objetivo arbitrario registrando el movimiento
// equivalente (entrada si el objetivo supera el stock actual, salida si es menor)
// con is_adjustment = true. Si el objetivo coincide con el stock actual no se
// escribe nada y se devuelve un resultado con Delta cero.
func (uc *UseCase) AdjustStockTo(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	target := in.Target
	if target.LessThan(decimal.Zero) {
		target = decimal.Zero
	}

	product, err := uc.productRepo.GetByID(in.UserID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *AdjustResult

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		p, err := productRepo.GetForUpdate(in.UserID, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}

		delta := target.Sub(p.Stock)
		if delta.IsZero() {
			result = &AdjustResult{
				ProductName:   p.Name,
				PreviousStock: p.Stock,
				NewStock:      p.Stock,
				Delta:         decimal.Zero,
			}
			return nil
		}

		kind := entity.MovementTypeEntrada
		if delta.IsNegative() {
			kind = entity.MovementTypeSalida
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    in.ProductID,
			UserID:       in.UserID,
			Type:         kind,
			Quantity:     delta.Abs(),
			Reason:       "Ajuste de inventario: " + in.Reason,
			Notes:        strings.TrimSpace(in.Notes),
			MovementDate: now,
			IsAdjustment: true,
			CreatedAt:    now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(p.ID, target); err != nil {
			return err
		}
		result = &AdjustResult{
			ProductName:   p.Name,
			PreviousStock: p.Stock,
			NewStock:      target,
			Delta:         delta,
			Kind:          kind,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LedgerFilter filtros del historial. EndDate es inclusivo del día completo.
type LedgerFilter struct {
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
}

// LedgerPage página del historial de un producto más los totales agregados.
type LedgerPage struct {
	Movements  []*entity.StockMovement
	Summary    dto.LedgerSummary
	Pagination dto.Pagination
}

// GetLedger devuelve el historial de movimientos de un producto ordenado por fecha
// descendente, paginado, con totales de entrada, salida y saldo del conjunto filtrado.
func (uc *UseCase) GetLedger(ctx context.Context, ownerID, productID string, f LedgerFilter, page dto.PageRequest) (*LedgerPage, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if f.Type != "" && !entity.ValidMovementType(f.Type) {
		return nil, domain.ErrInvalidInput
	}
	page.Normalize()

	product, err := uc.productRepo.GetByID(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	rf := repository.MovementFilter{
		Type:      f.Type,
		StartDate: f.StartDate,
	}
	// La fecha final incluye el día completo: se pasa al repo como límite exclusivo
	if f.EndDate != nil {
		end := f.EndDate.AddDate(0, 0, 1)
		rf.EndDate = &end
	}

	movements, total, err := uc.movementRepo.ListByProduct(ctx, productID, rf, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	entrada, salida, err := uc.movementRepo.Summary(ctx, productID, rf)
	if err != nil {
		return nil, err
	}

	return &LedgerPage{
		Movements: movements,
		Summary: dto.LedgerSummary{
			Entrada: entrada,
			Salida:  salida,
			Saldo:   entrada.Sub(salida),
		},
		Pagination: dto.NewPagination(total, page),
	}, nil
}
