// Package dashboard genera el resumen read-only de stock del usuario.
package dashboard

import (
	"context"
	"fmt"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

const recentMovements = 5 // movimientos en el widget del dashboard

// UseCase calcula los contadores del dashboard y los movimientos recientes.
// Función pura del estado actual del catálogo y del ledger; sin efectos.
type UseCase struct {
	dashboardRepo repository.DashboardRepository
	movementRepo  repository.StockMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(dashboardRepo repository.DashboardRepository, movementRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{dashboardRepo: dashboardRepo, movementRepo: movementRepo}
}

// Summary construye el DashboardResponse para el usuario indicado.
// Las cuatro consultas se lanzan en paralelo.
func (uc *UseCase) Summary(ctx context.Context, ownerID string) (*dto.DashboardResponse, error) {
	type countResult struct {
		n   int
		err error
	}
	type movementsResult struct {
		movements []dto.MovementResponse
		err       error
	}

	totalCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	outCh := make(chan countResult, 1)
	recentCh := make(chan movementsResult, 1)

	go func() {
		n, err := uc.dashboardRepo.CountProducts(ctx, ownerID)
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountLowStock(ctx, ownerID)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountOutOfStock(ctx, ownerID)
		outCh <- countResult{n, err}
	}()
	go func() {
		movements, err := uc.movementRepo.ListRecent(ctx, ownerID, recentMovements)
		recentCh <- movementsResult{dto.ToMovementResponses(movements), err}
	}()

	total := <-totalCh
	low := <-lowCh
	out := <-outCh
	recent := <-recentCh

	if total.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", total.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("dashboard: sin stock: %w", out.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recent.err)
	}

	return &dto.DashboardResponse{
		TotalProducts:   total.n,
		LowStockCount:   low.n,
		OutOfStockCount: out.n,
		RecentMovements: recent.movements,
	}, nil
}
