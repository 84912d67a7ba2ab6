package repository

import "context"

// DashboardRepository consultas read-only para el dashboard de stock.
type DashboardRepository interface {
	CountProducts(ctx context.Context, ownerID string) (int, error)
	// CountLowStock cuenta productos activos con stock <= min_stock.
	CountLowStock(ctx context.Context, ownerID string) (int, error)
	CountOutOfStock(ctx context.Context, ownerID string) (int, error)
}
