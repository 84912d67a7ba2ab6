package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only del dashboard sobre PostgreSQL.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// CountProducts cuenta los productos activos del usuario.
func (r *DashboardRepo) CountProducts(ctx context.Context, ownerID string) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM products WHERE user_id = $1 AND is_active = true`, ownerID)
}

// CountLowStock cuenta productos activos con stock <= min_stock.
func (r *DashboardRepo) CountLowStock(ctx context.Context, ownerID string) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM products WHERE user_id = $1 AND is_active = true AND stock <= min_stock`, ownerID)
}

// CountOutOfStock cuenta productos activos sin existencias.
func (r *DashboardRepo) CountOutOfStock(ctx context.Context, ownerID string) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM products WHERE user_id = $1 AND is_active = true AND stock = 0`, ownerID)
}

func (r *DashboardRepo) count(ctx context.Context, query, ownerID string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}
	return n, nil
}
