package dto

// DashboardResponse respuesta de GET /api/v1/stock/dashboard.
type DashboardResponse struct {
	TotalProducts   int                `json:"total_products"`
	LowStockCount   int                `json:"low_stock_count"`
	OutOfStockCount int                `json:"out_of_stock_count"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}
