package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts   int64           `json:"total_products"`
	TotalCategories int64           `json:"total_categories"`
	LowStockCount   int64           `json:"low_stock_products"`
	TotalValue      decimal.Decimal `json:"total_value"` // Σ quantity × unit_price (activos)
	RecentMovements int64           `json:"recent_movements"` // últimos 7 días
}
