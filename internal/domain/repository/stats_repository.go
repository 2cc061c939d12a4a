package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResult resultado crudo de la consulta de estadísticas.
// Lo produce la DB; el use case lo convierte en DTO.
type DashboardStatsResult struct {
	TotalProducts   int64
	TotalCategories int64
	LowStockCount   int64
	TotalValue      decimal.Decimal // Σ quantity × unit_price sobre productos activos
	RecentMovements int64           // movimientos creados desde `since`
}

// StatsRepository define las consultas de lectura del dashboard.
// Las implementaciones son read-only (no modifican datos).
type StatsRepository interface {
	// GetDashboardStats calcula los contadores del dashboard en una sola pasada.
	// since acota la ventana de movimientos recientes (típicamente now-7d).
	GetDashboardStats(ctx context.Context, since time.Time) (DashboardStatsResult, error)
}
