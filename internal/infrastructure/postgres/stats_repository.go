package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura del dashboard.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetDashboardStats calcula todos los contadores en una sola consulta con
// subqueries escalares. El valor total es Σ quantity × unit_price sobre
// productos activos.
func (r *StatsRepo) GetDashboardStats(ctx context.Context, since time.Time) (repository.DashboardStatsResult, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE is_active),
			(SELECT COUNT(*) FROM categories WHERE is_active),
			(SELECT COUNT(*) FROM products WHERE is_active AND quantity <= low_stock_threshold),
			(SELECT COALESCE(SUM(quantity * unit_price), 0) FROM products WHERE is_active),
			(SELECT COUNT(*) FROM stock_movements WHERE created_at >= $1)`
	var result repository.DashboardStatsResult
	err := r.q.QueryRow(ctx, query, since).Scan(
		&result.TotalProducts,
		&result.TotalCategories,
		&result.LowStockCount,
		&result.TotalValue,
		&result.RecentMovements,
	)
	if err != nil {
		return repository.DashboardStatsResult{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return result, nil
}
