package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// recentWindow ventana de "movimientos recientes" del dashboard.
const recentWindow = 7 * 24 * time.Hour

// LowStockReportGenerator genera la representación PDF del reporte de stock bajo.
type LowStockReportGenerator interface {
	GenerateLowStockReport(ctx context.Context, products []*repository.ProductRow, generatedAt time.Time) ([]byte, error)
}

// DashboardUseCase vistas derivadas de solo lectura: estadísticas, stock bajo y
// actividad reciente. Nunca muta el store.
type DashboardUseCase struct {
	statsRepo    repository.StatsRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	reportGen    LowStockReportGenerator
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	statsRepo repository.StatsRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	reportGen LowStockReportGenerator,
) *DashboardUseCase {
	return &DashboardUseCase{
		statsRepo:    statsRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		reportGen:    reportGen,
	}
}

// Stats calcula los contadores del dashboard. La ventana de movimientos
// recientes son los últimos 7 días respecto del reloj al momento de la llamada.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	result, err := uc.statsRepo.GetDashboardStats(ctx, time.Now().Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsDTO{
		TotalProducts:   result.TotalProducts,
		TotalCategories: result.TotalCategories,
		LowStockCount:   result.LowStockCount,
		TotalValue:      result.TotalValue,
		RecentMovements: result.RecentMovements,
	}, nil
}

// LowStock lista productos activos en o por debajo de su umbral, ordenados por
// cantidad ascendente.
func (uc *DashboardUseCase) LowStock(limit int) ([]dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.productRepo.ListLowStock(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProductResponse(row))
	}
	return out, nil
}

// LowStockReport genera el reporte PDF de productos con stock bajo.
func (uc *DashboardUseCase) LowStockReport(ctx context.Context) ([]byte, error) {
	rows, err := uc.productRepo.ListLowStock(0) // 0 = sin tope
	if err != nil {
		return nil, err
	}
	return uc.reportGen.GenerateLowStockReport(ctx, rows, time.Now())
}

// RecentActivities devuelve los últimos movimientos con referencias resueltas.
func (uc *DashboardUseCase) RecentActivities(limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.movementRepo.ListWithRefs("", limit, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.MovementResponse{
			ID:               row.Movement.ID,
			ProductID:        row.Movement.ProductID,
			ProductName:      row.ProductName,
			ProductSKU:       row.ProductSKU,
			Type:             row.Movement.Type,
			Quantity:         row.Movement.Quantity,
			PreviousQuantity: row.Movement.PreviousQuantity,
			NewQuantity:      row.Movement.NewQuantity,
			Reason:           row.Movement.Reason,
			Notes:            row.Movement.Notes,
			PerformedBy:      row.Movement.PerformedBy,
			PerformedByName:  row.PerformedByName,
			CreatedAt:        row.Movement.CreatedAt,
		})
	}
	return out, nil
}
