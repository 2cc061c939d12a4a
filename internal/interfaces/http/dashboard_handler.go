package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/usecase"
)

// DashboardHandler vistas derivadas de solo lectura (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de productos"  default(10)
// @Success      200    {array}  dto.ProductResponse
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	out, err := h.uc.LowStock(limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// LowStockReport godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/low-stock/report [get]
func (h *DashboardHandler) LowStockReport(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.LowStockReport(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	filename := fmt.Sprintf("stock-bajo-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// RecentActivities godoc
// @Summary      Movimientos recientes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de movimientos"  default(10)
// @Success      200    {array}  dto.MovementResponse
// @Router       /api/dashboard/recent-activities [get]
func (h *DashboardHandler) RecentActivities(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	out, err := h.uc.RecentActivities(limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
