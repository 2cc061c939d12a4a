package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
)

// StockHandler maneja las peticiones HTTP del motor de movimientos (protegido).
type StockHandler struct {
	uc *ledger.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajustar stock de un producto
// @Description  Aplica un stock_in, stock_out o adjustment y registra el movimiento.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Datos del ajuste"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id requerido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Type == "" || in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, type y reason son requeridos"})
	}
	out, err := h.uc.Adjust(c.UserContext(), userID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// BulkAdjust godoc
// @Summary      Ajustar stock de varios productos
// @Description  Procesa cada línea de forma independiente; un fallo no aborta el lote.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustRequest  true  "Líneas de ajuste"
// @Success      200   {object}  dto.BulkAdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/bulk-adjust [post]
func (h *StockHandler) BulkAdjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id requerido"})
	}
	var in dto.BulkAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Adjustments) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "adjustments es requerido"})
	}
	results, err := h.uc.BulkAdjust(c.UserContext(), userID, in.Adjustments)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.BulkAdjustResponse{
		Message: "Bulk adjustment completed",
		Results: results,
	})
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página (1-based)"  default(1)
// @Param        limit       query  int     false  "Tamaño de página"  default(10)
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200         {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListMovements(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
