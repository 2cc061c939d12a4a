package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockcontrol-api/internal/application/cascade"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP para Category (protegido).
type CategoryHandler struct {
	uc        *usecase.CategoryUseCase
	cascadeUC *cascade.CascadeUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, cascadeUC *cascade.CascadeUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc, cascadeUC: cascadeUC}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar categorías activas
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría con sus productos y movimientos
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.DeleteCategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.cascadeUC.DeleteCategory(c.UserContext(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
