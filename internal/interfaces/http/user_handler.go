package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockcontrol-api/internal/application/cascade"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/usecase"
)

// UserHandler administración de usuarios (solo admin).
type UserHandler struct {
	uc        *usecase.UserUseCase
	cascadeUC *cascade.CascadeUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, cascadeUC *cascade.CascadeUseCase) *UserHandler {
	return &UserHandler{uc: uc, cascadeUC: cascadeUC}
}

// List godoc
// @Summary      Listar usuarios activos
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateUserRequest
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
// @Summary      Eliminar usuario preservando su rastro en el ledger
// @Description  Los movimientos del usuario no se eliminan: se desvincula el autor
// @Description  y se anexa una nota con el id original. Auto-borrado prohibido.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.DeleteUserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	actorID := GetUserID(c)
	out, err := h.cascadeUC.DeleteUser(c.UserContext(), actorID, id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
