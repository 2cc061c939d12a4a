package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=200"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (campos opcionales).
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeleteCategoryResponse resultado del cascade al borrar una categoría.
type DeleteCategoryResponse struct {
	Message          string `json:"message"`
	DeletedProducts  int64  `json:"deleted_products"`
	DeletedMovements int64  `json:"deleted_movements"`
}
