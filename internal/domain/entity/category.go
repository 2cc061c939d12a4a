package entity

import "time"

// Category representa una categoría de productos.
// Name es único en todo el sistema (1..50 caracteres).
type Category struct {
	ID          string
	Name        string
	Description string // 0..200 caracteres
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
