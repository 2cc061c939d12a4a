package repository

import "github.com/tu-usuario/stockcontrol-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListActive() ([]*entity.Category, error)
	// Delete elimina la categoría y devuelve cuántas filas fueron borradas (0 o 1).
	Delete(id string) (int64, error)
}
