package repository

import "github.com/tu-usuario/stockcontrol-api/internal/domain/entity"

// ProductFilter filtros para el listado de productos.
// Search se compara contra name, sku y description (el caller la normaliza).
type ProductFilter struct {
	Search       string
	CategoryID   string
	LowStockOnly bool
	Limit        int
	Offset       int
}

// ProductRow producto con su categoría resuelta para display.
type ProductRow struct {
	Product      entity.Product
	CategoryName string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando su fila (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; serializa los ajustes
	// concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity actualiza solo la cantidad (usado por el motor de movimientos).
	UpdateQuantity(id string, quantity int64) error
	GetWithCategory(id string) (*ProductRow, error)
	List(filter ProductFilter) ([]*ProductRow, error)
	Count(filter ProductFilter) (int64, error)
	// ListLowStock devuelve productos activos con quantity <= low_stock_threshold,
	// ordenados por cantidad ascendente.
	ListLowStock(limit int) ([]*ProductRow, error)
	Delete(id string) (int64, error)
	DeleteByIDs(ids []string) (int64, error)
	DeleteByCategory(categoryID string) (int64, error)
}
