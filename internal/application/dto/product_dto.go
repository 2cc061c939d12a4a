package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=100"`
	SKU               string          `json:"sku" validate:"required"`
	Description       string          `json:"description" validate:"max=500"`
	CategoryID        string          `json:"category_id" validate:"required"`
	Quantity          int64           `json:"quantity" validate:"min=0"`
	LowStockThreshold int64           `json:"low_stock_threshold" validate:"omitempty,min=1"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Location          string          `json:"location"`
	Barcode           string          `json:"barcode"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Quantity:
// la cantidad solo cambia vía movimientos de stock).
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=100"`
	SKU               *string          `json:"sku"`
	Description       *string          `json:"description" validate:"omitempty,max=500"`
	CategoryID        *string          `json:"category_id"`
	LowStockThreshold *int64           `json:"low_stock_threshold" validate:"omitempty,min=1"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	Location          *string          `json:"location"`
	Barcode           *string          `json:"barcode"`
	IsActive          *bool            `json:"is_active"`
}

// ProductResponse salida de un producto con su categoría resuelta.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Description       string          `json:"description"`
	CategoryID        string          `json:"category_id"`
	CategoryName      string          `json:"category_name,omitempty"`
	Quantity          int64           `json:"quantity"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Location          string          `json:"location,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	IsLowStock        bool            `json:"is_low_stock"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListRequest filtros de consulta para el listado de productos.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"category"`
	LowStock   bool   `query:"low_stock"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	PageResponse
}

// DeleteProductResponse resultado del cascade al borrar un producto.
type DeleteProductResponse struct {
	Message          string `json:"message"`
	DeletedMovements int64  `json:"deleted_movements"`
}

// BulkDeleteRequest body para POST /api/products/bulk-delete.
type BulkDeleteRequest struct {
	ProductIDs []string `json:"product_ids"`
}

// BulkDeleteResponse resultado de la operación de conjunto.
type BulkDeleteResponse struct {
	Message          string `json:"message"`
	DeletedProducts  int64  `json:"deleted_products"`
	DeletedMovements int64  `json:"deleted_movements"`
}
