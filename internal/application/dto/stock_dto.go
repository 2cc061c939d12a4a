package dto

import "time"

// AdjustStockRequest body para POST /api/stock/adjust.
// Para stock_in/stock_out, Quantity es la magnitud del cambio (se toma su valor
// absoluto). Para adjustment, Quantity es el valor objetivo absoluto.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason" validate:"required"`
	Notes     string `json:"notes"`
}

// MovementResponse salida de un movimiento con referencias resueltas.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name,omitempty"`
	ProductSKU       string    `json:"product_sku,omitempty"`
	Type             string    `json:"type"`
	Quantity         int64     `json:"quantity"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Reason           string    `json:"reason"`
	Notes            string    `json:"notes,omitempty"`
	PerformedBy      *string   `json:"performed_by"`
	PerformedByName  string    `json:"performed_by_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// AdjustStockResponse salida de POST /api/stock/adjust: el movimiento creado
// y el producto ya mutado.
type AdjustStockResponse struct {
	Movement MovementResponse `json:"movement"`
	Product  ProductResponse  `json:"product"`
}

// MovementListRequest filtros para GET /api/stock/movements.
type MovementListRequest struct {
	PageRequest
	ProductID string `query:"product_id"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	PageResponse
}

// BulkAdjustItem una línea de ajuste masivo.
type BulkAdjustItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`
}

// BulkAdjustRequest body para POST /api/products/bulk-adjust.
type BulkAdjustRequest struct {
	Adjustments []BulkAdjustItem `json:"adjustments"`
}

// BulkAdjustResult resultado individual de una línea del ajuste masivo.
// NewQuantity solo viene en éxito; Message solo en fallo.
type BulkAdjustResult struct {
	ProductID   string `json:"product_id"`
	Success     bool   `json:"success"`
	NewQuantity *int64 `json:"new_quantity,omitempty"`
	Message     string `json:"message,omitempty"`
}

// BulkAdjustResponse agrega el resultado de cada línea; ninguna se omite.
type BulkAdjustResponse struct {
	Message string             `json:"message"`
	Results []BulkAdjustResult `json:"results"`
}
