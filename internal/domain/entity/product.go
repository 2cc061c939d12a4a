package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity solo se modifica a través del motor de movimientos; cada cambio
// queda registrado como un StockMovement (ambos en la misma transacción).
type Product struct {
	ID                string
	Name              string // 1..100 caracteres
	SKU               string // único, siempre en mayúsculas
	Description       string // 0..500 caracteres
	CategoryID        string
	Quantity          int64           // nunca negativo
	LowStockThreshold int64           // mínimo 1, por defecto 10
	UnitPrice         decimal.Decimal // >= 0
	Location          string
	Barcode           string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral de stock
// bajo. Atributo derivado: se calcula, no se almacena.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
