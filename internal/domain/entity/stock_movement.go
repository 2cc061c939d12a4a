package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeStockIn    = "stock_in"   // entrada
	MovementTypeStockOut   = "stock_out"  // salida
	MovementTypeAdjustment = "adjustment" // ajuste a valor absoluto
)

// ValidMovementType indica si s es uno de los tres tipos enumerados.
func ValidMovementType(s string) bool {
	switch s {
	case MovementTypeStockIn, MovementTypeStockOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement es el registro de auditoría de un cambio de cantidad sobre un
// producto. Es inmutable una vez creado: nunca se actualiza; solo se elimina en
// bloque cuando se borra su producto, o se anula PerformedBy al borrar su usuario.
//
// Invariante: (PreviousQuantity, NewQuantity) debe coincidir con la cantidad del
// producto inmediatamente antes y después de la operación que lo generó.
type StockMovement struct {
	ID               string
	ProductID        string
	Type             string // stock_in, stock_out, adjustment
	Quantity         int64  // magnitud absoluta del cambio, > 0
	PreviousQuantity int64
	NewQuantity      int64
	Reason           string
	Notes            string
	PerformedBy      *string // UserID; nil si el usuario fue eliminado
	CreatedAt        time.Time
}
