package ledger

import (
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

// overdrawPolicy decide qué pasa cuando el resultado de un movimiento sería negativo.
type overdrawPolicy int

const (
	// floorAtZero trunca el resultado en 0 (ruta de ajuste individual).
	floorAtZero overdrawPolicy = iota
	// rejectOverdraw rechaza la línea con ErrInsufficientStock (ruta masiva).
	rejectOverdraw
)

// applyMovement es el único punto de cálculo de cantidades, compartido por las
// dos rutas de ajuste (individual y masiva):
//
//	stock_in:   previous + |quantity|
//	stock_out:  previous - |quantity|
//	adjustment: quantity (valor objetivo absoluto)
//
// Si el resultado queda por debajo de 0 se aplica la política indicada.
func applyMovement(movType string, previous, quantity int64, policy overdrawPolicy) (int64, error) {
	var next int64
	switch movType {
	case entity.MovementTypeStockIn:
		next = previous + abs64(quantity)
	case entity.MovementTypeStockOut:
		next = previous - abs64(quantity)
	case entity.MovementTypeAdjustment:
		next = quantity
	default:
		return 0, domain.ErrInvalidInput
	}
	if next < 0 {
		if policy == rejectOverdraw {
			return 0, domain.ErrInsufficientStock
		}
		next = 0
	}
	return next, nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
