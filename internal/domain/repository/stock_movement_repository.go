package repository

import "github.com/tu-usuario/stockcontrol-api/internal/domain/entity"

// MovementRow movimiento con sus referencias resueltas para display.
// PerformedByName queda vacío si PerformedBy es nil (usuario eliminado).
type MovementRow struct {
	Movement        entity.StockMovement
	ProductName     string
	ProductSKU      string
	PerformedByName string
}

// StockMovementRepository define el puerto de persistencia para el ledger de
// movimientos (DIP). Los movimientos son append-only: no hay Update individual;
// las únicas mutaciones posteriores son las de los cascades (DeleteBy*, DetachUser).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetWithRefs(id string) (*MovementRow, error)
	// ListWithRefs lista movimientos del más reciente al más antiguo.
	// productID vacío = todos los productos.
	ListWithRefs(productID string, limit, offset int) ([]*MovementRow, error)
	Count(productID string) (int64, error)
	DeleteByProduct(productID string) (int64, error)
	DeleteByProducts(productIDs []string) (int64, error)
	// DeleteByCategory elimina los movimientos de todos los productos de la categoría
	// (cascade de segundo orden al borrar una categoría).
	DeleteByCategory(categoryID string) (int64, error)
	// DetachUser anula performed_by en los movimientos del usuario y anexa note
	// al campo notes, preservando el rastro de auditoría. Devuelve filas afectadas.
	DetachUser(userID, note string) (int64, error)
}
