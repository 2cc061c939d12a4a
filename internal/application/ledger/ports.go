package ledger

import (
	"context"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de stock:
// la mutación del producto y el alta del movimiento se confirman o revierten
// como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
