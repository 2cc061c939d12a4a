package cascade

import (
	"context"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// CascadeTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita la limpieza referencial. Cada cascade (borrar
// producto, categoría o usuario) es una sola unidad lógica: o se aplica completo
// o se revierte completo.
type CascadeTxRunner interface {
	RunCascade(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		categoryRepo repository.CategoryRepository,
		userRepo repository.UserRepository,
	) error) error
}
