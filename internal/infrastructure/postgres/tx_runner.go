package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/stockcontrol-api/internal/application/cascade"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and cascade.CascadeTxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ cascade.CascadeTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Es el límite de atomicidad del motor de stock: mutación de producto + alta de
// movimiento se confirman juntas o no se confirma ninguna.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(productRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCascade inicia una transacción con los repos que necesita la limpieza
// referencial (borrado de productos, categorías y usuarios).
func (r *TxRunner) RunCascade(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	movementRepo := NewStockMovementRepository(tx)
	categoryRepo := NewCategoryRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(productRepo, movementRepo, categoryRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
