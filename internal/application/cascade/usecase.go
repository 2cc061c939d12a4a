package cascade

import (
	"context"

	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// CascadeUseCase aplica la limpieza de registros dependientes al eliminar
// entidades padre:
//
//   - Product  → se eliminan sus StockMovements.
//   - Category → se eliminan sus Products y, transitivamente, los movimientos
//     de esos productos (cascade de segundo orden).
//   - User     → sus movimientos NO se eliminan: se anula performed_by y se
//     anexa una nota con el autor original, preservando la auditoría.
type CascadeUseCase struct {
	txRunner CascadeTxRunner
}

// NewCascadeUseCase construye el caso de uso.
func NewCascadeUseCase(txRunner CascadeTxRunner) *CascadeUseCase {
	return &CascadeUseCase{txRunner: txRunner}
}

// DeleteProduct elimina un producto y todos sus movimientos en una transacción.
// Verifica existencia antes de borrar nada, para no dejar eliminaciones huérfanas
// si el producto no existe.
func (uc *CascadeUseCase) DeleteProduct(ctx context.Context, id string) (*dto.DeleteProductResponse, error) {
	var deletedMovements int64
	err := uc.txRunner.RunCascade(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.CategoryRepository,
		_ repository.UserRepository,
	) error {
		product, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if deletedMovements, err = movementRepo.DeleteByProduct(id); err != nil {
			return err
		}
		_, err = productRepo.Delete(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteProductResponse{
		Message:          "Product and associated stock movements deleted successfully",
		DeletedMovements: deletedMovements,
	}, nil
}

// BulkDeleteProducts elimina un conjunto de productos y sus movimientos.
// Es una operación de conjunto: devuelve conteos, no resultados por ítem.
func (uc *CascadeUseCase) BulkDeleteProducts(ctx context.Context, ids []string) (*dto.BulkDeleteResponse, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var deletedProducts, deletedMovements int64
	err := uc.txRunner.RunCascade(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.CategoryRepository,
		_ repository.UserRepository,
	) error {
		var err error
		if deletedMovements, err = movementRepo.DeleteByProducts(ids); err != nil {
			return err
		}
		deletedProducts, err = productRepo.DeleteByIDs(ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.BulkDeleteResponse{
		Message:          "Bulk delete completed",
		DeletedProducts:  deletedProducts,
		DeletedMovements: deletedMovements,
	}, nil
}

// DeleteCategory elimina una categoría, sus productos y los movimientos de esos
// productos, todo en una transacción.
func (uc *CascadeUseCase) DeleteCategory(ctx context.Context, id string) (*dto.DeleteCategoryResponse, error) {
	var deletedProducts, deletedMovements int64
	err := uc.txRunner.RunCascade(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		categoryRepo repository.CategoryRepository,
		_ repository.UserRepository,
	) error {
		category, err := categoryRepo.GetByID(id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		// Los movimientos van primero: referencian productos que están por borrarse.
		if deletedMovements, err = movementRepo.DeleteByCategory(id); err != nil {
			return err
		}
		if deletedProducts, err = productRepo.DeleteByCategory(id); err != nil {
			return err
		}
		_, err = categoryRepo.Delete(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteCategoryResponse{
		Message:          "Category and associated products deleted successfully",
		DeletedProducts:  deletedProducts,
		DeletedMovements: deletedMovements,
	}, nil
}

// DeleteUser elimina un usuario preservando su rastro en el ledger: anula
// performed_by en sus movimientos y anexa una nota con el id original.
// actorID es la identidad del actor (explícita); borrarse a sí mismo está
// prohibido.
func (uc *CascadeUseCase) DeleteUser(ctx context.Context, actorID, id string) (*dto.DeleteUserResponse, error) {
	if actorID == id {
		return nil, domain.ErrInvalidOperation
	}
	var updatedMovements int64
	err := uc.txRunner.RunCascade(ctx, func(
		_ repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.CategoryRepository,
		userRepo repository.UserRepository,
	) error {
		user, err := userRepo.GetByID(id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		note := "User deleted - original user: " + id
		if updatedMovements, err = movementRepo.DetachUser(id, note); err != nil {
			return err
		}
		_, err = userRepo.Delete(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteUserResponse{
		Message:          "User deleted successfully",
		UpdatedMovements: updatedMovements,
	}, nil
}
