package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// LedgerUseCase aplica ajustes de cantidad sobre productos y registra cada uno
// como un StockMovement, de forma transaccional con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback.
//
// Política de sobregiro: la ruta individual (Adjust) trunca en 0 los stock_out
// que exceden la existencia; la ruta masiva (BulkAdjust) rechaza la línea con
// "Insufficient stock". Ambas comparten el mismo punto de cálculo (applyMovement).
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Adjust aplica un ajuste de stock a un producto y devuelve el movimiento creado
// (con producto y usuario resueltos) más el producto ya mutado (con categoría).
// performedBy es la identidad del actor, siempre explícita; nunca se lee de
// estado ambiente.
func (uc *LedgerUseCase) Adjust(ctx context.Context, performedBy string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.ProductID == "" || strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}

	mov, err := uc.adjustOne(ctx, performedBy, in.ProductID, in.Type, in.Quantity, in.Reason, in.Notes, floorAtZero)
	if err != nil {
		return nil, err
	}

	// Lecturas post-commit para resolver referencias de display.
	movRow, err := uc.movementRepo.GetWithRefs(mov.ID)
	if err != nil {
		return nil, err
	}
	prodRow, err := uc.productRepo.GetWithCategory(in.ProductID)
	if err != nil {
		return nil, err
	}
	if movRow == nil || prodRow == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.AdjustStockResponse{
		Movement: toMovementResponse(movRow),
		Product:  toProductResponse(prodRow),
	}, nil
}

// BulkAdjust procesa cada línea de forma independiente; un fallo por línea no
// aborta el lote y ninguna línea se omite del resultado. Cada línea corre en su
// propia transacción con la misma lógica de mutación + movimiento que Adjust,
// pero rechazando resultados negativos.
func (uc *LedgerUseCase) BulkAdjust(ctx context.Context, performedBy string, items []dto.BulkAdjustItem) ([]dto.BulkAdjustResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	results := make([]dto.BulkAdjustResult, 0, len(items))
	for _, item := range items {
		mov, err := uc.adjustOne(ctx, performedBy, item.ProductID, item.Type, item.Quantity, item.Reason, "", rejectOverdraw)
		if err != nil {
			results = append(results, dto.BulkAdjustResult{
				ProductID: item.ProductID,
				Success:   false,
				Message:   bulkFailureMessage(err),
			})
			continue
		}
		newQty := mov.NewQuantity
		results = append(results, dto.BulkAdjustResult{
			ProductID:   item.ProductID,
			Success:     true,
			NewQuantity: &newQty,
		})
	}
	return results, nil
}

// adjustOne ejecuta un ajuste dentro de una transacción: bloquea la fila del
// producto, calcula la nueva cantidad, la persiste y crea el movimiento. Las dos
// escrituras se confirman o revierten juntas.
func (uc *LedgerUseCase) adjustOne(
	ctx context.Context,
	performedBy, productID, movType string,
	quantity int64,
	reason, notes string,
	policy overdrawPolicy,
) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del producto: serializa ajustes concurrentes y fija
		// previousQuantity de forma consistente.
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		previous := product.Quantity
		next, err := applyMovement(movType, previous, quantity, policy)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(productID, next); err != nil {
			return err
		}
		performer := performedBy
		mov = &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        productID,
			Type:             movType,
			Quantity:         abs64(quantity),
			PreviousQuantity: previous,
			NewQuantity:      next,
			Reason:           reason,
			Notes:            notes,
			PerformedBy:      &performer,
			CreatedAt:        time.Now(),
		}
		return movementRepo.Create(mov)
	})
	if err != nil {
		return nil, classifyTxErr(err)
	}
	return mov, nil
}

// ListMovements lista el ledger del más reciente al más antiguo, con producto y
// usuario resueltos. productID vacío = todos.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	rows, err := uc.movementRepo.ListWithRefs(in.ProductID, in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.Count(in.ProductID)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Movements:    make([]dto.MovementResponse, 0, len(rows)),
		PageResponse: dto.NewPageResponse(total, in.Page, in.Limit),
	}
	for _, row := range rows {
		out.Movements = append(out.Movements, toMovementResponse(row))
	}
	return out, nil
}

// classifyTxErr deja pasar los errores de dominio tal cual y marca cualquier otro
// fallo dentro de la transacción como conflicto de persistencia.
func classifyTxErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInsufficientStock):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
}

// bulkFailureMessage traduce el error de una línea al mensaje reportado en el
// resultado del lote.
func bulkFailureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Product not found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid adjustment type"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "Insufficient stock"
	default:
		return "Adjustment failed"
	}
}

func toMovementResponse(row *repository.MovementRow) dto.MovementResponse {
	m := row.Movement
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductName:      row.ProductName,
		ProductSKU:       row.ProductSKU,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		Notes:            m.Notes,
		PerformedBy:      m.PerformedBy,
		PerformedByName:  row.PerformedByName,
		CreatedAt:        m.CreatedAt,
	}
}

func toProductResponse(row *repository.ProductRow) dto.ProductResponse {
	p := row.Product
	return dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		CategoryName:      row.CategoryName,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		UnitPrice:         p.UnitPrice,
		Location:          p.Location,
		Barcode:           p.Barcode,
		IsLowStock:        p.IsLowStock(),
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
