package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria compartido por los fakes
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products     map[string]*entity.Product
	categoryName map[string]string // categoryID -> name
	userName     map[string]string // userID -> name
	movements    []*entity.StockMovement

	failCreateMovement bool // fuerza un fallo dentro de la tx para probar rollback
}

func newMemStore() *memStore {
	return &memStore{
		products:     make(map[string]*entity.Product),
		categoryName: make(map[string]string),
		userName:     make(map[string]string),
	}
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) GetWithCategory(id string) (*repository.ProductRow, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &repository.ProductRow{Product: *p, CategoryName: r.s.categoryName[p.CategoryID]}, nil
}

func (r *fakeProductRepo) List(repository.ProductFilter) ([]*repository.ProductRow, error) {
	return nil, nil
}
func (r *fakeProductRepo) Count(repository.ProductFilter) (int64, error)   { return 0, nil }
func (r *fakeProductRepo) ListLowStock(int) ([]*repository.ProductRow, error) { return nil, nil }
func (r *fakeProductRepo) Delete(string) (int64, error)                    { return 0, nil }
func (r *fakeProductRepo) DeleteByIDs([]string) (int64, error)             { return 0, nil }
func (r *fakeProductRepo) DeleteByCategory(string) (int64, error)          { return 0, nil }

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if r.s.failCreateMovement {
		return errors.New("insert falló")
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetWithRefs(id string) (*repository.MovementRow, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return r.toRow(m), nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListWithRefs(productID string, limit, offset int) ([]*repository.MovementRow, error) {
	var out []*repository.MovementRow
	// Del más reciente al más antiguo.
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, r.toRow(m))
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMovementRepo) Count(productID string) (int64, error) {
	var n int64
	for _, m := range r.s.movements {
		if productID == "" || m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovementRepo) DeleteByProduct(string) (int64, error)   { return 0, nil }
func (r *fakeMovementRepo) DeleteByProducts([]string) (int64, error) { return 0, nil }
func (r *fakeMovementRepo) DeleteByCategory(string) (int64, error)  { return 0, nil }
func (r *fakeMovementRepo) DetachUser(string, string) (int64, error) { return 0, nil }

func (r *fakeMovementRepo) toRow(m *entity.StockMovement) *repository.MovementRow {
	row := &repository.MovementRow{Movement: *m}
	if p, ok := r.s.products[m.ProductID]; ok {
		row.ProductName = p.Name
		row.ProductSKU = p.SKU
	}
	if m.PerformedBy != nil {
		row.PerformedByName = r.s.userName[*m.PerformedBy]
	}
	return row
}

// fakeTxRunner imita la semántica transaccional: snapshot del estado antes del
// callback y restauración completa si devuelve error.
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	snapProducts := make(map[string]*entity.Product, len(t.s.products))
	for id, p := range t.s.products {
		cp := *p
		snapProducts[id] = &cp
	}
	snapMovements := append([]*entity.StockMovement(nil), t.s.movements...)

	err := fn(&fakeProductRepo{s: t.s}, &fakeMovementRepo{s: t.s})
	if err != nil {
		t.s.products = snapProducts
		t.s.movements = snapMovements
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	actorID   = "user-1"
	productID = "prod-1"
)

func newFixture() (*memStore, *ledger.LedgerUseCase) {
	s := newMemStore()
	s.categoryName["cat-1"] = "Bebidas"
	s.userName[actorID] = "Ana Admin"
	s.products[productID] = &entity.Product{
		ID:                productID,
		Name:              "Café Molido",
		SKU:               "CAF-001",
		CategoryID:        "cat-1",
		Quantity:          5,
		LowStockThreshold: 10,
		IsActive:          true,
	}
	uc := ledger.NewLedgerUseCase(&fakeTxRunner{s: s}, &fakeProductRepo{s: s}, &fakeMovementRepo{s: s})
	return s, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_StockInMutaProductoYRegistraMovimiento(t *testing.T) {
	s, uc := newFixture()

	out, err := uc.Adjust(context.Background(), actorID, dto.AdjustStockRequest{
		ProductID: productID,
		Type:      "stock_in",
		Quantity:  20,
		Reason:    "Compra a proveedor",
		Notes:     "lote 42",
	})
	require.NoError(t, err)

	// Producto mutado: 5 + 20 = 25.
	assert.Equal(t, int64(25), out.Product.Quantity)
	assert.Equal(t, "Bebidas", out.Product.CategoryName)
	assert.False(t, out.Product.IsLowStock, "25 > umbral 10")

	// Movimiento consistente con la mutación.
	mov := out.Movement
	assert.Equal(t, "stock_in", mov.Type)
	assert.Equal(t, int64(20), mov.Quantity)
	assert.Equal(t, int64(5), mov.PreviousQuantity)
	assert.Equal(t, int64(25), mov.NewQuantity)
	assert.Equal(t, "Compra a proveedor", mov.Reason)
	assert.Equal(t, "lote 42", mov.Notes)
	require.NotNil(t, mov.PerformedBy)
	assert.Equal(t, actorID, *mov.PerformedBy)
	assert.Equal(t, "Ana Admin", mov.PerformedByName)
	assert.Equal(t, "Café Molido", mov.ProductName)
	assert.Equal(t, "CAF-001", mov.ProductSKU)

	// El store también quedó mutado.
	assert.Equal(t, int64(25), s.products[productID].Quantity)
	require.Len(t, s.movements, 1)
}

func TestAdjust_StockOutTruncaEnCero(t *testing.T) {
	s, uc := newFixture()
	s.products[productID].Quantity = 3

	out, err := uc.Adjust(context.Background(), actorID, dto.AdjustStockRequest{
		ProductID: productID,
		Type:      "stock_out",
		Quantity:  10,
		Reason:    "Merma",
	})
	require.NoError(t, err)

	// La ruta individual trunca: 3 - 10 → 0, nunca negativo.
	assert.Equal(t, int64(0), out.Product.Quantity)
	assert.Equal(t, int64(3), out.Movement.PreviousQuantity)
	assert.Equal(t, int64(0), out.Movement.NewQuantity)
	assert.True(t, out.Product.IsLowStock)
}

func TestAdjust_AdjustmentFijaValorObjetivo(t *testing.T) {
	_, uc := newFixture()

	out, err := uc.Adjust(context.Background(), actorID, dto.AdjustStockRequest{
		ProductID: productID,
		Type:      "adjustment",
		Quantity:  42,
		Reason:    "Inventario físico",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.Product.Quantity)
	assert.Equal(t, int64(5), out.Movement.PreviousQuantity)
	assert.Equal(t, int64(42), out.Movement.NewQuantity)
}

func TestAdjust_ValidaEntrada(t *testing.T) {
	_, uc := newFixture()
	ctx := context.Background()

	_, err := uc.Adjust(ctx, actorID, dto.AdjustStockRequest{
		ProductID: productID, Type: "stock_in", Quantity: 1, Reason: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reason en blanco")

	_, err = uc.Adjust(ctx, actorID, dto.AdjustStockRequest{
		ProductID: productID, Type: "transfer", Quantity: 1, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.Adjust(ctx, actorID, dto.AdjustStockRequest{
		ProductID: "no-existe", Type: "stock_in", Quantity: 1, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

// Si el alta del movimiento falla, la mutación del producto se revierte: nunca
// queda un cambio de cantidad sin su movimiento.
func TestAdjust_RollbackSiFallaElMovimiento(t *testing.T) {
	s, uc := newFixture()
	s.failCreateMovement = true

	_, err := uc.Adjust(context.Background(), actorID, dto.AdjustStockRequest{
		ProductID: productID,
		Type:      "stock_in",
		Quantity:  20,
		Reason:    "Compra",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, int64(5), s.products[productID].Quantity, "la cantidad debe revertirse")
	assert.Empty(t, s.movements, "no debe quedar movimiento huérfano")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests BulkAdjust
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkAdjust_ProcesaCadaLineaDeFormaIndependiente(t *testing.T) {
	s, uc := newFixture()
	s.products["prod-2"] = &entity.Product{
		ID: "prod-2", Name: "Azúcar", SKU: "AZU-001", CategoryID: "cat-1",
		Quantity: 2, LowStockThreshold: 5, IsActive: true,
	}

	results, err := uc.BulkAdjust(context.Background(), actorID, []dto.BulkAdjustItem{
		{ProductID: productID, Type: "stock_in", Quantity: 20, Reason: "Compra"},
		{ProductID: "no-existe", Type: "stock_in", Quantity: 1, Reason: "Compra"},
		{ProductID: "prod-2", Type: "stock_out", Quantity: 10, Reason: "Venta"},
		{ProductID: productID, Type: "transfer", Quantity: 1, Reason: "x"},
	})
	require.NoError(t, err)
	require.Len(t, results, 4, "ninguna línea se omite del resultado")

	// Línea 1: éxito, 5 + 20 = 25.
	assert.True(t, results[0].Success)
	require.NotNil(t, results[0].NewQuantity)
	assert.Equal(t, int64(25), *results[0].NewQuantity)
	assert.Empty(t, results[0].Message)

	// Línea 2: producto inexistente.
	assert.False(t, results[1].Success)
	assert.Nil(t, results[1].NewQuantity)
	assert.Equal(t, "Product not found", results[1].Message)

	// Línea 3: la ruta masiva rechaza el sobregiro y no muta nada.
	assert.False(t, results[2].Success)
	assert.Equal(t, "Insufficient stock", results[2].Message)
	assert.Equal(t, int64(2), s.products["prod-2"].Quantity, "la cantidad no debe cambiar")

	// Línea 4: tipo inválido.
	assert.False(t, results[3].Success)
	assert.Equal(t, "Invalid adjustment type", results[3].Message)

	// Solo la línea exitosa dejó movimiento en el ledger.
	require.Len(t, s.movements, 1)
	assert.Equal(t, productID, s.movements[0].ProductID)
}

func TestBulkAdjust_LoteVacio(t *testing.T) {
	_, uc := newFixture()
	_, err := uc.BulkAdjust(context.Background(), actorID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ListMovements
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_PaginaYResuelveReferencias(t *testing.T) {
	_, uc := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Adjust(ctx, actorID, dto.AdjustStockRequest{
			ProductID: productID, Type: "stock_in", Quantity: 1, Reason: "Compra",
		})
		require.NoError(t, err)
	}

	out, err := uc.ListMovements(ctx, dto.MovementListRequest{
		PageRequest: dto.PageRequest{Page: 1, Limit: 2},
		ProductID:   productID,
	})
	require.NoError(t, err)
	assert.Len(t, out.Movements, 2)
	assert.Equal(t, int64(3), out.Total)
	assert.Equal(t, 2, out.TotalPages)
	assert.Equal(t, 1, out.CurrentPage)
	// Más reciente primero: el último ajuste dejó la cantidad en 8.
	assert.Equal(t, int64(8), out.Movements[0].NewQuantity)
	assert.Equal(t, "Café Molido", out.Movements[0].ProductName)
}
