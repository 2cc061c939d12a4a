package usecase_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/usecase"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products     map[string]*entity.Product
	categories   *fakeCategoryRepo
	lastFilter   repository.ProductFilter
	lowStockRows []*repository.ProductRow
}

func newFakeProductRepo(categories *fakeCategoryRepo) *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product), categories: categories}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error)        { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64) error {
	r.products[id].Quantity = quantity
	return nil
}

func (r *fakeProductRepo) GetWithCategory(id string) (*repository.ProductRow, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	row := &repository.ProductRow{Product: *p}
	if c, _ := r.categories.GetByID(p.CategoryID); c != nil {
		row.CategoryName = c.Name
	}
	return row, nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*repository.ProductRow, error) {
	r.lastFilter = filter
	var out []*repository.ProductRow
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, &repository.ProductRow{Product: *p})
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Count(repository.ProductFilter) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) ListLowStock(limit int) ([]*repository.ProductRow, error) {
	if limit > 0 && limit < len(r.lowStockRows) {
		return r.lowStockRows[:limit], nil
	}
	return r.lowStockRows, nil
}
func (r *fakeProductRepo) Delete(string) (int64, error)                       { return 0, nil }
func (r *fakeProductRepo) DeleteByIDs([]string) (int64, error)                { return 0, nil }
func (r *fakeProductRepo) DeleteByCategory(string) (int64, error)             { return 0, nil }

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *fakeCategoryRepo) GetByName(string) (*entity.Category, error) { return nil, nil }
func (r *fakeCategoryRepo) Update(c *entity.Category) error            { r.categories[c.ID] = c; return nil }
func (r *fakeCategoryRepo) ListActive() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeCategoryRepo) Delete(string) (int64, error) { return 0, nil }

func newProductFixture() (*fakeProductRepo, *usecase.ProductUseCase) {
	categories := newFakeCategoryRepo()
	categories.categories["cat-1"] = &entity.Category{ID: "cat-1", Name: "Bebidas", IsActive: true}
	products := newFakeProductRepo(categories)
	return products, usecase.NewProductUseCase(products, categories)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_NormalizaYAplicaDefaults(t *testing.T) {
	_, uc := newProductFixture()

	out, err := uc.Create(dto.CreateProductRequest{
		Name:       "  Café Molido  ",
		SKU:        "caf-001",
		CategoryID: "cat-1",
		Quantity:   5,
		UnitPrice:  decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	assert.Equal(t, "Café Molido", out.Name, "el nombre se recorta")
	assert.Equal(t, "CAF-001", out.SKU, "el SKU se normaliza a mayúsculas")
	assert.Equal(t, int64(10), out.LowStockThreshold, "umbral por defecto")
	assert.Equal(t, "Bebidas", out.CategoryName)
	assert.True(t, out.IsLowStock, "5 <= umbral 10")
	assert.True(t, out.IsActive)
	assert.NotEmpty(t, out.ID)
}

func TestProductCreate_Validaciones(t *testing.T) {
	_, uc := newProductFixture()

	_, err := uc.Create(dto.CreateProductRequest{Name: "", SKU: "X", CategoryID: "cat-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	_, err = uc.Create(dto.CreateProductRequest{Name: "X", SKU: "X", CategoryID: "cat-1", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = uc.Create(dto.CreateProductRequest{
		Name: "X", SKU: "X", CategoryID: "cat-1",
		UnitPrice: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	_, err = uc.Create(dto.CreateProductRequest{Name: "X", SKU: "X", CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "categoría inexistente")
}

// Los límites de longitud cuentan caracteres: un nombre multibyte de 100 runas
// es válido aunque ocupe más de 100 bytes.
func TestProductCreate_LimitesEnRunas(t *testing.T) {
	_, uc := newProductFixture()

	name := strings.Repeat("ñ", 100)
	out, err := uc.Create(dto.CreateProductRequest{
		Name:       name,
		SKU:        "MULTI-001",
		CategoryID: "cat-1",
		UnitPrice:  decimal.NewFromInt(1),
	})
	require.NoError(t, err, "100 runas multibyte caben en el límite de 100 caracteres")
	assert.Equal(t, name, out.Name)

	_, err = uc.Create(dto.CreateProductRequest{
		Name:       strings.Repeat("ñ", 101),
		SKU:        "MULTI-002",
		CategoryID: "cat-1",
		UnitPrice:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "101 caracteres exceden el límite")
}

func TestProductUpdate_AplicaSoloCamposPresentes(t *testing.T) {
	repo, uc := newProductFixture()
	repo.products["prod-1"] = &entity.Product{
		ID: "prod-1", Name: "Café", SKU: "CAF-001", CategoryID: "cat-1",
		Quantity: 5, LowStockThreshold: 10, IsActive: true,
	}

	newName := "Café Premium"
	out, err := uc.Update("prod-1", dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Café Premium", out.Name)
	assert.Equal(t, "CAF-001", out.SKU, "los campos ausentes no cambian")
	assert.Equal(t, int64(5), out.Quantity, "la cantidad nunca cambia por esta vía")
}

func TestProductUpdate_NoExiste(t *testing.T) {
	_, uc := newProductFixture()
	name := "X"
	_, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_NormalizaBusquedaYPagina(t *testing.T) {
	repo, uc := newProductFixture()
	repo.products["prod-1"] = &entity.Product{
		ID: "prod-1", Name: "Azúcar", SKU: "AZU-001", CategoryID: "cat-1", IsActive: true,
	}

	out, err := uc.List(dto.ProductListRequest{
		Search: "  AZÚCAR ",
	})
	require.NoError(t, err)

	assert.Equal(t, "azucar", repo.lastFilter.Search, "minúsculas y sin diacríticos")
	assert.Equal(t, 10, repo.lastFilter.Limit, "límite por defecto")
	assert.Equal(t, 0, repo.lastFilter.Offset, "página 1 = offset 0")
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 1, out.TotalPages)
	assert.Equal(t, 1, out.CurrentPage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CategoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_Valida(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	out, err := uc.Create(dto.CreateCategoryRequest{Name: " Bebidas ", Description: "Líquidos"})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", out.Name)
	assert.True(t, out.IsActive)

	_, err = uc.Create(dto.CreateCategoryRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = uc.Create(dto.CreateCategoryRequest{Name: strings.Repeat("á", 50)})
	require.NoError(t, err, "el límite de 50 cuenta caracteres, no bytes")
	assert.Len(t, []rune(out.Name), 50)

	_, err = uc.Create(dto.CreateCategoryRequest{Name: strings.Repeat("á", 51)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate_NoExiste(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())
	name := "X"
	_, err := uc.Update("no-existe", dto.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
