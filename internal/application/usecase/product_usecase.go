package usecase

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
	"github.com/tu-usuario/stockcontrol-api/pkg/textutil"
)

const defaultLowStockThreshold = 10

// ProductUseCase CRUD y listado de productos. La cantidad NO se toca aquí salvo
// el stock inicial en Create: todo cambio posterior pasa por el motor de
// movimientos.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// Create persiste un nuevo producto. El SKU se normaliza a mayúsculas; el umbral
// de stock bajo usa 10 si no viene.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	// Los límites de longitud cuentan caracteres, no bytes.
	if name == "" || utf8.RuneCountInString(name) > 100 || sku == "" {
		return nil, domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(in.Description) > 500 || in.Quantity < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	threshold := in.LowStockThreshold
	if threshold == 0 {
		threshold = defaultLowStockThreshold
	}
	if threshold < 1 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              name,
		SKU:               sku,
		Description:       in.Description,
		CategoryID:        in.CategoryID,
		Quantity:          in.Quantity,
		LowStockThreshold: threshold,
		UnitPrice:         in.UnitPrice,
		Location:          in.Location,
		Barcode:           in.Barcode,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	out := toProductResponse(&repository.ProductRow{Product: *product, CategoryName: category.Name})
	return &out, nil
}

// GetByID obtiene un producto con su categoría resuelta. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	row, err := uc.productRepo.GetWithCategory(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	out := toProductResponse(row)
	return &out, nil
}

// Update actualiza los campos presentes en la request. La cantidad no es
// actualizable por esta vía.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || utf8.RuneCountInString(name) > 100 {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*in.SKU))
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		product.SKU = sku
	}
	if in.Description != nil {
		if utf8.RuneCountInString(*in.Description) > 500 {
			return nil, domain.ErrInvalidInput
		}
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 1 {
			return nil, domain.ErrInvalidInput
		}
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// List lista productos activos con búsqueda, filtro por categoría, filtro de
// stock bajo y paginación 1-based.
func (uc *ProductUseCase) List(in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	filter := repository.ProductFilter{
		Search:       textutil.Fold(in.Search),
		CategoryID:   in.CategoryID,
		LowStockOnly: in.LowStock,
		Limit:        in.Limit,
		Offset:       in.Offset(),
	}
	rows, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Products:     make([]dto.ProductResponse, 0, len(rows)),
		PageResponse: dto.NewPageResponse(total, in.Page, in.Limit),
	}
	for _, row := range rows {
		out.Products = append(out.Products, toProductResponse(row))
	}
	return out, nil
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
