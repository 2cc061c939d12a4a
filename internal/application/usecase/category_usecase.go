package usecase

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías. El borrado NO vive aquí: es un cascade
// (ver cascade.CascadeUseCase).
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create persiste una categoría nueva. Name es único (1..50).
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	// Los límites de longitud cuentan caracteres, no bytes.
	if name == "" || utf8.RuneCountInString(name) > 50 || utf8.RuneCountInString(in.Description) > 200 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update actualiza los campos presentes en la request.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || utf8.RuneCountInString(name) > 50 {
			return nil, domain.ErrInvalidInput
		}
		category.Name = name
	}
	if in.Description != nil {
		if utf8.RuneCountInString(*in.Description) > 200 {
			return nil, domain.ErrInvalidInput
		}
		category.Description = *in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListActive lista las categorías activas ordenadas por nombre.
func (uc *CategoryUseCase) ListActive() ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
