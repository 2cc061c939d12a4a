package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.IsActive,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.getOne(`SELECT id, name, description, is_active, created_at, updated_at
		FROM categories WHERE id = $1`, id)
}

// GetByName obtiene una categoría por nombre (único).
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	return r.getOne(`SELECT id, name, description, is_active, created_at, updated_at
		FROM categories WHERE name = $1`, name)
}

func (r *CategoryRepo) getOne(query string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.IsActive, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// ListActive lista las categorías activas ordenadas por nombre.
func (r *CategoryRepo) ListActive() ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories WHERE is_active ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una categoría por ID y devuelve filas afectadas.
func (r *CategoryRepo) Delete(id string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	return cmd.RowsAffected(), nil
}
