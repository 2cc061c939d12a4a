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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`SELECT id, name, email, password_hash, role, is_active, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (único).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT id, name, email, password_hash, role, is_active, created_at, updated_at
		FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update actualiza un usuario existente (nunca el hash por esta vía).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, role = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.Role, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListActive lista los usuarios activos, los más recientes primero.
func (r *UserRepo) ListActive() ([]*entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, is_active, created_at, updated_at
		FROM users WHERE is_active ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID y devuelve filas afectadas.
func (r *UserRepo) Delete(id string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return cmd.RowsAffected(), nil
}
