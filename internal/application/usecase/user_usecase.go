package usecase

import (
	"strings"
	"time"

	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin). El borrado es un cascade
// (ver cascade.CascadeUseCase): preserva el ledger desvinculando al autor.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// GetByID obtiene un usuario. Devuelve nil si no existe.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// ListActive lista los usuarios activos.
func (uc *UserUseCase) ListActive() ([]dto.UserResponse, error) {
	users, err := uc.userRepo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// Update actualiza nombre, email, rol y estado de un usuario.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Email = email
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
