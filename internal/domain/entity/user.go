package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin" // CRUD completo
	RoleStaff = "staff" // lectura + ajustes de stock
)

// ValidRole indica si s es un rol reconocido.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleStaff
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, staff
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
