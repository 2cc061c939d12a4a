package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de PostgreSQL para unique_violation.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta inserts/updates rechazados por un índice único
// (SKU de producto o email de usuario duplicado) para que los repositorios los
// traduzcan a errores de dominio.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
