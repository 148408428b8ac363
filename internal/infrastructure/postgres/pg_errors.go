package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de violación de índice único.
const codigoUniqueViolation = "23505"

// esViolacionUnique reconoce el rechazo de PostgreSQL por índice único. Los
// repositorios lo traducen al sentinel de dominio que corresponda: SKU
// duplicado a ErrConflict, caja del día a ErrCajaDuplicada, email a
// ErrEmailAlreadyExists.
func esViolacionUnique(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codigoUniqueViolation
}
