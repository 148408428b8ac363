package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestEsViolacionUnique(t *testing.T) {
	unico := &pgconn.PgError{Code: codigoUniqueViolation, ConstraintName: "products_sku_key"}

	assert.True(t, esViolacionUnique(unico))
	// También envuelto, como lo devuelven los repositorios.
	assert.True(t, esViolacionUnique(fmt.Errorf("insert product: %w", unico)))

	assert.False(t, esViolacionUnique(&pgconn.PgError{Code: "23503"})) // foreign key
	assert.False(t, esViolacionUnique(errors.New("23505 sin tipo")))
	assert.False(t, esViolacionUnique(nil))
}
