package repository

import (
	"time"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// KardexFilter filtros de consulta del ledger.
type KardexFilter struct {
	ProductID      string
	Desde          *time.Time
	Hasta          *time.Time
	TipoMovimiento string // vacío = todos
	Limit          int
	Offset         int
}

// KardexRepository define el puerto de persistencia del ledger de costos.
// El ledger es append-only: no hay Update ni Delete.
type KardexRepository interface {
	Create(movimiento *entity.Kardex) error
	GetByID(id string) (*entity.Kardex, error)
	// GetLatest devuelve el último movimiento del producto (nil si no hay).
	// La lectura debe observar el último movimiento confirmado: una lectura
	// desactualizada corrompe el siguiente promedio.
	GetLatest(productID string) (*entity.Kardex, error)
	// GetLatestBefore devuelve el último movimiento estrictamente anterior a t.
	GetLatestBefore(productID string, t time.Time) (*entity.Kardex, error)
	List(filter KardexFilter) ([]*entity.Kardex, error)
}
