package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// LoteRepository define el puerto de persistencia para lotes.
type LoteRepository interface {
	Create(lote *entity.Lote) error
	GetByID(id string) (*entity.Lote, error)
	Update(lote *entity.Lote) error
	// ListDisponibles devuelve lotes ACTIVO con disponible > 0 ordenados por
	// fecha de vencimiento ascendente, los sin vencimiento al final (FEFO).
	ListDisponibles(productID string) ([]*entity.Lote, error)
	// ListRestaurables devuelve lotes no retirados con disponible < recibida,
	// en orden inverso al de consumo (vencimiento descendente, sin
	// vencimiento primero), para deshacer una asignación.
	ListRestaurables(productID string) ([]*entity.Lote, error)
	ListByProduct(productID string) ([]*entity.Lote, error)
	// SumDisponible suma cantidad_disponible de los lotes ACTIVO del
	// producto: es el stock autoritativo.
	SumDisponible(productID string) (decimal.Decimal, error)
	ListVencidos(hoy time.Time) ([]*entity.Lote, error)
	ListProximosAVencer(hoy, limite time.Time) ([]*entity.Lote, error)
}
