package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// CajaRepository define el puerto de persistencia de cajas diarias.
type CajaRepository interface {
	Create(caja *entity.CajaDiaria) error
	GetByID(id string) (*entity.CajaDiaria, error)
	// GetForUpdate bloquea la fila de la caja: serializa los escritores por
	// sesión (en la práctica global, solo hay una caja abierta).
	GetForUpdate(id string) (*entity.CajaDiaria, error)
	Update(caja *entity.CajaDiaria) error
	// GetAbierta devuelve la caja ABIERTA actual (nil si no hay).
	GetAbierta() (*entity.CajaDiaria, error)
	ExistsAbierta() (bool, error)
	GetByFecha(fecha time.Time) (*entity.CajaDiaria, error)
	ListByRango(desde, hasta time.Time) ([]*entity.CajaDiaria, error)
}

// MovimientoCajaRepository define el puerto del ledger de movimientos de caja
// (append-only).
type MovimientoCajaRepository interface {
	Create(movimiento *entity.MovimientoCaja) error
	ListByCaja(cajaID string) ([]*entity.MovimientoCaja, error)
	// SumByTipo re-suma el monto de todos los movimientos del tipo dado;
	// los totales de la caja siempre se derivan del log completo.
	SumByTipo(cajaID, tipo string) (decimal.Decimal, error)
}
