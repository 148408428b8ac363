package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la caja diaria.
const (
	CajaEstadoAbierta = "ABIERTA"
	CajaEstadoCerrada = "CERRADA"
)

// Tipos de movimiento de caja.
const (
	MovimientoIngreso = "INGRESO"
	MovimientoEgreso  = "EGRESO"
)

// CajaDiaria representa la jornada de una caja: se abre con un monto inicial,
// acumula movimientos y se cierra con un corte. A lo sumo una caja ABIERTA
// en todo el sistema, y a lo sumo una caja por fecha.
// TotalIngresos/TotalEgresos se recalculan siempre re-sumando el log de
// movimientos, nunca de forma incremental.
type CajaDiaria struct {
	ID              string
	Fecha           time.Time // fecha de negocio (solo día)
	MontoApertura   decimal.Decimal
	MontoCierre     *decimal.Decimal // se fija al cerrar
	TotalIngresos   decimal.Decimal
	TotalEgresos    decimal.Decimal
	Estado          string
	FechaApertura   time.Time
	UsuarioApertura string
	FechaCierre     *time.Time
	UsuarioCierre   string
	Observaciones   string
}

// EstaCerrada indica si la caja ya fue cerrada.
func (c *CajaDiaria) EstaCerrada() bool { return c.Estado == CajaEstadoCerrada }

// SaldoActual devuelve apertura + ingresos - egresos.
func (c *CajaDiaria) SaldoActual() decimal.Decimal {
	return c.MontoApertura.Add(c.TotalIngresos).Sub(c.TotalEgresos)
}

// MovimientoCaja es un evento inmutable del ledger de la caja. El origen
// (venta, compra, pago de crédito, manual) viaja solo en ReferenciaDocumento:
// el ledger es una única secuencia uniforme de apéndices.
type MovimientoCaja struct {
	ID                  string
	CajaID              string
	TipoMovimiento      string // INGRESO, EGRESO
	Monto               decimal.Decimal
	Descripcion         string
	ReferenciaDocumento string // VENTA-<id>, COMPRA-<id>, PAGO-CREDITO-<id>, GASTO-MANUAL
	FechaMovimiento     time.Time
	UsuarioRegistro     string
}
