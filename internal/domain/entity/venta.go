package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos y estados de venta.
const (
	VentaContado = "CONTADO"
	VentaCredito = "CREDITO"

	VentaRegistrada = "REGISTRADA"
	VentaAnulada    = "ANULADA"
)

// Venta documento de venta con sus líneas. El estado pasa a ANULADA en una
// anulación; los movimientos de Kardex y caja originales no se tocan, se
// compensan con movimientos inversos.
type Venta struct {
	ID         string
	Fecha      time.Time
	Cliente    string
	TipoVenta  string // CONTADO, CREDITO
	Estado     string // REGISTRADA, ANULADA
	Total      decimal.Decimal
	Usuario    string
	Detalles   []DetalleVenta
	CreatedAt  time.Time
	AnuladaAt  *time.Time
	AnuladaPor string
}

// DetalleVenta línea de una venta.
type DetalleVenta struct {
	ID             string
	VentaID        string
	ProductID      string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
