package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un crédito.
const (
	CreditoPendiente = "PENDIENTE"
	CreditoPagado    = "PAGADO"
	CreditoAnulado   = "ANULADO"
)

// Credito saldo pendiente de una venta a crédito. Los abonos reducen Saldo y
// registran un INGRESO en la caja abierta con referencia PAGO-CREDITO-<id>.
type Credito struct {
	ID        string
	VentaID   string
	Cliente   string
	Total     decimal.Decimal
	Saldo     decimal.Decimal
	Estado    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
