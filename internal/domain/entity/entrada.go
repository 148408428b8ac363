package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entrada documento de compra/recepción de mercancía. Cada línea genera un
// lote y un movimiento ENTRADA en el Kardex.
type Entrada struct {
	ID        string
	Fecha     time.Time
	Proveedor string
	Total     decimal.Decimal
	Usuario   string
	Detalles  []DetalleEntrada
	CreatedAt time.Time
}

// DetalleEntrada línea de una entrada.
type DetalleEntrada struct {
	ID               string
	EntradaID        string
	ProductID        string
	Cantidad         decimal.Decimal
	CostoUnitario    decimal.Decimal
	Subtotal         decimal.Decimal
	FechaVencimiento *time.Time // opcional; el lote se crea igual sin ella
	LoteID           string     // lote generado por esta línea
}
