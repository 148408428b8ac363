package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Cost es el costo promedio ponderado espejo del último movimiento de Kardex.
// Stock es una caché de la suma de lotes activos: se recalcula siempre en la
// misma transacción que muta lotes/Kardex, nunca se escribe por su cuenta.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)
	Stock       decimal.Decimal // caché derivada de lotes activos
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
