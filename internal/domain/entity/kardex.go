package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de Kardex.
const (
	KardexEntrada = "ENTRADA"
	KardexSalida  = "SALIDA"
	KardexAjuste  = "AJUSTE"
)

// Kardex representa un movimiento del ledger de costo promedio ponderado de
// un producto, con los saldos antes/después del movimiento.
// Es inmutable: una vez creado nunca se actualiza ni se borra; una anulación
// se compensa con un movimiento inverso.
// Los ajustes se guardan siempre con tipo AJUSTE; su dirección se infiere
// comparando StockAnterior con StockActual.
type Kardex struct {
	ID string
	// Secuencia la asigna la persistencia al insertar y da el orden total
	// del ledger. La fecha no sirve de orden: varios movimientos de una
	// misma transacción comparten FechaMovimiento.
	Secuencia             int64
	ProductID             string
	FechaMovimiento       time.Time
	TipoMovimiento        string          // ENTRADA, SALIDA, AJUSTE
	Cantidad              decimal.Decimal // siempre positiva
	PrecioUnitario        decimal.Decimal
	ValorTotal            decimal.Decimal // Cantidad * PrecioUnitario, solo auditoría
	StockAnterior         decimal.Decimal
	StockActual           decimal.Decimal
	CostoPromedioAnterior decimal.Decimal
	CostoPromedioActual   decimal.Decimal
	ReferenciaDocumento   string
	UsuarioRegistro       string
	Observaciones         string
}

// EsAjustePositivo indica si un AJUSTE aumentó el stock.
func (k *Kardex) EsAjustePositivo() bool {
	return k.StockActual.GreaterThan(k.StockAnterior)
}
