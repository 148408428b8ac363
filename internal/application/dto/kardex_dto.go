package dto

import "github.com/shopspring/decimal"

// ResumenKardex resumen de movimientos de un producto en un rango.
type ResumenKardex struct {
	ProductID             string          `json:"product_id"`
	SaldoInicial          decimal.Decimal `json:"saldo_inicial"`
	TotalEntradasCantidad decimal.Decimal `json:"total_entradas_cantidad"`
	TotalSalidasCantidad  decimal.Decimal `json:"total_salidas_cantidad"`
	TotalEntradasValor    decimal.Decimal `json:"total_entradas_valor"`
	TotalSalidasValor     decimal.Decimal `json:"total_salidas_valor"`
	StockFinal            decimal.Decimal `json:"stock_final"`
	CostoPromedioFinal    decimal.Decimal `json:"costo_promedio_final"`
	CostoTotalFinal       decimal.Decimal `json:"costo_total_final"`
}

// AjusteManualRequest petición de ajuste manual de inventario.
type AjusteManualRequest struct {
	ProductID      string          `json:"product_id"`
	Direccion      string          `json:"direccion"` // ENTRADA o SALIDA
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Observaciones  string          `json:"observaciones"`
}
