package dto

import "github.com/shopspring/decimal"

// LineaVentaRequest línea de una venta.
type LineaVentaRequest struct {
	ProductID      string          `json:"product_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"` // 0 = precio del producto
}

// VentaRequest petición de registro de venta.
type VentaRequest struct {
	Cliente   string              `json:"cliente"`
	TipoVenta string              `json:"tipo_venta"` // CONTADO o CREDITO
	Lineas    []LineaVentaRequest `json:"lineas"`
}

// LineaCompraRequest línea de una compra.
type LineaCompraRequest struct {
	ProductID        string          `json:"product_id"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	CostoUnitario    decimal.Decimal `json:"costo_unitario"`
	FechaVencimiento string          `json:"fecha_vencimiento"` // YYYY-MM-DD, opcional
}

// CompraRequest petición de registro de compra (entrada de mercancía).
type CompraRequest struct {
	Proveedor   string               `json:"proveedor"`
	PagoContado bool                 `json:"pago_contado"`
	Lineas      []LineaCompraRequest `json:"lineas"`
}

// PagoCreditoRequest petición de abono a un crédito.
type PagoCreditoRequest struct {
	Monto decimal.Decimal `json:"monto"`
}
