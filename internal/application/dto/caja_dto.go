package dto

import "github.com/shopspring/decimal"

// AbrirCajaRequest petición de apertura de caja.
type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura"`
	Observaciones string          `json:"observaciones"`
}

// CerrarCajaRequest petición de cierre de caja.
type CerrarCajaRequest struct {
	Observaciones string `json:"observaciones"`
}

// MovimientoCajaRequest petición de movimiento manual de caja.
type MovimientoCajaRequest struct {
	Tipo        string          `json:"tipo"` // INGRESO o EGRESO
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
	Referencia  string          `json:"referencia"` // vacío = GASTO-MANUAL / INGRESO-MANUAL
}
