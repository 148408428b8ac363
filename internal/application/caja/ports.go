package caja

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para abrir, cerrar y
// registrar movimientos de caja.
type TxRunner interface {
	RunCaja(ctx context.Context, fn func(
		cajaRepo repository.CajaRepository,
		movRepo repository.MovimientoCajaRepository,
	) error) error
}

// ReportGenerator genera el reporte de cierre de una caja (PDF).
type ReportGenerator interface {
	GenerarReporteCaja(caja *entity.CajaDiaria, movimientos []*entity.MovimientoCaja) ([]byte, error)
}
