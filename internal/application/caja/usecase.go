package caja

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// UseCase máquina de estados de la caja diaria: abrir, registrar movimientos
// y cerrar. Los totales nunca se incrementan: se re-suman del log de
// movimientos, así el saldo siempre es derivable puramente del ledger.
type UseCase struct {
	txRunner TxRunner
	cajaRepo repository.CajaRepository
	movRepo  repository.MovimientoCajaRepository
	reportes ReportGenerator
	now      func() time.Time
}

// NewUseCase construye el caso de uso de caja.
func NewUseCase(txRunner TxRunner, cajaRepo repository.CajaRepository, movRepo repository.MovimientoCajaRepository, reportes ReportGenerator) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		cajaRepo: cajaRepo,
		movRepo:  movRepo,
		reportes: reportes,
		now:      time.Now,
	}
}

// fechaNegocio trunca al día (fecha de negocio de la caja).
func fechaNegocio(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Abrir abre la caja del día. Falla con ErrCajaAbierta si ya hay una caja
// ABIERTA en el sistema y con ErrCajaDuplicada si ya existe una caja para la
// fecha de hoy; en ambos casos no se crea nada.
func (uc *UseCase) Abrir(ctx context.Context, montoApertura decimal.Decimal, usuario, observaciones string) (*entity.CajaDiaria, error) {
	if montoApertura.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	ahora := uc.now()
	var caja *entity.CajaDiaria
	err := uc.txRunner.RunCaja(ctx, func(cajaRepo repository.CajaRepository, _ repository.MovimientoCajaRepository) error {
		abierta, err := cajaRepo.ExistsAbierta()
		if err != nil {
			return err
		}
		if abierta {
			return domain.ErrCajaAbierta
		}
		existente, err := cajaRepo.GetByFecha(fechaNegocio(ahora))
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrCajaDuplicada
		}
		caja = &entity.CajaDiaria{
			ID:              uuid.New().String(),
			Fecha:           fechaNegocio(ahora),
			MontoApertura:   montoApertura,
			TotalIngresos:   decimal.Zero,
			TotalEgresos:    decimal.Zero,
			Estado:          entity.CajaEstadoAbierta,
			FechaApertura:   ahora,
			UsuarioApertura: usuario,
			Observaciones:   observaciones,
		}
		return cajaRepo.Create(caja)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("caja_id", caja.ID).Str("usuario", usuario).Msg("caja abierta")
	return caja, nil
}

// RegistrarMovimiento registra un INGRESO o EGRESO en la caja, en su propia
// transacción.
func (uc *UseCase) RegistrarMovimiento(ctx context.Context, cajaID, tipo string, monto decimal.Decimal, descripcion, referencia, usuario string) (*entity.MovimientoCaja, error) {
	var mov *entity.MovimientoCaja
	err := uc.txRunner.RunCaja(ctx, func(cajaRepo repository.CajaRepository, movRepo repository.MovimientoCajaRepository) error {
		var err error
		mov, err = uc.RegistrarMovimientoEnTx(cajaRepo, movRepo, cajaID, tipo, monto, descripcion, referencia, usuario)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegistrarMovimientoEnTx registra un movimiento usando los repositorios de
// la transacción del caller (lo usa el coordinador POS para atar el apunte
// de caja a la misma unidad atómica que la venta o compra).
func (uc *UseCase) RegistrarMovimientoEnTx(
	cajaRepo repository.CajaRepository,
	movRepo repository.MovimientoCajaRepository,
	cajaID, tipo string,
	monto decimal.Decimal,
	descripcion, referencia, usuario string,
) (*entity.MovimientoCaja, error) {
	if tipo != entity.MovimientoIngreso && tipo != entity.MovimientoEgreso {
		return nil, domain.ErrInvalidInput
	}
	if !monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	caja, err := cajaRepo.GetForUpdate(cajaID)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, domain.ErrNotFound
	}
	if caja.EstaCerrada() {
		return nil, domain.ErrCajaCerrada
	}

	mov := &entity.MovimientoCaja{
		ID:                  uuid.New().String(),
		CajaID:              caja.ID,
		TipoMovimiento:      tipo,
		Monto:               monto,
		Descripcion:         descripcion,
		ReferenciaDocumento: referencia,
		FechaMovimiento:     uc.now(),
		UsuarioRegistro:     usuario,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := recalcularTotales(cajaRepo, movRepo, caja); err != nil {
		return nil, err
	}
	log.Info().
		Str("caja_id", caja.ID).
		Str("tipo", tipo).
		Str("monto", monto.String()).
		Str("referencia", referencia).
		Msg("movimiento de caja registrado")
	return mov, nil
}

// Cerrar cierra la caja: recalcula totales del log, congela el monto de
// cierre con el saldo actual y pasa a CERRADA. Falla con ErrCajaYaCerrada si
// ya estaba cerrada.
func (uc *UseCase) Cerrar(ctx context.Context, cajaID, usuario, observaciones string) (*entity.CajaDiaria, error) {
	var cerrada *entity.CajaDiaria
	err := uc.txRunner.RunCaja(ctx, func(cajaRepo repository.CajaRepository, movRepo repository.MovimientoCajaRepository) error {
		caja, err := cajaRepo.GetForUpdate(cajaID)
		if err != nil {
			return err
		}
		if caja == nil {
			return domain.ErrNotFound
		}
		if caja.EstaCerrada() {
			return domain.ErrCajaYaCerrada
		}
		if err := recalcularTotales(cajaRepo, movRepo, caja); err != nil {
			return err
		}
		ahora := uc.now()
		saldo := caja.SaldoActual()
		caja.MontoCierre = &saldo
		caja.Estado = entity.CajaEstadoCerrada
		caja.FechaCierre = &ahora
		caja.UsuarioCierre = usuario
		if observaciones != "" {
			if caja.Observaciones != "" {
				caja.Observaciones += "\n" + observaciones
			} else {
				caja.Observaciones = observaciones
			}
		}
		if err := cajaRepo.Update(caja); err != nil {
			return err
		}
		cerrada = caja
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("caja_id", cerrada.ID).Str("monto_cierre", cerrada.MontoCierre.String()).Msg("caja cerrada")
	return cerrada, nil
}

// recalcularTotales re-suma los movimientos de cada tipo y actualiza la caja.
func recalcularTotales(cajaRepo repository.CajaRepository, movRepo repository.MovimientoCajaRepository, caja *entity.CajaDiaria) error {
	ingresos, err := movRepo.SumByTipo(caja.ID, entity.MovimientoIngreso)
	if err != nil {
		return err
	}
	egresos, err := movRepo.SumByTipo(caja.ID, entity.MovimientoEgreso)
	if err != nil {
		return err
	}
	caja.TotalIngresos = ingresos
	caja.TotalEgresos = egresos
	return cajaRepo.Update(caja)
}

// CajaAbierta devuelve la caja ABIERTA actual con totales recalculados
// (nil si no hay).
func (uc *UseCase) CajaAbierta(ctx context.Context) (*entity.CajaDiaria, error) {
	var caja *entity.CajaDiaria
	err := uc.txRunner.RunCaja(ctx, func(cajaRepo repository.CajaRepository, movRepo repository.MovimientoCajaRepository) error {
		abierta, err := cajaRepo.GetAbierta()
		if err != nil {
			return err
		}
		if abierta == nil {
			return nil
		}
		if err := recalcularTotales(cajaRepo, movRepo, abierta); err != nil {
			return err
		}
		caja = abierta
		return nil
	})
	if err != nil {
		return nil, err
	}
	return caja, nil
}

// PorID devuelve una caja por su ID.
func (uc *UseCase) PorID(id string) (*entity.CajaDiaria, error) {
	caja, err := uc.cajaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, domain.ErrNotFound
	}
	return caja, nil
}

// Movimientos lista los movimientos de una caja.
func (uc *UseCase) Movimientos(cajaID string) ([]*entity.MovimientoCaja, error) {
	caja, err := uc.cajaRepo.GetByID(cajaID)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByCaja(cajaID)
}

// Historial lista las cajas de los últimos días.
func (uc *UseCase) Historial(dias int) ([]*entity.CajaDiaria, error) {
	hoy := fechaNegocio(uc.now())
	return uc.cajaRepo.ListByRango(hoy.AddDate(0, 0, -dias), hoy)
}

// GenerarReporte genera el reporte PDF de una caja con sus movimientos.
func (uc *UseCase) GenerarReporte(cajaID string) ([]byte, error) {
	caja, err := uc.cajaRepo.GetByID(cajaID)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, domain.ErrNotFound
	}
	movimientos, err := uc.movRepo.ListByCaja(cajaID)
	if err != nil {
		return nil, err
	}
	return uc.reportes.GenerarReporteCaja(caja, movimientos)
}
