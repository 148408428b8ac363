package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.CajaRepository = (*CajaRepo)(nil)

// CajaRepo implementación del puerto CajaRepository sobre PostgreSQL.
// La tabla lleva un índice único parcial sobre estado = 'ABIERTA' y otro
// sobre fecha, que respaldan en BD las reglas "una sola caja abierta" y
// "una caja por fecha".
type CajaRepo struct {
	q Querier
}

// NewCajaRepository construye el adaptador de persistencia de cajas.
func NewCajaRepository(q Querier) *CajaRepo {
	return &CajaRepo{q: q}
}

const cajaColumns = `id, fecha, monto_apertura, monto_cierre, total_ingresos, total_egresos, estado, fecha_apertura, usuario_apertura, fecha_cierre, usuario_cierre, observaciones`

func scanCaja(row pgx.Row) (*entity.CajaDiaria, error) {
	var c entity.CajaDiaria
	err := row.Scan(&c.ID, &c.Fecha, &c.MontoApertura, &c.MontoCierre,
		&c.TotalIngresos, &c.TotalEgresos, &c.Estado,
		&c.FechaApertura, &c.UsuarioApertura, &c.FechaCierre, &c.UsuarioCierre, &c.Observaciones)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva caja diaria.
func (r *CajaRepo) Create(caja *entity.CajaDiaria) error {
	query := `
		INSERT INTO cajas_diarias (id, fecha, monto_apertura, monto_cierre, total_ingresos, total_egresos, estado, fecha_apertura, usuario_apertura, fecha_cierre, usuario_cierre, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		caja.ID, caja.Fecha, caja.MontoApertura, caja.MontoCierre,
		caja.TotalIngresos, caja.TotalEgresos, caja.Estado,
		caja.FechaApertura, caja.UsuarioApertura, caja.FechaCierre, caja.UsuarioCierre, caja.Observaciones,
	)
	if err != nil {
		if esViolacionUnique(err) {
			return domain.ErrCajaDuplicada
		}
		return fmt.Errorf("insert caja: %w", err)
	}
	return nil
}

// GetByID obtiene una caja por ID.
func (r *CajaRepo) GetByID(id string) (*entity.CajaDiaria, error) {
	query := `SELECT ` + cajaColumns + ` FROM cajas_diarias WHERE id = $1`
	c, err := scanCaja(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caja: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene una caja bloqueando su fila (SELECT FOR UPDATE).
func (r *CajaRepo) GetForUpdate(id string) (*entity.CajaDiaria, error) {
	query := `SELECT ` + cajaColumns + ` FROM cajas_diarias WHERE id = $1 FOR UPDATE`
	c, err := scanCaja(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caja for update: %w", err)
	}
	return c, nil
}

// Update actualiza totales, estado y datos de cierre de una caja.
func (r *CajaRepo) Update(caja *entity.CajaDiaria) error {
	query := `
		UPDATE cajas_diarias SET monto_cierre = $2, total_ingresos = $3, total_egresos = $4, estado = $5, fecha_cierre = $6, usuario_cierre = $7, observaciones = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		caja.ID, caja.MontoCierre, caja.TotalIngresos, caja.TotalEgresos,
		caja.Estado, caja.FechaCierre, caja.UsuarioCierre, caja.Observaciones,
	)
	if err != nil {
		return fmt.Errorf("update caja: %w", err)
	}
	return nil
}

// GetAbierta devuelve la caja ABIERTA actual (nil si no hay).
func (r *CajaRepo) GetAbierta() (*entity.CajaDiaria, error) {
	query := `SELECT ` + cajaColumns + ` FROM cajas_diarias WHERE estado = $1`
	c, err := scanCaja(r.q.QueryRow(context.Background(), query, entity.CajaEstadoAbierta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caja abierta: %w", err)
	}
	return c, nil
}

// ExistsAbierta indica si hay alguna caja ABIERTA.
func (r *CajaRepo) ExistsAbierta() (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM cajas_diarias WHERE estado = $1)`,
		entity.CajaEstadoAbierta,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists caja abierta: %w", err)
	}
	return exists, nil
}

// GetByFecha obtiene la caja de una fecha de negocio (nil si no existe).
func (r *CajaRepo) GetByFecha(fecha time.Time) (*entity.CajaDiaria, error) {
	query := `SELECT ` + cajaColumns + ` FROM cajas_diarias WHERE fecha = $1`
	c, err := scanCaja(r.q.QueryRow(context.Background(), query, fecha))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caja by fecha: %w", err)
	}
	return c, nil
}

// ListByRango lista cajas por rango de fecha de negocio.
func (r *CajaRepo) ListByRango(desde, hasta time.Time) ([]*entity.CajaDiaria, error) {
	query := `
		SELECT ` + cajaColumns + ` FROM cajas_diarias
		WHERE fecha >= $1 AND fecha <= $2
		ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list cajas: %w", err)
	}
	defer rows.Close()
	var list []*entity.CajaDiaria
	for rows.Next() {
		c, err := scanCaja(rows)
		if err != nil {
			return nil, fmt.Errorf("scan caja: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

var _ repository.MovimientoCajaRepository = (*MovimientoCajaRepo)(nil)

// MovimientoCajaRepo implementación del ledger de movimientos de caja
// (append-only) sobre PostgreSQL.
type MovimientoCajaRepo struct {
	q Querier
}

// NewMovimientoCajaRepository construye el adaptador de movimientos de caja.
func NewMovimientoCajaRepository(q Querier) *MovimientoCajaRepo {
	return &MovimientoCajaRepo{q: q}
}

// Create inserta un movimiento en el ledger de la caja.
func (r *MovimientoCajaRepo) Create(movimiento *entity.MovimientoCaja) error {
	query := `
		INSERT INTO movimientos_caja (id, caja_id, tipo_movimiento, monto, descripcion, referencia_documento, fecha_movimiento, usuario_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.CajaID, movimiento.TipoMovimiento, movimiento.Monto,
		movimiento.Descripcion, movimiento.ReferenciaDocumento,
		movimiento.FechaMovimiento, movimiento.UsuarioRegistro,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento caja: %w", err)
	}
	return nil
}

// ListByCaja lista los movimientos de una caja en orden cronológico.
func (r *MovimientoCajaRepo) ListByCaja(cajaID string) ([]*entity.MovimientoCaja, error) {
	query := `
		SELECT id, caja_id, tipo_movimiento, monto, descripcion, referencia_documento, fecha_movimiento, usuario_registro
		FROM movimientos_caja WHERE caja_id = $1
		ORDER BY fecha_movimiento ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, cajaID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos caja: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoCaja
	for rows.Next() {
		var m entity.MovimientoCaja
		if err := rows.Scan(&m.ID, &m.CajaID, &m.TipoMovimiento, &m.Monto,
			&m.Descripcion, &m.ReferenciaDocumento, &m.FechaMovimiento, &m.UsuarioRegistro); err != nil {
			return nil, fmt.Errorf("scan movimiento caja: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByTipo re-suma el monto de los movimientos del tipo dado. Los totales
// de la caja siempre se derivan del log, nunca se incrementan.
func (r *MovimientoCajaRepo) SumByTipo(cajaID, tipo string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(monto), 0) FROM movimientos_caja WHERE caja_id = $1 AND tipo_movimiento = $2`,
		cajaID, tipo,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movimientos caja: %w", err)
	}
	return total, nil
}
