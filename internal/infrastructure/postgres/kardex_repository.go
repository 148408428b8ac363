package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo implementación del puerto KardexRepository sobre PostgreSQL.
// El ledger es append-only: solo INSERT y SELECT. La columna secuencia
// (bigserial) da el orden total de inserción; la fecha no alcanza porque los
// movimientos de una misma transacción comparten fecha_movimiento.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador de persistencia del Kardex.
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

const kardexColumns = `id, secuencia, product_id, fecha_movimiento, tipo_movimiento, cantidad, precio_unitario, valor_total, stock_anterior, stock_actual, costo_promedio_anterior, costo_promedio_actual, referencia_documento, usuario_registro, observaciones`

func scanKardex(row pgx.Row) (*entity.Kardex, error) {
	var k entity.Kardex
	err := row.Scan(&k.ID, &k.Secuencia, &k.ProductID, &k.FechaMovimiento, &k.TipoMovimiento,
		&k.Cantidad, &k.PrecioUnitario, &k.ValorTotal, &k.StockAnterior, &k.StockActual,
		&k.CostoPromedioAnterior, &k.CostoPromedioActual,
		&k.ReferenciaDocumento, &k.UsuarioRegistro, &k.Observaciones)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// Create inserta un movimiento en el ledger y refleja la secuencia asignada.
func (r *KardexRepo) Create(movimiento *entity.Kardex) error {
	query := `
		INSERT INTO kardex (id, product_id, fecha_movimiento, tipo_movimiento, cantidad, precio_unitario, valor_total, stock_anterior, stock_actual, costo_promedio_anterior, costo_promedio_actual, referencia_documento, usuario_registro, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING secuencia`
	err := r.q.QueryRow(context.Background(), query,
		movimiento.ID, movimiento.ProductID, movimiento.FechaMovimiento, movimiento.TipoMovimiento,
		movimiento.Cantidad, movimiento.PrecioUnitario, movimiento.ValorTotal,
		movimiento.StockAnterior, movimiento.StockActual,
		movimiento.CostoPromedioAnterior, movimiento.CostoPromedioActual,
		movimiento.ReferenciaDocumento, movimiento.UsuarioRegistro, movimiento.Observaciones,
	).Scan(&movimiento.Secuencia)
	if err != nil {
		return fmt.Errorf("insert kardex: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *KardexRepo) GetByID(id string) (*entity.Kardex, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex WHERE id = $1`
	k, err := scanKardex(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kardex: %w", err)
	}
	return k, nil
}

// GetLatest devuelve el último movimiento del producto (nil si no hay).
// Dentro de una tx con la fila del producto bloqueada, esta lectura observa
// siempre el último movimiento confirmado.
func (r *KardexRepo) GetLatest(productID string) (*entity.Kardex, error) {
	query := `
		SELECT ` + kardexColumns + ` FROM kardex
		WHERE product_id = $1
		ORDER BY secuencia DESC LIMIT 1`
	k, err := scanKardex(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest kardex: %w", err)
	}
	return k, nil
}

// GetLatestBefore devuelve el último movimiento estrictamente anterior a t.
func (r *KardexRepo) GetLatestBefore(productID string, t time.Time) (*entity.Kardex, error) {
	query := `
		SELECT ` + kardexColumns + ` FROM kardex
		WHERE product_id = $1 AND fecha_movimiento < $2
		ORDER BY secuencia DESC LIMIT 1`
	k, err := scanKardex(r.q.QueryRow(context.Background(), query, productID, t))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest kardex before: %w", err)
	}
	return k, nil
}

// List lista movimientos según el filtro, en orden cronológico.
func (r *KardexRepo) List(filter repository.KardexFilter) ([]*entity.Kardex, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex WHERE product_id = $1`
	args := []any{filter.ProductID}

	if filter.Desde != nil {
		args = append(args, *filter.Desde)
		query += fmt.Sprintf(" AND fecha_movimiento >= $%d", len(args))
	}
	if filter.Hasta != nil {
		args = append(args, *filter.Hasta)
		query += fmt.Sprintf(" AND fecha_movimiento <= $%d", len(args))
	}
	if filter.TipoMovimiento != "" {
		args = append(args, filter.TipoMovimiento)
		query += fmt.Sprintf(" AND tipo_movimiento = $%d", len(args))
	}

	query += " ORDER BY secuencia ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list kardex: %w", err)
	}
	defer rows.Close()
	var list []*entity.Kardex
	for rows.Next() {
		k, err := scanKardex(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kardex: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}
