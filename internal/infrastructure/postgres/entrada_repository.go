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

var _ repository.EntradaRepository = (*EntradaRepo)(nil)

// EntradaRepo implementación del puerto EntradaRepository sobre PostgreSQL.
type EntradaRepo struct {
	q Querier
}

// NewEntradaRepository construye el adaptador de persistencia de entradas.
func NewEntradaRepository(q Querier) *EntradaRepo {
	return &EntradaRepo{q: q}
}

// Create persiste la entrada y sus detalles en la misma transacción del llamador.
func (r *EntradaRepo) Create(entrada *entity.Entrada) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO entradas (id, fecha, proveedor, total, usuario, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entrada.ID, entrada.Fecha, entrada.Proveedor, entrada.Total, entrada.Usuario, entrada.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entrada: %w", err)
	}
	for i := range entrada.Detalles {
		d := &entrada.Detalles[i]
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO detalles_entrada (id, entrada_id, product_id, cantidad, costo_unitario, subtotal, fecha_vencimiento, lote_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, d.EntradaID, d.ProductID, d.Cantidad, d.CostoUnitario, d.Subtotal, d.FechaVencimiento, d.LoteID,
		)
		if err != nil {
			return fmt.Errorf("insert detalle entrada: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la entrada con sus detalles (nil si no existe).
func (r *EntradaRepo) GetByID(id string) (*entity.Entrada, error) {
	var e entity.Entrada
	err := r.q.QueryRow(context.Background(),
		`SELECT id, fecha, proveedor, total, usuario, created_at FROM entradas WHERE id = $1`, id,
	).Scan(&e.ID, &e.Fecha, &e.Proveedor, &e.Total, &e.Usuario, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrada: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT id, entrada_id, product_id, cantidad, costo_unitario, subtotal, fecha_vencimiento, lote_id
		 FROM detalles_entrada WHERE entrada_id = $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list detalles entrada: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.DetalleEntrada
		if err := rows.Scan(&d.ID, &d.EntradaID, &d.ProductID, &d.Cantidad, &d.CostoUnitario,
			&d.Subtotal, &d.FechaVencimiento, &d.LoteID); err != nil {
			return nil, fmt.Errorf("scan detalle entrada: %w", err)
		}
		e.Detalles = append(e.Detalles, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByRango lista entradas por rango de fechas con paginación (sin detalles).
func (r *EntradaRepo) ListByRango(desde, hasta time.Time, limit, offset int) ([]*entity.Entrada, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, fecha, proveedor, total, usuario, created_at
		 FROM entradas WHERE fecha >= $1 AND fecha <= $2
		 ORDER BY fecha DESC LIMIT $3 OFFSET $4`,
		desde, hasta, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entradas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Entrada
	for rows.Next() {
		var e entity.Entrada
		if err := rows.Scan(&e.ID, &e.Fecha, &e.Proveedor, &e.Total, &e.Usuario, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entrada: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
