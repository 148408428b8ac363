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

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación del puerto VentaRepository sobre PostgreSQL.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de persistencia de ventas.
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste la venta y sus detalles en la misma transacción del llamador.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (id, fecha, cliente, tipo_venta, estado, total, usuario, created_at, anulada_at, anulada_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.Fecha, venta.Cliente, venta.TipoVenta, venta.Estado,
		venta.Total, venta.Usuario, venta.CreatedAt, venta.AnuladaAt, venta.AnuladaPor,
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	for i := range venta.Detalles {
		d := &venta.Detalles[i]
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO detalles_venta (id, venta_id, product_id, cantidad, precio_unitario, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.VentaID, d.ProductID, d.Cantidad, d.PrecioUnitario, d.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert detalle venta: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus detalles (nil si no existe).
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	var v entity.Venta
	err := r.q.QueryRow(context.Background(),
		`SELECT id, fecha, cliente, tipo_venta, estado, total, usuario, created_at, anulada_at, anulada_por
		 FROM ventas WHERE id = $1`, id,
	).Scan(&v.ID, &v.Fecha, &v.Cliente, &v.TipoVenta, &v.Estado, &v.Total,
		&v.Usuario, &v.CreatedAt, &v.AnuladaAt, &v.AnuladaPor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}

	detalles, err := r.detallesDe(v.ID)
	if err != nil {
		return nil, err
	}
	v.Detalles = detalles
	return &v, nil
}

func (r *VentaRepo) detallesDe(ventaID string) ([]entity.DetalleVenta, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, venta_id, product_id, cantidad, precio_unitario, subtotal
		 FROM detalles_venta WHERE venta_id = $1 ORDER BY id ASC`, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()
	var detalles []entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		detalles = append(detalles, d)
	}
	return detalles, rows.Err()
}

// UpdateEstado marca una venta como anulada, registrando quién y cuándo.
func (r *VentaRepo) UpdateEstado(id, estado, usuario string, fecha time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ventas SET estado = $2, anulada_por = $3, anulada_at = $4 WHERE id = $1`,
		id, estado, usuario, fecha,
	)
	if err != nil {
		return fmt.Errorf("update estado venta: %w", err)
	}
	return nil
}

// ListByRango lista ventas por rango de fechas con paginación (sin detalles).
func (r *VentaRepo) ListByRango(desde, hasta time.Time, limit, offset int) ([]*entity.Venta, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, fecha, cliente, tipo_venta, estado, total, usuario, created_at, anulada_at, anulada_por
		 FROM ventas WHERE fecha >= $1 AND fecha <= $2
		 ORDER BY fecha DESC LIMIT $3 OFFSET $4`,
		desde, hasta, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(&v.ID, &v.Fecha, &v.Cliente, &v.TipoVenta, &v.Estado, &v.Total,
			&v.Usuario, &v.CreatedAt, &v.AnuladaAt, &v.AnuladaPor); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
