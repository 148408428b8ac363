package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementación del puerto LoteRepository sobre PostgreSQL.
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador de persistencia para lotes.
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteColumns = `id, product_id, numero_lote, fecha_entrada, fecha_vencimiento, cantidad_recibida, cantidad_disponible, estado, created_at, updated_at`

func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	err := row.Scan(&l.ID, &l.ProductID, &l.NumeroLote, &l.FechaEntrada, &l.FechaVencimiento,
		&l.CantidadRecibida, &l.CantidadDisponible, &l.Estado, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoteRepo) queryLotes(query string, args ...any) ([]*entity.Lote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Create persiste un nuevo lote.
func (r *LoteRepo) Create(lote *entity.Lote) error {
	query := `
		INSERT INTO lotes (id, product_id, numero_lote, fecha_entrada, fecha_vencimiento, cantidad_recibida, cantidad_disponible, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.ProductID, lote.NumeroLote, lote.FechaEntrada, lote.FechaVencimiento,
		lote.CantidadRecibida, lote.CantidadDisponible, lote.Estado, lote.CreatedAt, lote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1`
	l, err := scanLote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return l, nil
}

// Update actualiza disponible y estado de un lote.
func (r *LoteRepo) Update(lote *entity.Lote) error {
	query := `
		UPDATE lotes SET cantidad_disponible = $2, estado = $3, fecha_vencimiento = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.CantidadDisponible, lote.Estado, lote.FechaVencimiento, lote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lote: %w", err)
	}
	return nil
}

// ListDisponibles lotes ACTIVO con saldo, en orden FEFO: vencimiento
// ascendente y los sin vencimiento al final.
func (r *LoteRepo) ListDisponibles(productID string) ([]*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + ` FROM lotes
		WHERE product_id = $1 AND estado = $2 AND cantidad_disponible > 0
		ORDER BY fecha_vencimiento ASC NULLS LAST, fecha_entrada ASC`
	return r.queryLotes(query, productID, entity.LoteActivo)
}

// ListRestaurables lotes no retirados con espacio para devolver unidades, en
// orden inverso al de consumo.
func (r *LoteRepo) ListRestaurables(productID string) ([]*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + ` FROM lotes
		WHERE product_id = $1 AND estado <> $2 AND cantidad_disponible < cantidad_recibida
		ORDER BY fecha_vencimiento DESC NULLS FIRST, fecha_entrada DESC`
	return r.queryLotes(query, productID, entity.LoteRetirado)
}

// ListByProduct lista todos los lotes de un producto.
func (r *LoteRepo) ListByProduct(productID string) ([]*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + ` FROM lotes
		WHERE product_id = $1
		ORDER BY fecha_vencimiento ASC NULLS LAST, fecha_entrada ASC`
	return r.queryLotes(query, productID)
}

// SumDisponible stock autoritativo: suma de cantidad_disponible de los lotes ACTIVO.
func (r *LoteRepo) SumDisponible(productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(cantidad_disponible), 0) FROM lotes WHERE product_id = $1 AND estado = $2`,
		productID, entity.LoteActivo,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum disponible: %w", err)
	}
	return total, nil
}

// ListVencidos lotes activos cuya fecha de vencimiento ya pasó.
func (r *LoteRepo) ListVencidos(hoy time.Time) ([]*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + ` FROM lotes
		WHERE estado = $1 AND fecha_vencimiento IS NOT NULL AND fecha_vencimiento < $2
		ORDER BY fecha_vencimiento ASC`
	return r.queryLotes(query, entity.LoteActivo, hoy)
}

// ListProximosAVencer lotes activos que vencen dentro de la ventana [hoy, limite).
func (r *LoteRepo) ListProximosAVencer(hoy, limite time.Time) ([]*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + ` FROM lotes
		WHERE estado = $1 AND fecha_vencimiento IS NOT NULL AND fecha_vencimiento >= $2 AND fecha_vencimiento < $3
		ORDER BY fecha_vencimiento ASC`
	return r.queryLotes(query, entity.LoteActivo, hoy, limite)
}
