package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.CreditoRepository = (*CreditoRepo)(nil)

// CreditoRepo implementación del puerto CreditoRepository sobre PostgreSQL.
type CreditoRepo struct {
	q Querier
}

// NewCreditoRepository construye el adaptador de persistencia de créditos.
func NewCreditoRepository(q Querier) *CreditoRepo {
	return &CreditoRepo{q: q}
}

const creditoColumns = `id, venta_id, cliente, total, saldo, estado, created_at, updated_at`

func scanCredito(row pgx.Row) (*entity.Credito, error) {
	var c entity.Credito
	err := row.Scan(&c.ID, &c.VentaID, &c.Cliente, &c.Total, &c.Saldo, &c.Estado, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo crédito.
func (r *CreditoRepo) Create(credito *entity.Credito) error {
	query := `
		INSERT INTO creditos (id, venta_id, cliente, total, saldo, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		credito.ID, credito.VentaID, credito.Cliente, credito.Total, credito.Saldo,
		credito.Estado, credito.CreatedAt, credito.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credito: %w", err)
	}
	return nil
}

// GetByID obtiene un crédito por ID.
func (r *CreditoRepo) GetByID(id string) (*entity.Credito, error) {
	query := `SELECT ` + creditoColumns + ` FROM creditos WHERE id = $1`
	c, err := scanCredito(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credito: %w", err)
	}
	return c, nil
}

// GetByVentaID obtiene el crédito asociado a una venta.
func (r *CreditoRepo) GetByVentaID(ventaID string) (*entity.Credito, error) {
	query := `SELECT ` + creditoColumns + ` FROM creditos WHERE venta_id = $1`
	c, err := scanCredito(r.q.QueryRow(context.Background(), query, ventaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credito by venta: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene un crédito bloqueando su fila: serializa abonos
// concurrentes sobre el mismo saldo.
func (r *CreditoRepo) GetForUpdate(id string) (*entity.Credito, error) {
	query := `SELECT ` + creditoColumns + ` FROM creditos WHERE id = $1 FOR UPDATE`
	c, err := scanCredito(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credito for update: %w", err)
	}
	return c, nil
}

// Update actualiza saldo y estado de un crédito.
func (r *CreditoRepo) Update(credito *entity.Credito) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE creditos SET saldo = $2, estado = $3, updated_at = $4 WHERE id = $1`,
		credito.ID, credito.Saldo, credito.Estado, credito.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update credito: %w", err)
	}
	return nil
}

// ListPendientes lista los créditos con saldo pendiente.
func (r *CreditoRepo) ListPendientes() ([]*entity.Credito, error) {
	query := `SELECT ` + creditoColumns + ` FROM creditos WHERE estado = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, entity.CreditoPendiente)
	if err != nil {
		return nil, fmt.Errorf("list creditos pendientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Credito
	for rows.Next() {
		c, err := scanCredito(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credito: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
