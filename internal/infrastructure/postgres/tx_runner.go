package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/tienda-pos/internal/application/caja"
	"github.com/tu-usuario/tienda-pos/internal/application/pos"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// Ensure TxRunner implements caja.TxRunner and pos.TxRunner.
var _ caja.TxRunner = (*TxRunner)(nil)
var _ pos.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCaja inicia una transacción, ejecuta fn con los repos de caja atados a
// la tx y hace Commit o Rollback.
func (r *TxRunner) RunCaja(ctx context.Context, fn func(
	cajaRepo repository.CajaRepository,
	movRepo repository.MovimientoCajaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cajaRepo := NewCajaRepository(tx)
	movRepo := NewMovimientoCajaRepository(tx)

	if err := fn(cajaRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPOS inicia una transacción con todos los repos que usa el coordinador
// de ventas/compras (lotes + Kardex + caja en una sola unidad atómica).
func (r *TxRunner) RunPOS(ctx context.Context, fn func(repos pos.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := pos.Repos{
		Kardex:          NewKardexRepository(tx),
		Lotes:           NewLoteRepository(tx),
		Productos:       NewProductRepository(tx),
		Ventas:          NewVentaRepository(tx),
		Entradas:        NewEntradaRepository(tx),
		Creditos:        NewCreditoRepository(tx),
		Cajas:           NewCajaRepository(tx),
		MovimientosCaja: NewMovimientoCajaRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
