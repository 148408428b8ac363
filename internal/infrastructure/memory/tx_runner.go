package memory

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/application/caja"
	"github.com/tu-usuario/tienda-pos/internal/application/pos"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ caja.TxRunner = (*TxRunner)(nil)
var _ pos.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el store en memoria: retiene el mutex durante
// toda la transacción, toma una instantánea del estado y la restaura si fn
// falla. Misma semántica todo-o-nada que la transacción de PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(fn func() error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.d.snapshot()
	if err := fn(); err != nil {
		r.store.d = snapshot
		return err
	}
	return nil
}

// RunCaja ejecuta fn con los repos de caja dentro de una transacción.
func (r *TxRunner) RunCaja(ctx context.Context, fn func(
	cajaRepo repository.CajaRepository,
	movRepo repository.MovimientoCajaRepository,
) error) error {
	return r.run(func() error {
		return fn(
			&cajaRepo{d: func() *data { return r.store.d }},
			&movimientoCajaRepo{d: func() *data { return r.store.d }},
		)
	})
}

// RunPOS ejecuta fn con todos los repos del POS dentro de una transacción.
func (r *TxRunner) RunPOS(ctx context.Context, fn func(repos pos.Repos) error) error {
	return r.run(func() error {
		d := func() *data { return r.store.d }
		return fn(pos.Repos{
			Kardex:          &kardexRepo{d: d},
			Lotes:           &loteRepo{d: d},
			Productos:       &productRepo{d: d},
			Ventas:          &ventaRepo{d: d},
			Entradas:        &entradaRepo{d: d},
			Creditos:        &creditoRepo{d: d},
			Cajas:           &cajaRepo{d: d},
			MovimientosCaja: &movimientoCajaRepo{d: d},
		})
	})
}
