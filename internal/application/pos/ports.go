package pos

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción, que el coordinador usa
// para que consumo de lotes, apunte de Kardex y apunte de caja sean una sola
// unidad atómica: si cualquier paso falla, todo se revierte.
type Repos struct {
	Kardex          repository.KardexRepository
	Lotes           repository.LoteRepository
	Productos       repository.ProductRepository
	Ventas          repository.VentaRepository
	Entradas        repository.EntradaRepository
	Creditos        repository.CreditoRepository
	Cajas           repository.CajaRepository
	MovimientosCaja repository.MovimientoCajaRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con todos los
// repositorios del POS atados a ella.
type TxRunner interface {
	RunPOS(ctx context.Context, fn func(r Repos) error) error
}
