package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// Cada repo guarda un accesor al estado vigente (tras un rollback el puntero
// cambia) y, fuera de transacción, el mutex del store. Dentro de una
// transacción mu es nil: el TxRunner ya retiene el lock.

func lock(mu *sync.Mutex) func() {
	if mu == nil {
		return func() {}
	}
	mu.Lock()
	return mu.Unlock
}

// ---- productos ----

type productRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(product *entity.Product) error {
	defer lock(r.mu)()
	d := r.d()
	if _, ok := d.products[product.ID]; ok {
		return domain.ErrConflict
	}
	for _, p := range d.products {
		if p.SKU == product.SKU {
			return domain.ErrConflict
		}
	}
	d.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	defer lock(r.mu)()
	p, ok := r.d().products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex del store ya
// serializa a los escritores.
func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	defer lock(r.mu)()
	for _, p := range r.d().products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	defer lock(r.mu)()
	d := r.d()
	existing, ok := d.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneProduct(product)
	// Cost y Stock solo cambian vía UpdateStockAndCost
	c.Cost = existing.Cost
	c.Stock = existing.Stock
	d.products[product.ID] = c
	return nil
}

func (r *productRepo) UpdateStockAndCost(productID string, stock, cost decimal.Decimal) error {
	defer lock(r.mu)()
	p, ok := r.d().products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.Cost = cost
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	defer lock(r.mu)()
	var list []*entity.Product
	for _, p := range r.d().products {
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ---- lotes ----

type loteRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.LoteRepository = (*loteRepo)(nil)

func (r *loteRepo) Create(lote *entity.Lote) error {
	defer lock(r.mu)()
	d := r.d()
	d.lotes = append(d.lotes, cloneLote(lote))
	return nil
}

func (r *loteRepo) GetByID(id string) (*entity.Lote, error) {
	defer lock(r.mu)()
	for _, l := range r.d().lotes {
		if l.ID == id {
			return cloneLote(l), nil
		}
	}
	return nil, nil
}

func (r *loteRepo) Update(lote *entity.Lote) error {
	defer lock(r.mu)()
	d := r.d()
	for i, l := range d.lotes {
		if l.ID == lote.ID {
			d.lotes[i] = cloneLote(lote)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ordenFEFO: vencimiento ascendente, sin vencimiento al final; desempate por
// fecha de entrada.
func ordenFEFO(a, b *entity.Lote) bool {
	switch {
	case a.FechaVencimiento == nil && b.FechaVencimiento == nil:
		return a.FechaEntrada.Before(b.FechaEntrada)
	case a.FechaVencimiento == nil:
		return false
	case b.FechaVencimiento == nil:
		return true
	case a.FechaVencimiento.Equal(*b.FechaVencimiento):
		return a.FechaEntrada.Before(b.FechaEntrada)
	default:
		return a.FechaVencimiento.Before(*b.FechaVencimiento)
	}
}

func (r *loteRepo) filter(keep func(*entity.Lote) bool) []*entity.Lote {
	var list []*entity.Lote
	for _, l := range r.d().lotes {
		if keep(l) {
			list = append(list, cloneLote(l))
		}
	}
	return list
}

func (r *loteRepo) ListDisponibles(productID string) ([]*entity.Lote, error) {
	defer lock(r.mu)()
	list := r.filter(func(l *entity.Lote) bool {
		return l.ProductID == productID && l.Estado == entity.LoteActivo && l.CantidadDisponible.IsPositive()
	})
	sort.SliceStable(list, func(i, j int) bool { return ordenFEFO(list[i], list[j]) })
	return list, nil
}

func (r *loteRepo) ListRestaurables(productID string) ([]*entity.Lote, error) {
	defer lock(r.mu)()
	list := r.filter(func(l *entity.Lote) bool {
		return l.ProductID == productID && l.Estado != entity.LoteRetirado &&
			l.CantidadDisponible.LessThan(l.CantidadRecibida)
	})
	// orden inverso al de consumo
	sort.SliceStable(list, func(i, j int) bool { return ordenFEFO(list[j], list[i]) })
	return list, nil
}

func (r *loteRepo) ListByProduct(productID string) ([]*entity.Lote, error) {
	defer lock(r.mu)()
	list := r.filter(func(l *entity.Lote) bool { return l.ProductID == productID })
	sort.SliceStable(list, func(i, j int) bool { return ordenFEFO(list[i], list[j]) })
	return list, nil
}

func (r *loteRepo) SumDisponible(productID string) (decimal.Decimal, error) {
	defer lock(r.mu)()
	total := decimal.Zero
	for _, l := range r.d().lotes {
		if l.ProductID == productID && l.Estado == entity.LoteActivo {
			total = total.Add(l.CantidadDisponible)
		}
	}
	return total, nil
}

func (r *loteRepo) ListVencidos(hoy time.Time) ([]*entity.Lote, error) {
	defer lock(r.mu)()
	list := r.filter(func(l *entity.Lote) bool {
		return l.Estado == entity.LoteActivo && l.FechaVencimiento != nil && l.FechaVencimiento.Before(hoy)
	})
	sort.SliceStable(list, func(i, j int) bool { return ordenFEFO(list[i], list[j]) })
	return list, nil
}

func (r *loteRepo) ListProximosAVencer(hoy, limite time.Time) ([]*entity.Lote, error) {
	defer lock(r.mu)()
	list := r.filter(func(l *entity.Lote) bool {
		return l.Estado == entity.LoteActivo && l.FechaVencimiento != nil &&
			!l.FechaVencimiento.Before(hoy) && l.FechaVencimiento.Before(limite)
	})
	sort.SliceStable(list, func(i, j int) bool { return ordenFEFO(list[i], list[j]) })
	return list, nil
}

// ---- kardex ----

type kardexRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.KardexRepository = (*kardexRepo)(nil)

func (r *kardexRepo) Create(movimiento *entity.Kardex) error {
	defer lock(r.mu)()
	d := r.d()
	// Espejo del bigserial: orden total de inserción del ledger.
	movimiento.Secuencia = int64(len(d.kardex) + 1)
	d.kardex = append(d.kardex, cloneKardex(movimiento))
	return nil
}

func (r *kardexRepo) GetByID(id string) (*entity.Kardex, error) {
	defer lock(r.mu)()
	for _, k := range r.d().kardex {
		if k.ID == id {
			return cloneKardex(k), nil
		}
	}
	return nil, nil
}

func (r *kardexRepo) GetLatest(productID string) (*entity.Kardex, error) {
	defer lock(r.mu)()
	ks := r.d().kardex
	for i := len(ks) - 1; i >= 0; i-- {
		if ks[i].ProductID == productID {
			return cloneKardex(ks[i]), nil
		}
	}
	return nil, nil
}

func (r *kardexRepo) GetLatestBefore(productID string, t time.Time) (*entity.Kardex, error) {
	defer lock(r.mu)()
	ks := r.d().kardex
	for i := len(ks) - 1; i >= 0; i-- {
		if ks[i].ProductID == productID && ks[i].FechaMovimiento.Before(t) {
			return cloneKardex(ks[i]), nil
		}
	}
	return nil, nil
}

func (r *kardexRepo) List(filter repository.KardexFilter) ([]*entity.Kardex, error) {
	defer lock(r.mu)()
	var list []*entity.Kardex
	for _, k := range r.d().kardex {
		if k.ProductID != filter.ProductID {
			continue
		}
		if filter.Desde != nil && k.FechaMovimiento.Before(*filter.Desde) {
			continue
		}
		if filter.Hasta != nil && k.FechaMovimiento.After(*filter.Hasta) {
			continue
		}
		if filter.TipoMovimiento != "" && k.TipoMovimiento != filter.TipoMovimiento {
			continue
		}
		list = append(list, cloneKardex(k))
	}
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ---- cajas ----

type cajaRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.CajaRepository = (*cajaRepo)(nil)

func (r *cajaRepo) Create(caja *entity.CajaDiaria) error {
	defer lock(r.mu)()
	d := r.d()
	for _, c := range d.cajas {
		if c.ID == caja.ID || c.Fecha.Equal(caja.Fecha) {
			return domain.ErrCajaDuplicada
		}
	}
	d.cajas = append(d.cajas, cloneCaja(caja))
	return nil
}

func (r *cajaRepo) find(match func(*entity.CajaDiaria) bool) *entity.CajaDiaria {
	for _, c := range r.d().cajas {
		if match(c) {
			return cloneCaja(c)
		}
	}
	return nil
}

func (r *cajaRepo) GetByID(id string) (*entity.CajaDiaria, error) {
	defer lock(r.mu)()
	return r.find(func(c *entity.CajaDiaria) bool { return c.ID == id }), nil
}

func (r *cajaRepo) GetForUpdate(id string) (*entity.CajaDiaria, error) {
	return r.GetByID(id)
}

func (r *cajaRepo) Update(caja *entity.CajaDiaria) error {
	defer lock(r.mu)()
	d := r.d()
	for i, c := range d.cajas {
		if c.ID == caja.ID {
			d.cajas[i] = cloneCaja(caja)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *cajaRepo) GetAbierta() (*entity.CajaDiaria, error) {
	defer lock(r.mu)()
	return r.find(func(c *entity.CajaDiaria) bool { return c.Estado == entity.CajaEstadoAbierta }), nil
}

func (r *cajaRepo) ExistsAbierta() (bool, error) {
	caja, err := r.GetAbierta()
	return caja != nil, err
}

func (r *cajaRepo) GetByFecha(fecha time.Time) (*entity.CajaDiaria, error) {
	defer lock(r.mu)()
	return r.find(func(c *entity.CajaDiaria) bool { return c.Fecha.Equal(fecha) }), nil
}

func (r *cajaRepo) ListByRango(desde, hasta time.Time) ([]*entity.CajaDiaria, error) {
	defer lock(r.mu)()
	var list []*entity.CajaDiaria
	for _, c := range r.d().cajas {
		if !c.Fecha.Before(desde) && !c.Fecha.After(hasta) {
			list = append(list, cloneCaja(c))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Fecha.After(list[j].Fecha) })
	return list, nil
}

// ---- movimientos de caja ----

type movimientoCajaRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.MovimientoCajaRepository = (*movimientoCajaRepo)(nil)

func (r *movimientoCajaRepo) Create(movimiento *entity.MovimientoCaja) error {
	defer lock(r.mu)()
	d := r.d()
	d.movimientosCaja = append(d.movimientosCaja, cloneMovimientoCaja(movimiento))
	return nil
}

func (r *movimientoCajaRepo) ListByCaja(cajaID string) ([]*entity.MovimientoCaja, error) {
	defer lock(r.mu)()
	var list []*entity.MovimientoCaja
	for _, m := range r.d().movimientosCaja {
		if m.CajaID == cajaID {
			list = append(list, cloneMovimientoCaja(m))
		}
	}
	return list, nil
}

func (r *movimientoCajaRepo) SumByTipo(cajaID, tipo string) (decimal.Decimal, error) {
	defer lock(r.mu)()
	total := decimal.Zero
	for _, m := range r.d().movimientosCaja {
		if m.CajaID == cajaID && m.TipoMovimiento == tipo {
			total = total.Add(m.Monto)
		}
	}
	return total, nil
}

// ---- ventas ----

type ventaRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.VentaRepository = (*ventaRepo)(nil)

func (r *ventaRepo) Create(venta *entity.Venta) error {
	defer lock(r.mu)()
	d := r.d()
	if _, ok := d.ventas[venta.ID]; ok {
		return domain.ErrConflict
	}
	d.ventas[venta.ID] = cloneVenta(venta)
	return nil
}

func (r *ventaRepo) GetByID(id string) (*entity.Venta, error) {
	defer lock(r.mu)()
	v, ok := r.d().ventas[id]
	if !ok {
		return nil, nil
	}
	return cloneVenta(v), nil
}

func (r *ventaRepo) UpdateEstado(id, estado, usuario string, fecha time.Time) error {
	defer lock(r.mu)()
	v, ok := r.d().ventas[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Estado = estado
	v.AnuladaPor = usuario
	f := fecha
	v.AnuladaAt = &f
	return nil
}

func (r *ventaRepo) ListByRango(desde, hasta time.Time, limit, offset int) ([]*entity.Venta, error) {
	defer lock(r.mu)()
	var list []*entity.Venta
	for _, v := range r.d().ventas {
		if !v.Fecha.Before(desde) && !v.Fecha.After(hasta) {
			list = append(list, cloneVenta(v))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Fecha.After(list[j].Fecha) })
	return paginate(list, limit, offset), nil
}

// ---- entradas ----

type entradaRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.EntradaRepository = (*entradaRepo)(nil)

func (r *entradaRepo) Create(entrada *entity.Entrada) error {
	defer lock(r.mu)()
	d := r.d()
	if _, ok := d.entradas[entrada.ID]; ok {
		return domain.ErrConflict
	}
	d.entradas[entrada.ID] = cloneEntrada(entrada)
	return nil
}

func (r *entradaRepo) GetByID(id string) (*entity.Entrada, error) {
	defer lock(r.mu)()
	e, ok := r.d().entradas[id]
	if !ok {
		return nil, nil
	}
	return cloneEntrada(e), nil
}

func (r *entradaRepo) ListByRango(desde, hasta time.Time, limit, offset int) ([]*entity.Entrada, error) {
	defer lock(r.mu)()
	var list []*entity.Entrada
	for _, e := range r.d().entradas {
		if !e.Fecha.Before(desde) && !e.Fecha.After(hasta) {
			list = append(list, cloneEntrada(e))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Fecha.After(list[j].Fecha) })
	return paginate(list, limit, offset), nil
}

// ---- creditos ----

type creditoRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.CreditoRepository = (*creditoRepo)(nil)

func (r *creditoRepo) Create(credito *entity.Credito) error {
	defer lock(r.mu)()
	d := r.d()
	if _, ok := d.creditos[credito.ID]; ok {
		return domain.ErrConflict
	}
	d.creditos[credito.ID] = cloneCredito(credito)
	return nil
}

func (r *creditoRepo) GetByID(id string) (*entity.Credito, error) {
	defer lock(r.mu)()
	c, ok := r.d().creditos[id]
	if !ok {
		return nil, nil
	}
	return cloneCredito(c), nil
}

func (r *creditoRepo) GetByVentaID(ventaID string) (*entity.Credito, error) {
	defer lock(r.mu)()
	for _, c := range r.d().creditos {
		if c.VentaID == ventaID {
			return cloneCredito(c), nil
		}
	}
	return nil, nil
}

func (r *creditoRepo) GetForUpdate(id string) (*entity.Credito, error) {
	return r.GetByID(id)
}

func (r *creditoRepo) Update(credito *entity.Credito) error {
	defer lock(r.mu)()
	d := r.d()
	if _, ok := d.creditos[credito.ID]; !ok {
		return domain.ErrNotFound
	}
	d.creditos[credito.ID] = cloneCredito(credito)
	return nil
}

func (r *creditoRepo) ListPendientes() ([]*entity.Credito, error) {
	defer lock(r.mu)()
	var list []*entity.Credito
	for _, c := range r.d().creditos {
		if c.Estado == entity.CreditoPendiente {
			list = append(list, cloneCredito(c))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// ---- usuarios ----

type userRepo struct {
	d  func() *data
	mu *sync.Mutex
}

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(user *entity.User) error {
	defer lock(r.mu)()
	d := r.d()
	for _, u := range d.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	d.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	defer lock(r.mu)()
	u, ok := r.d().users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	defer lock(r.mu)()
	for _, u := range r.d().users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}
