// Package memory implementa todos los puertos de persistencia sobre
// estructuras en memoria. Se usa en modo demo/desarrollo y en los tests de
// integración de los casos de uso: el TxRunner toma una instantánea del
// estado y la restaura si la transacción falla, así los tests ejercitan la
// misma semántica todo-o-nada que PostgreSQL.
package memory

import (
	"sync"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// Store estado compartido en memoria. Un mutex único serializa todo acceso;
// las transacciones lo retienen de principio a fin.
type Store struct {
	mu sync.Mutex
	d  *data
}

type data struct {
	products        map[string]*entity.Product
	lotes           []*entity.Lote
	kardex          []*entity.Kardex
	cajas           []*entity.CajaDiaria
	movimientosCaja []*entity.MovimientoCaja
	ventas          map[string]*entity.Venta
	entradas        map[string]*entity.Entrada
	creditos        map[string]*entity.Credito
	users           map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

func newData() *data {
	return &data{
		products: make(map[string]*entity.Product),
		ventas:   make(map[string]*entity.Venta),
		entradas: make(map[string]*entity.Entrada),
		creditos: make(map[string]*entity.Credito),
		users:    make(map[string]*entity.User),
	}
}

// snapshot copia profunda de todo el estado, para restaurar en rollback.
func (d *data) snapshot() *data {
	s := newData()
	for id, p := range d.products {
		s.products[id] = cloneProduct(p)
	}
	s.lotes = make([]*entity.Lote, len(d.lotes))
	for i, l := range d.lotes {
		s.lotes[i] = cloneLote(l)
	}
	s.kardex = make([]*entity.Kardex, len(d.kardex))
	for i, k := range d.kardex {
		s.kardex[i] = cloneKardex(k)
	}
	s.cajas = make([]*entity.CajaDiaria, len(d.cajas))
	for i, c := range d.cajas {
		s.cajas[i] = cloneCaja(c)
	}
	s.movimientosCaja = make([]*entity.MovimientoCaja, len(d.movimientosCaja))
	for i, m := range d.movimientosCaja {
		s.movimientosCaja[i] = cloneMovimientoCaja(m)
	}
	for id, v := range d.ventas {
		s.ventas[id] = cloneVenta(v)
	}
	for id, e := range d.entradas {
		s.entradas[id] = cloneEntrada(e)
	}
	for id, c := range d.creditos {
		s.creditos[id] = cloneCredito(c)
	}
	for id, u := range d.users {
		s.users[id] = cloneUser(u)
	}
	return s
}

// Accesores de repositorios fuera de transacción (cada llamada toma el mutex).

func (s *Store) Products() repository.ProductRepository {
	return &productRepo{d: func() *data { return s.d }, mu: &s.mu}
}

func (s *Store) Lotes() repository.LoteRepository {
	return &loteRepo{d: func() *data { return s.d }, mu: &s.mu}
}

func (s *Store) Kardex() repository.KardexRepository {
	return &kardexRepo{d: func() *data { return s.d }, mu: &s.mu}
}

func (s *Store) Cajas() repository.CajaRepository {
	return &cajaRepo{d: func() *data { return s.d }, mu: &s.mu}
}

func (s *Store) MovimientosCaja() repository.MovimientoCajaRepository {
	return &movimientoCajaRepo{d: func() *data { return s.d }, mu: &s.mu}
}

func (s *Store) Ventas() repository.VentaRepository {
	return &ventaRepo{d: func() *data { return s.d }, mu: &s.mu}
}

func (s *Store) Entradas() repository.EntradaRepository {
	return &entradaRepo{d: func() *data { return s.d }, mu: &s.mu}
}

func (s *Store) Creditos() repository.CreditoRepository {
	return &creditoRepo{d: func() *data { return s.d }, mu: &s.mu}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepo{d: func() *data { return s.d }, mu: &s.mu}
}
