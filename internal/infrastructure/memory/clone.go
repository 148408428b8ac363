package memory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// Copias profundas: lo que entra y sale del store nunca comparte punteros
// con el llamador ni con la instantánea de rollback.

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneLote(l *entity.Lote) *entity.Lote {
	c := *l
	c.FechaVencimiento = cloneTimePtr(l.FechaVencimiento)
	return &c
}

func cloneKardex(k *entity.Kardex) *entity.Kardex {
	c := *k
	return &c
}

func cloneCaja(caja *entity.CajaDiaria) *entity.CajaDiaria {
	c := *caja
	c.MontoCierre = cloneDecimalPtr(caja.MontoCierre)
	c.FechaCierre = cloneTimePtr(caja.FechaCierre)
	return &c
}

func cloneMovimientoCaja(m *entity.MovimientoCaja) *entity.MovimientoCaja {
	c := *m
	return &c
}

func cloneVenta(v *entity.Venta) *entity.Venta {
	c := *v
	c.AnuladaAt = cloneTimePtr(v.AnuladaAt)
	c.Detalles = make([]entity.DetalleVenta, len(v.Detalles))
	copy(c.Detalles, v.Detalles)
	return &c
}

func cloneEntrada(e *entity.Entrada) *entity.Entrada {
	c := *e
	c.Detalles = make([]entity.DetalleEntrada, len(e.Detalles))
	for i, d := range e.Detalles {
		d.FechaVencimiento = cloneTimePtr(d.FechaVencimiento)
		c.Detalles[i] = d
	}
	return &c
}

func cloneCredito(cr *entity.Credito) *entity.Credito {
	c := *cr
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}
