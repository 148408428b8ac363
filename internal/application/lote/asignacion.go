package lote

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// Consumo resultado de consumir una cantidad de un lote.
type Consumo struct {
	Lote     *entity.Lote
	Cantidad decimal.Decimal
}

// Asignar consume la cantidad pedida de los lotes del producto, primero el
// más próximo a vencer (los sin vencimiento al final). Es todo-o-nada: si la
// suma disponible no alcanza, falla con ErrInsufficientStock sin mutar
// ningún lote. El caller debe tener bloqueada la fila del producto, que
// serializa asignaciones concurrentes del mismo producto.
func Asignar(loteRepo repository.LoteRepository, productID string, cantidad decimal.Decimal) ([]Consumo, error) {
	if !cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	candidatos, err := loteRepo.ListDisponibles(productID)
	if err != nil {
		return nil, err
	}

	// Verificación previa: nada se muta si el total no alcanza.
	total := decimal.Zero
	for _, l := range candidatos {
		total = total.Add(l.CantidadDisponible)
	}
	if total.LessThan(cantidad) {
		return nil, domain.ErrInsufficientStock
	}

	var consumos []Consumo
	restante := cantidad
	for _, l := range candidatos {
		if !restante.GreaterThan(decimal.Zero) {
			break
		}
		toma := decimal.Min(restante, l.CantidadDisponible)
		l.CantidadDisponible = l.CantidadDisponible.Sub(toma)
		if l.CantidadDisponible.IsZero() {
			l.Estado = entity.LoteAgotado
		}
		if err := loteRepo.Update(l); err != nil {
			return nil, err
		}
		consumos = append(consumos, Consumo{Lote: l, Cantidad: toma})
		restante = restante.Sub(toma)
	}
	return consumos, nil
}

// Restaurar deshace una asignación: devuelve la cantidad a los lotes del
// producto en orden inverso al de consumo (vencimiento descendente, sin
// vencimiento primero), sin superar la cantidad recibida de cada lote, y
// reactiva los AGOTADO que recuperan saldo. Falla con ErrConflict sin mutar
// nada si la capacidad restaurable no alcanza.
func Restaurar(loteRepo repository.LoteRepository, productID string, cantidad decimal.Decimal) ([]Consumo, error) {
	if !cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	candidatos, err := loteRepo.ListRestaurables(productID)
	if err != nil {
		return nil, err
	}

	capacidad := decimal.Zero
	for _, l := range candidatos {
		capacidad = capacidad.Add(l.CantidadRecibida.Sub(l.CantidadDisponible))
	}
	if capacidad.LessThan(cantidad) {
		return nil, domain.ErrConflict
	}

	var devoluciones []Consumo
	restante := cantidad
	for _, l := range candidatos {
		if !restante.GreaterThan(decimal.Zero) {
			break
		}
		espacio := l.CantidadRecibida.Sub(l.CantidadDisponible)
		devuelve := decimal.Min(restante, espacio)
		if !devuelve.GreaterThan(decimal.Zero) {
			continue
		}
		l.CantidadDisponible = l.CantidadDisponible.Add(devuelve)
		if l.Estado == entity.LoteAgotado && l.CantidadDisponible.GreaterThan(decimal.Zero) {
			l.Estado = entity.LoteActivo
		}
		if err := loteRepo.Update(l); err != nil {
			return nil, err
		}
		devoluciones = append(devoluciones, Consumo{Lote: l, Cantidad: devuelve})
		restante = restante.Sub(devuelve)
	}
	return devoluciones, nil
}
