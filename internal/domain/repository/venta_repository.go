package repository

import (
	"time"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// VentaRepository define el puerto de persistencia de ventas.
type VentaRepository interface {
	// Create persiste la venta con sus detalles.
	Create(venta *entity.Venta) error
	// GetByID devuelve la venta con sus detalles (nil si no existe).
	GetByID(id string) (*entity.Venta, error)
	// UpdateEstado marca la venta como anulada.
	UpdateEstado(id, estado, usuario string, fecha time.Time) error
	ListByRango(desde, hasta time.Time, limit, offset int) ([]*entity.Venta, error)
}

// EntradaRepository define el puerto de persistencia de entradas (compras).
type EntradaRepository interface {
	Create(entrada *entity.Entrada) error
	GetByID(id string) (*entity.Entrada, error)
	ListByRango(desde, hasta time.Time, limit, offset int) ([]*entity.Entrada, error)
}

// CreditoRepository define el puerto de persistencia de créditos.
type CreditoRepository interface {
	Create(credito *entity.Credito) error
	GetByID(id string) (*entity.Credito, error)
	GetByVentaID(ventaID string) (*entity.Credito, error)
	GetForUpdate(id string) (*entity.Credito, error)
	Update(credito *entity.Credito) error
	ListPendientes() ([]*entity.Credito, error)
}
