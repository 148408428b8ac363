package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto: serializa por producto los
	// escritores de Kardex y lotes dentro de la transacción.
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStockAndCost actualiza las cachés derivadas (stock = suma de
	// lotes activos, cost = costo promedio del último Kardex). Solo debe
	// llamarse dentro de la transacción que mutó lotes/Kardex.
	UpdateStockAndCost(productID string, stock, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
