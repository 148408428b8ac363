package product_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/product"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nuevoUseCase(t *testing.T) (*product.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return product.NewUseCase(store.Products()), store
}

func TestCreateProduct(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	resp, err := uc.Create(dto.CreateProductRequest{
		SKU:   "ARROZ-1K",
		Name:  "Arroz extra 1kg",
		Price: d("8.50"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "unidad", resp.UnitMeasure) // default
	assert.True(t, resp.Cost.IsZero())          // el costo lo fija el inventario
	assert.True(t, resp.Stock.IsZero())
}

func TestCreateProductValidaciones(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	_, err := uc.Create(dto.CreateProductRequest{SKU: "", Name: "x", Price: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "X-1", Name: "", Price: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "X-1", Name: "x", Price: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProductSKUDuplicado(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	_, err := uc.Create(dto.CreateProductRequest{SKU: "ARROZ-1K", Name: "Arroz", Price: d("8.50")})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateProductRequest{SKU: "ARROZ-1K", Name: "Otro arroz", Price: d("9.00")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// productosCaidos simula un repositorio cuya consulta por SKU falla.
type productosCaidos struct {
	repository.ProductRepository
	err error
}

func (r productosCaidos) GetBySKU(string) (*entity.Product, error) { return nil, r.err }

func TestCreateProductPropagaErrorDelRepositorio(t *testing.T) {
	falla := errors.New("conexión perdida")
	uc := product.NewUseCase(productosCaidos{err: falla})

	// Un fallo de infraestructura no se confunde con "SKU libre".
	_, err := uc.Create(dto.CreateProductRequest{SKU: "ARROZ-1K", Name: "Arroz", Price: d("8.50")})
	assert.ErrorIs(t, err, falla)
}

func TestUpdateProduct(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	creado, err := uc.Create(dto.CreateProductRequest{SKU: "ARROZ-1K", Name: "Arroz", Price: d("8.50")})
	require.NoError(t, err)

	nombre := "Arroz superior"
	precio := d("9.20")
	resp, err := uc.Update(creado.ID, dto.UpdateProductRequest{Name: &nombre, Price: &precio})
	require.NoError(t, err)
	assert.Equal(t, "Arroz superior", resp.Name)
	assert.True(t, resp.Price.Equal(d("9.20")))
	assert.Equal(t, "ARROZ-1K", resp.SKU) // el SKU no cambia

	negativo := d("-1")
	_, err = uc.Update(creado.ID, dto.UpdateProductRequest{Price: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProductNoTocaStockNiCosto(t *testing.T) {
	uc, store := nuevoUseCase(t)
	creado, err := uc.Create(dto.CreateProductRequest{SKU: "ARROZ-1K", Name: "Arroz", Price: d("8.50")})
	require.NoError(t, err)

	// El inventario fija stock y costo por su lado.
	require.NoError(t, store.Products().UpdateStockAndCost(creado.ID, d("10"), d("5")))

	nombre := "Arroz superior"
	resp, err := uc.Update(creado.ID, dto.UpdateProductRequest{Name: &nombre})
	require.NoError(t, err)
	assert.True(t, resp.Stock.Equal(d("10")))
	assert.True(t, resp.Cost.Equal(d("5")))
}

func TestGetByIDInexistente(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	resp, err := uc.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestListProductos(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	for _, sku := range []string{"A-1", "A-2", "A-3"} {
		_, err := uc.Create(dto.CreateProductRequest{SKU: sku, Name: "Producto " + sku, Price: d("1")})
		require.NoError(t, err)
	}

	resp, err := uc.List(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Products, 2)

	resp, err = uc.List(0, 0) // límite inválido cae al default
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
}
