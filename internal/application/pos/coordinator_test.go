package pos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/caja"
	"github.com/tu-usuario/tienda-pos/internal/application/kardex"
	"github.com/tu-usuario/tienda-pos/internal/application/pos"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type reporteFalso struct{}

func (reporteFalso) GenerarReporteCaja(_ *entity.CajaDiaria, _ []*entity.MovimientoCaja) ([]byte, error) {
	return []byte("%PDF-falso"), nil
}

// entorno arma un coordinador completo sobre el store en memoria.
type entorno struct {
	store  *memory.Store
	coord  *pos.Coordinator
	cajaUC *caja.UseCase
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	kardexSvc := kardex.NewService(store.Kardex(), store.Products())
	cajaUC := caja.NewUseCase(txRunner, store.Cajas(), store.MovimientosCaja(), reporteFalso{})
	return &entorno{
		store:  store,
		coord:  pos.NewCoordinator(txRunner, kardexSvc, cajaUC),
		cajaUC: cajaUC,
	}
}

func (e *entorno) crearProducto(t *testing.T, sku, precio string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         sku,
		Name:        "Producto " + sku,
		Price:       d(precio),
		UnitMeasure: "unidad",
	}
	require.NoError(t, e.store.Products().Create(p))
	return p
}

func (e *entorno) abrirCaja(t *testing.T, apertura string) *entity.CajaDiaria {
	t.Helper()
	abierta, err := e.cajaUC.Abrir(context.Background(), d(apertura), "cajero1", "")
	require.NoError(t, err)
	return abierta
}

func (e *entorno) comprar(t *testing.T, productID, cantidad, costo string, vencimiento *time.Time) *entity.Entrada {
	t.Helper()
	entrada, err := e.coord.RegistrarCompra(context.Background(), pos.CompraInput{
		Proveedor: "Distribuidora Sur",
		Usuario:   "bodeguero",
		Lineas: []pos.LineaCompra{{
			ProductID:        productID,
			Cantidad:         d(cantidad),
			CostoUnitario:    d(costo),
			FechaVencimiento: vencimiento,
		}},
	})
	require.NoError(t, err)
	return entrada
}

// verificarConsistencia comprueba que las tres vistas del stock coinciden:
// la caché del producto, la suma de lotes activos y el saldo del Kardex.
func (e *entorno) verificarConsistencia(t *testing.T, productID string) {
	t.Helper()
	producto, err := e.store.Products().GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, producto)

	suma, err := e.store.Lotes().SumDisponible(productID)
	require.NoError(t, err)
	assert.True(t, producto.Stock.Equal(suma), "stock del producto %s != suma de lotes %s", producto.Stock, suma)

	ultimo, err := e.store.Kardex().GetLatest(productID)
	require.NoError(t, err)
	if ultimo != nil {
		assert.True(t, suma.Equal(ultimo.StockActual), "suma de lotes %s != saldo kardex %s", suma, ultimo.StockActual)
		assert.True(t, producto.Cost.Equal(ultimo.CostoPromedioActual))
	}
}

func fechaPtr(t time.Time) *time.Time { return &t }

func TestRegistrarCompraContado(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	abierta := e.abrirCaja(t, "200")
	venc := time.Now().AddDate(0, 0, 90)

	entrada, err := e.coord.RegistrarCompra(context.Background(), pos.CompraInput{
		Proveedor:   "Distribuidora Sur",
		PagoContado: true,
		Usuario:     "bodeguero",
		Lineas: []pos.LineaCompra{{
			ProductID:        producto.ID,
			Cantidad:         d("10"),
			CostoUnitario:    d("5.00"),
			FechaVencimiento: &venc,
		}},
	})
	require.NoError(t, err)
	require.Len(t, entrada.Detalles, 1)
	assert.True(t, entrada.Total.Equal(d("50")))
	assert.NotEmpty(t, entrada.Detalles[0].LoteID)

	// Lote creado con el saldo completo.
	l, err := e.store.Lotes().GetByID(entrada.Detalles[0].LoteID)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.True(t, l.CantidadDisponible.Equal(d("10")))
	require.NotNil(t, l.FechaVencimiento)

	// ENTRADA en el Kardex con el promedio recalculado.
	ultimo, err := e.store.Kardex().GetLatest(producto.ID)
	require.NoError(t, err)
	require.NotNil(t, ultimo)
	assert.Equal(t, entity.KardexEntrada, ultimo.TipoMovimiento)
	assert.Equal(t, "COMPRA-"+entrada.ID, ultimo.ReferenciaDocumento)
	assert.True(t, ultimo.CostoPromedioActual.Equal(d("5")))

	// EGRESO en la caja por el total, dentro de la misma transacción.
	actual, err := e.cajaUC.CajaAbierta(context.Background())
	require.NoError(t, err)
	assert.True(t, actual.TotalEgresos.Equal(d("50")))
	assert.True(t, actual.SaldoActual().Equal(d("150")))
	_ = abierta

	e.verificarConsistencia(t, producto.ID)
}

func TestRegistrarCompraContadoSinCajaAbierta(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")

	_, err := e.coord.RegistrarCompra(context.Background(), pos.CompraInput{
		Proveedor:   "Distribuidora Sur",
		PagoContado: true,
		Usuario:     "bodeguero",
		Lineas: []pos.LineaCompra{{
			ProductID:     producto.ID,
			Cantidad:      d("10"),
			CostoUnitario: d("5.00"),
		}},
	})
	assert.ErrorIs(t, err, domain.ErrCajaCerrada)

	// Nada quedó persistido.
	lotes, err := e.store.Lotes().ListByProduct(producto.ID)
	require.NoError(t, err)
	assert.Empty(t, lotes)
	ultimo, err := e.store.Kardex().GetLatest(producto.ID)
	require.NoError(t, err)
	assert.Nil(t, ultimo)
}

func TestRegistrarCompraACreditoNoTocaCaja(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "AZUCAR-1K", "6.00")

	// Sin caja abierta: una compra a crédito del proveedor pasa igual.
	entrada := e.comprar(t, producto.ID, "8", "3.50", nil)
	assert.True(t, entrada.Total.Equal(d("28")))

	l, err := e.store.Lotes().GetByID(entrada.Detalles[0].LoteID)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Nil(t, l.FechaVencimiento) // sin vencimiento también crea lote

	e.verificarConsistencia(t, producto.ID)
}

func TestRegistrarCompraValidaciones(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "SAL-500G", "2.00")
	ctx := context.Background()

	_, err := e.coord.RegistrarCompra(ctx, pos.CompraInput{Usuario: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.coord.RegistrarCompra(ctx, pos.CompraInput{
		Usuario: "bodeguero",
		Lineas:  []pos.LineaCompra{{ProductID: producto.ID, Cantidad: decimal.Zero, CostoUnitario: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.coord.RegistrarCompra(ctx, pos.CompraInput{
		Usuario: "bodeguero",
		Lineas:  []pos.LineaCompra{{ProductID: producto.ID, Cantidad: d("1"), CostoUnitario: d("-1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.coord.RegistrarCompra(ctx, pos.CompraInput{
		Usuario: "bodeguero",
		Lineas:  []pos.LineaCompra{{ProductID: "no-existe", Cantidad: d("1"), CostoUnitario: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrarVentaContado(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", fechaPtr(time.Now().AddDate(0, 0, 90)))
	e.abrirCaja(t, "100")

	venta, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		Cliente:   "María",
		TipoVenta: entity.VentaContado,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VentaRegistrada, venta.Estado)
	// Sin precio explícito la línea usa el precio de lista.
	assert.True(t, venta.Total.Equal(d("34")))
	require.Len(t, venta.Detalles, 1)
	assert.True(t, venta.Detalles[0].PrecioUnitario.Equal(d("8.50")))

	// SALIDA en el Kardex al promedio vigente, sin repreciar.
	ultimo, err := e.store.Kardex().GetLatest(producto.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.KardexSalida, ultimo.TipoMovimiento)
	assert.Equal(t, "VENTA-"+venta.ID, ultimo.ReferenciaDocumento)
	assert.True(t, ultimo.StockActual.Equal(d("6")))
	assert.True(t, ultimo.CostoPromedioActual.Equal(d("5")))

	// INGRESO en la caja por el total de la venta.
	actual, err := e.cajaUC.CajaAbierta(context.Background())
	require.NoError(t, err)
	assert.True(t, actual.TotalIngresos.Equal(d("34")))

	e.verificarConsistencia(t, producto.ID)
}

func TestRegistrarVentaConsumeLotesEnOrdenFEFO(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "YOGUR-1L", "4.00")
	e.abrirCaja(t, "50")
	tardio := e.comprar(t, producto.ID, "5", "2.00", fechaPtr(time.Now().AddDate(0, 0, 30)))
	temprano := e.comprar(t, producto.ID, "5", "2.00", fechaPtr(time.Now().AddDate(0, 0, 5)))

	_, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		TipoVenta: entity.VentaContado,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("7")}},
	})
	require.NoError(t, err)

	// El lote que vence antes se agota primero aunque entró después.
	lTemprano, err := e.store.Lotes().GetByID(temprano.Detalles[0].LoteID)
	require.NoError(t, err)
	assert.True(t, lTemprano.CantidadDisponible.IsZero())
	assert.Equal(t, entity.LoteAgotado, lTemprano.Estado)

	lTardio, err := e.store.Lotes().GetByID(tardio.Detalles[0].LoteID)
	require.NoError(t, err)
	assert.True(t, lTardio.CantidadDisponible.Equal(d("3")))

	e.verificarConsistencia(t, producto.ID)
}

func TestRegistrarVentaLineasRepetidasDelMismoProducto(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", nil)
	e.abrirCaja(t, "100")

	// Dos líneas del mismo producto en una venta comparten fecha de
	// movimiento: el encadenamiento de saldos depende de la secuencia,
	// no de la fecha.
	venta, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		TipoVenta: entity.VentaContado,
		Usuario:   "cajero1",
		Lineas: []pos.LineaVenta{
			{ProductID: producto.ID, Cantidad: d("2")},
			{ProductID: producto.ID, Cantidad: d("3")},
		},
	})
	require.NoError(t, err)
	assert.True(t, venta.Total.Equal(d("42.5")))

	movs, err := e.store.Kardex().List(repository.KardexFilter{ProductID: producto.ID})
	require.NoError(t, err)
	require.Len(t, movs, 3) // compra + dos salidas
	salida1, salida2 := movs[1], movs[2]
	assert.True(t, salida1.FechaMovimiento.Equal(salida2.FechaMovimiento))
	assert.Greater(t, salida2.Secuencia, salida1.Secuencia)
	// La segunda salida parte del saldo que dejó la primera.
	assert.True(t, salida1.StockAnterior.Equal(d("10")))
	assert.True(t, salida2.StockAnterior.Equal(salida1.StockActual))
	assert.True(t, salida2.StockActual.Equal(d("5")))

	// La venta siguiente lee el saldo real, no el de una salida intermedia.
	_, err = e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		TipoVenta: entity.VentaContado,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("1")}},
	})
	require.NoError(t, err)
	ultimo, err := e.store.Kardex().GetLatest(producto.ID)
	require.NoError(t, err)
	assert.True(t, ultimo.StockAnterior.Equal(d("5")))
	assert.True(t, ultimo.StockActual.Equal(d("4")))

	e.verificarConsistencia(t, producto.ID)
}

func TestRegistrarVentaContadoSinCajaAbierta(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", nil)

	_, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		TipoVenta: entity.VentaContado,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("2")}},
	})
	assert.ErrorIs(t, err, domain.ErrCajaCerrada)

	// Los lotes siguen intactos.
	suma, err := e.store.Lotes().SumDisponible(producto.ID)
	require.NoError(t, err)
	assert.True(t, suma.Equal(d("10")))
}

func TestRegistrarVentaStockInsuficienteRevierteTodo(t *testing.T) {
	e := nuevoEntorno(t)
	// Dos líneas: la primera alcanza, la segunda no. Todo debe revertirse.
	conStock := e.crearProducto(t, "ARROZ-1K", "8.50")
	sinStock := e.crearProducto(t, "AZUCAR-1K", "6.00")
	e.comprar(t, conStock.ID, "10", "5.00", nil)
	e.comprar(t, sinStock.ID, "1", "3.00", nil)
	e.abrirCaja(t, "100")

	_, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		TipoVenta: entity.VentaContado,
		Usuario:   "cajero1",
		Lineas: []pos.LineaVenta{
			{ProductID: conStock.ID, Cantidad: d("4")},
			{ProductID: sinStock.ID, Cantidad: d("5")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La línea que sí alcanzaba también quedó revertida.
	suma, err := e.store.Lotes().SumDisponible(conStock.ID)
	require.NoError(t, err)
	assert.True(t, suma.Equal(d("10")))
	ultimo, err := e.store.Kardex().GetLatest(conStock.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.KardexEntrada, ultimo.TipoMovimiento) // solo la compra

	ventas, err := e.store.Ventas().ListByRango(time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 1), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, ventas)

	actual, err := e.cajaUC.CajaAbierta(context.Background())
	require.NoError(t, err)
	assert.True(t, actual.TotalIngresos.IsZero())
}

func TestRegistrarVentaCredito(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", nil)

	// Una venta a crédito no exige caja abierta ni la toca.
	venta, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		Cliente:   "Don Pedro",
		TipoVenta: entity.VentaCredito,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("3")}},
	})
	require.NoError(t, err)

	credito, err := e.store.Creditos().GetByVentaID(venta.ID)
	require.NoError(t, err)
	require.NotNil(t, credito)
	assert.Equal(t, entity.CreditoPendiente, credito.Estado)
	assert.True(t, credito.Total.Equal(venta.Total))
	assert.True(t, credito.Saldo.Equal(venta.Total))
	assert.Equal(t, "Don Pedro", credito.Cliente)

	e.verificarConsistencia(t, producto.ID)
}

func TestRegistrarVentaValidaciones(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	ctx := context.Background()

	_, err := e.coord.RegistrarVenta(ctx, pos.VentaInput{TipoVenta: entity.VentaContado, Usuario: "cajero1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.coord.RegistrarVenta(ctx, pos.VentaInput{
		TipoVenta: "PERMUTA", Usuario: "cajero1",
		Lineas: []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.coord.RegistrarVenta(ctx, pos.VentaInput{
		TipoVenta: entity.VentaCredito, Usuario: "cajero1",
		Lineas: []pos.LineaVenta{{ProductID: producto.ID, Cantidad: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestAnularVentaContado(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", fechaPtr(time.Now().AddDate(0, 0, 60)))
	e.abrirCaja(t, "100")

	venta, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		TipoVenta: entity.VentaContado,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("4")}},
	})
	require.NoError(t, err)

	anulada, err := e.coord.AnularVenta(context.Background(), venta.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.VentaAnulada, anulada.Estado)
	assert.Equal(t, "admin", anulada.AnuladaPor)
	require.NotNil(t, anulada.AnuladaAt)

	// Los lotes recuperan su saldo.
	suma, err := e.store.Lotes().SumDisponible(producto.ID)
	require.NoError(t, err)
	assert.True(t, suma.Equal(d("10")))

	// La reversa es una ENTRADA compensatoria al costo promedio vigente:
	// el movimiento original no se borra y el promedio no cambia.
	movs, err := e.store.Kardex().List(repository.KardexFilter{ProductID: producto.ID})
	require.NoError(t, err)
	require.Len(t, movs, 3) // compra, venta, reverso
	reverso := movs[2]
	assert.Equal(t, entity.KardexEntrada, reverso.TipoMovimiento)
	assert.Equal(t, "ANULACION-VENTA-"+venta.ID, reverso.ReferenciaDocumento)
	assert.True(t, reverso.PrecioUnitario.Equal(d("5")))
	assert.True(t, reverso.CostoPromedioActual.Equal(d("5")))

	// El ingreso de la venta se revierte con un EGRESO.
	actual, err := e.cajaUC.CajaAbierta(context.Background())
	require.NoError(t, err)
	assert.True(t, actual.TotalIngresos.Equal(d("34")))
	assert.True(t, actual.TotalEgresos.Equal(d("34")))
	assert.True(t, actual.SaldoActual().Equal(d("100")))

	e.verificarConsistencia(t, producto.ID)

	// Anular dos veces no pasa.
	_, err = e.coord.AnularVenta(context.Background(), venta.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAnularVentaCreditoSinAbonos(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", nil)

	venta, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		Cliente:   "Don Pedro",
		TipoVenta: entity.VentaCredito,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("3")}},
	})
	require.NoError(t, err)

	_, err = e.coord.AnularVenta(context.Background(), venta.ID, "admin")
	require.NoError(t, err)

	credito, err := e.store.Creditos().GetByVentaID(venta.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CreditoAnulado, credito.Estado)
	assert.True(t, credito.Saldo.IsZero())
}

func TestAnularVentaCreditoConAbonos(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", nil)
	e.abrirCaja(t, "100")

	venta, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		Cliente:   "Don Pedro",
		TipoVenta: entity.VentaCredito,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("4")}},
	})
	require.NoError(t, err)

	credito, err := e.store.Creditos().GetByVentaID(venta.ID)
	require.NoError(t, err)
	_, err = e.coord.RegistrarPagoCredito(context.Background(), credito.ID, d("10"), "cajero1")
	require.NoError(t, err)

	// Con abonos el crédito ya no se puede anular limpiamente, y el
	// rollback deja los lotes como estaban tras la venta.
	_, err = e.coord.AnularVenta(context.Background(), venta.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrConflict)

	suma, err := e.store.Lotes().SumDisponible(producto.ID)
	require.NoError(t, err)
	assert.True(t, suma.Equal(d("6")))
	ventaDespues, err := e.store.Ventas().GetByID(venta.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VentaRegistrada, ventaDespues.Estado)
}

func TestAnularVentaInexistente(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.coord.AnularVenta(context.Background(), "no-existe", "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrarAjusteEntrada(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "FIDEOS-500G", "3.00")

	mov, err := e.coord.RegistrarAjuste(context.Background(), pos.AjusteInput{
		ProductID:      producto.ID,
		Direccion:      kardex.AjusteEntrada,
		Cantidad:       d("6"),
		PrecioUnitario: d("1.80"),
		Observaciones:  "inventario inicial",
		Usuario:        "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.KardexAjuste, mov.TipoMovimiento)
	assert.True(t, mov.EsAjustePositivo())
	assert.True(t, mov.CostoPromedioActual.Equal(d("1.8")))

	// El ajuste de entrada crea un lote sin vencimiento.
	lotes, err := e.store.Lotes().ListByProduct(producto.ID)
	require.NoError(t, err)
	require.Len(t, lotes, 1)
	assert.Nil(t, lotes[0].FechaVencimiento)
	assert.True(t, lotes[0].CantidadDisponible.Equal(d("6")))

	e.verificarConsistencia(t, producto.ID)
}

func TestRegistrarAjusteSalida(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "FIDEOS-500G", "3.00")
	e.comprar(t, producto.ID, "6", "1.80", nil)

	mov, err := e.coord.RegistrarAjuste(context.Background(), pos.AjusteInput{
		ProductID:      producto.ID,
		Direccion:      kardex.AjusteSalida,
		Cantidad:       d("2"),
		PrecioUnitario: d("1.80"),
		Observaciones:  "merma por rotura",
		Usuario:        "admin",
	})
	require.NoError(t, err)
	assert.False(t, mov.EsAjustePositivo())
	assert.True(t, mov.StockActual.Equal(d("4")))
	assert.True(t, mov.CostoPromedioActual.Equal(d("1.8"))) // la merma no reprecia

	e.verificarConsistencia(t, producto.ID)
}

func TestRegistrarAjusteValidaciones(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "FIDEOS-500G", "3.00")
	ctx := context.Background()

	_, err := e.coord.RegistrarAjuste(ctx, pos.AjusteInput{
		ProductID: producto.ID, Direccion: "DIAGONAL", Cantidad: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.coord.RegistrarAjuste(ctx, pos.AjusteInput{
		ProductID: producto.ID, Direccion: kardex.AjusteEntrada, Cantidad: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.coord.RegistrarAjuste(ctx, pos.AjusteInput{
		ProductID: "no-existe", Direccion: kardex.AjusteEntrada, Cantidad: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrarPagoCredito(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", nil)
	e.abrirCaja(t, "100")

	venta, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		Cliente:   "Don Pedro",
		TipoVenta: entity.VentaCredito,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("4")}}, // total 34
	})
	require.NoError(t, err)
	credito, err := e.store.Creditos().GetByVentaID(venta.ID)
	require.NoError(t, err)

	// Abono parcial.
	credito, err = e.coord.RegistrarPagoCredito(context.Background(), credito.ID, d("14"), "cajero1")
	require.NoError(t, err)
	assert.True(t, credito.Saldo.Equal(d("20")))
	assert.Equal(t, entity.CreditoPendiente, credito.Estado)

	// Un abono mayor al saldo no pasa.
	_, err = e.coord.RegistrarPagoCredito(context.Background(), credito.ID, d("25"), "cajero1")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	// Abono final: el crédito queda pagado.
	credito, err = e.coord.RegistrarPagoCredito(context.Background(), credito.ID, d("20"), "cajero1")
	require.NoError(t, err)
	assert.True(t, credito.Saldo.IsZero())
	assert.Equal(t, entity.CreditoPagado, credito.Estado)

	// Los dos abonos entraron como INGRESO de caja.
	actual, err := e.cajaUC.CajaAbierta(context.Background())
	require.NoError(t, err)
	assert.True(t, actual.TotalIngresos.Equal(d("34")))

	// Sobre un crédito pagado no se admite otro abono.
	_, err = e.coord.RegistrarPagoCredito(context.Background(), credito.ID, d("1"), "cajero1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegistrarPagoCreditoSinCajaAbierta(t *testing.T) {
	e := nuevoEntorno(t)
	producto := e.crearProducto(t, "ARROZ-1K", "8.50")
	e.comprar(t, producto.ID, "10", "5.00", nil)
	e.abrirCaja(t, "100")

	venta, err := e.coord.RegistrarVenta(context.Background(), pos.VentaInput{
		TipoVenta: entity.VentaCredito,
		Usuario:   "cajero1",
		Lineas:    []pos.LineaVenta{{ProductID: producto.ID, Cantidad: d("2")}},
	})
	require.NoError(t, err)
	credito, err := e.store.Creditos().GetByVentaID(venta.ID)
	require.NoError(t, err)

	abierta, err := e.cajaUC.CajaAbierta(context.Background())
	require.NoError(t, err)
	_, err = e.cajaUC.Cerrar(context.Background(), abierta.ID, "cajero1", "")
	require.NoError(t, err)

	_, err = e.coord.RegistrarPagoCredito(context.Background(), credito.ID, d("5"), "cajero1")
	assert.ErrorIs(t, err, domain.ErrCajaCerrada)

	// El saldo no se movió.
	credito, err = e.store.Creditos().GetByID(credito.ID)
	require.NoError(t, err)
	assert.True(t, credito.Saldo.Equal(venta.Total))
}

func TestRegistrarPagoCreditoMontoInvalido(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.coord.RegistrarPagoCredito(context.Background(), "cualquiera", decimal.Zero, "cajero1")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
