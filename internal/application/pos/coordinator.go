package pos

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/caja"
	"github.com/tu-usuario/tienda-pos/internal/application/kardex"
	"github.com/tu-usuario/tienda-pos/internal/application/lote"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// Coordinator orquesta ventas, anulaciones, compras, ajustes y pagos de
// crédito. Cada operación corre en una única transacción: consumo o alta de
// lotes, apunte en el Kardex, recálculo de las cachés del producto y apunte
// de caja se confirman o se revierten juntos.
type Coordinator struct {
	txRunner  TxRunner
	kardexSvc *kardex.Service
	cajaUC    *caja.UseCase
	now       func() time.Time
}

// NewCoordinator construye el coordinador POS.
func NewCoordinator(txRunner TxRunner, kardexSvc *kardex.Service, cajaUC *caja.UseCase) *Coordinator {
	return &Coordinator{
		txRunner:  txRunner,
		kardexSvc: kardexSvc,
		cajaUC:    cajaUC,
		now:       time.Now,
	}
}

// LineaVenta línea de entrada para RegistrarVenta. Si PrecioUnitario es cero
// se usa el precio de venta del producto.
type LineaVenta struct {
	ProductID      string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// VentaInput entrada para RegistrarVenta.
type VentaInput struct {
	Cliente   string
	TipoVenta string // CONTADO, CREDITO
	Usuario   string
	Lineas    []LineaVenta
}

// RegistrarVenta registra una venta: por cada línea consume lotes (primero
// el más próximo a vencer), registra la SALIDA en el Kardex y recalcula el
// stock del producto desde la suma de lotes. Una venta CONTADO exige caja
// abierta (se verifica antes de mutar nada) y registra el INGRESO en la
// misma transacción; una venta CREDITO crea el crédito por el total.
func (c *Coordinator) RegistrarVenta(ctx context.Context, in VentaInput) (*entity.Venta, error) {
	if len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TipoVenta != entity.VentaContado && in.TipoVenta != entity.VentaCredito {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lineas {
		if !l.Cantidad.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
	}
	lineas := ordenarLineasVenta(in.Lineas)

	ahora := c.now()
	ventaID := uuid.New().String()
	var venta *entity.Venta

	err := c.txRunner.RunPOS(ctx, func(r Repos) error {
		var cajaAbierta *entity.CajaDiaria
		if in.TipoVenta == entity.VentaContado {
			var err error
			cajaAbierta, err = r.Cajas.GetAbierta()
			if err != nil {
				return err
			}
			if cajaAbierta == nil {
				return domain.ErrCajaCerrada
			}
		}

		total := decimal.Zero
		detalles := make([]entity.DetalleVenta, 0, len(lineas))
		for _, linea := range lineas {
			producto, err := r.Productos.GetForUpdate(linea.ProductID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrNotFound
			}
			precio := linea.PrecioUnitario
			if precio.IsZero() {
				precio = producto.Price
			}

			if _, err := lote.Asignar(r.Lotes, producto.ID, linea.Cantidad); err != nil {
				return err
			}
			mov, err := c.kardexSvc.RegistrarEnTx(r.Kardex, kardex.MovimientoInput{
				Producto:       producto,
				Tipo:           entity.KardexSalida,
				Cantidad:       linea.Cantidad,
				PrecioUnitario: precio,
				Referencia:     "VENTA-" + ventaID,
				Usuario:        in.Usuario,
				Fecha:          ahora,
			})
			if err != nil {
				return err
			}
			if err := recalcularProducto(r, producto.ID, mov.CostoPromedioActual); err != nil {
				return err
			}

			subtotal := linea.Cantidad.Mul(precio)
			total = total.Add(subtotal)
			detalles = append(detalles, entity.DetalleVenta{
				ID:             uuid.New().String(),
				VentaID:        ventaID,
				ProductID:      producto.ID,
				Cantidad:       linea.Cantidad,
				PrecioUnitario: precio,
				Subtotal:       subtotal,
			})
		}

		venta = &entity.Venta{
			ID:        ventaID,
			Fecha:     ahora,
			Cliente:   in.Cliente,
			TipoVenta: in.TipoVenta,
			Estado:    entity.VentaRegistrada,
			Total:     total,
			Usuario:   in.Usuario,
			Detalles:  detalles,
			CreatedAt: ahora,
		}
		if err := r.Ventas.Create(venta); err != nil {
			return err
		}

		switch in.TipoVenta {
		case entity.VentaContado:
			_, err := c.cajaUC.RegistrarMovimientoEnTx(
				r.Cajas, r.MovimientosCaja,
				cajaAbierta.ID, entity.MovimientoIngreso, total,
				"Venta de contado", "VENTA-"+ventaID, in.Usuario,
			)
			return err
		case entity.VentaCredito:
			return r.Creditos.Create(&entity.Credito{
				ID:        uuid.New().String(),
				VentaID:   ventaID,
				Cliente:   in.Cliente,
				Total:     total,
				Saldo:     total,
				Estado:    entity.CreditoPendiente,
				CreatedAt: ahora,
				UpdatedAt: ahora,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("venta_id", venta.ID).Str("tipo", venta.TipoVenta).Str("total", venta.Total.String()).Msg("venta registrada")
	return venta, nil
}

// AnularVenta anula una venta: restaura los lotes consumidos y registra por
// cada línea una ENTRADA compensatoria en el Kardex al costo promedio
// vigente (el promedio no cambia), referencia ANULACION-VENTA-<id>. Los
// movimientos originales nunca se borran. Una venta CONTADO revierte el
// ingreso con un EGRESO en la caja abierta; una venta CREDITO exige que el
// crédito no tenga abonos.
func (c *Coordinator) AnularVenta(ctx context.Context, ventaID, usuario string) (*entity.Venta, error) {
	ahora := c.now()
	var anulada *entity.Venta
	err := c.txRunner.RunPOS(ctx, func(r Repos) error {
		venta, err := r.Ventas.GetByID(ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNotFound
		}
		if venta.Estado == entity.VentaAnulada {
			return domain.ErrConflict
		}

		var cajaAbierta *entity.CajaDiaria
		if venta.TipoVenta == entity.VentaContado {
			cajaAbierta, err = r.Cajas.GetAbierta()
			if err != nil {
				return err
			}
			if cajaAbierta == nil {
				return domain.ErrCajaCerrada
			}
		}

		detalles := ordenarDetalles(venta.Detalles)
		for _, d := range detalles {
			producto, err := r.Productos.GetForUpdate(d.ProductID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrNotFound
			}
			if _, err := lote.Restaurar(r.Lotes, producto.ID, d.Cantidad); err != nil {
				return err
			}
			mov, err := c.kardexSvc.RegistrarEnTx(r.Kardex, kardex.MovimientoInput{
				Producto:       producto,
				Tipo:           entity.KardexEntrada,
				Cantidad:       d.Cantidad,
				PrecioUnitario: producto.Cost,
				Referencia:     "ANULACION-VENTA-" + venta.ID,
				Usuario:        usuario,
				Observaciones:  "Reverso por anulación de venta",
				Fecha:          ahora,
			})
			if err != nil {
				return err
			}
			if err := recalcularProducto(r, producto.ID, mov.CostoPromedioActual); err != nil {
				return err
			}
		}

		if venta.TipoVenta == entity.VentaCredito {
			credito, err := r.Creditos.GetByVentaID(venta.ID)
			if err != nil {
				return err
			}
			if credito != nil {
				if credito.Saldo.LessThan(credito.Total) {
					// Ya tiene abonos: no se puede anular limpiamente.
					return domain.ErrConflict
				}
				credito.Saldo = decimal.Zero
				credito.Estado = entity.CreditoAnulado
				credito.UpdatedAt = ahora
				if err := r.Creditos.Update(credito); err != nil {
					return err
				}
			}
		}

		if err := r.Ventas.UpdateEstado(venta.ID, entity.VentaAnulada, usuario, ahora); err != nil {
			return err
		}
		if venta.TipoVenta == entity.VentaContado {
			if _, err := c.cajaUC.RegistrarMovimientoEnTx(
				r.Cajas, r.MovimientosCaja,
				cajaAbierta.ID, entity.MovimientoEgreso, venta.Total,
				"Reverso de venta anulada", "ANULACION-VENTA-"+venta.ID, usuario,
			); err != nil {
				return err
			}
		}
		venta.Estado = entity.VentaAnulada
		venta.AnuladaAt = &ahora
		venta.AnuladaPor = usuario
		anulada = venta
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("venta_id", anulada.ID).Str("usuario", usuario).Msg("venta anulada")
	return anulada, nil
}

// ordenarLineasVenta devuelve una copia ordenada por producto: orden estable
// de bloqueo de filas para ventas concurrentes multi-línea.
func ordenarLineasVenta(lineas []LineaVenta) []LineaVenta {
	out := make([]LineaVenta, len(lineas))
	copy(out, lineas)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func ordenarDetalles(detalles []entity.DetalleVenta) []entity.DetalleVenta {
	out := make([]entity.DetalleVenta, len(detalles))
	copy(out, detalles)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// recalcularProducto refresca las cachés del producto dentro de la misma
// transacción: stock desde la suma de lotes activos (valor autoritativo) y
// costo promedio desde el último movimiento del Kardex.
func recalcularProducto(r Repos, productID string, costo decimal.Decimal) error {
	stock, err := r.Lotes.SumDisponible(productID)
	if err != nil {
		return err
	}
	return r.Productos.UpdateStockAndCost(productID, stock, costo)
}
