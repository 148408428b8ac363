package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/kardex"
	"github.com/tu-usuario/tienda-pos/internal/application/lote"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// LineaCompra línea de entrada para RegistrarCompra.
type LineaCompra struct {
	ProductID        string
	Cantidad         decimal.Decimal
	CostoUnitario    decimal.Decimal
	FechaVencimiento *time.Time // opcional; el lote se crea igual sin ella
}

// CompraInput entrada para RegistrarCompra.
type CompraInput struct {
	Proveedor   string
	PagoContado bool
	Usuario     string
	Lineas      []LineaCompra
}

// RegistrarCompra registra una entrada de mercancía: por cada línea crea un
// lote nuevo (todo inbound crea lote, con o sin vencimiento, para que la
// suma de lotes activos coincida siempre con el stock del Kardex), registra
// la ENTRADA al costo de compra (recalcula el promedio ponderado) y refresca
// las cachés del producto. Si es de contado, el EGRESO de caja entra en la
// misma transacción y exige caja abierta.
func (c *Coordinator) RegistrarCompra(ctx context.Context, in CompraInput) (*entity.Entrada, error) {
	if len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lineas {
		if !l.Cantidad.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		if l.CostoUnitario.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	ahora := c.now()
	entradaID := uuid.New().String()
	var entrada *entity.Entrada

	err := c.txRunner.RunPOS(ctx, func(r Repos) error {
		var cajaAbierta *entity.CajaDiaria
		if in.PagoContado {
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
		detalles := make([]entity.DetalleEntrada, 0, len(in.Lineas))
		for _, linea := range in.Lineas {
			producto, err := r.Productos.GetForUpdate(linea.ProductID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrNotFound
			}

			nuevoLote := &entity.Lote{
				ID:                 uuid.New().String(),
				ProductID:          producto.ID,
				NumeroLote:         "LOTE-" + ahora.Format("20060102"),
				FechaEntrada:       ahora,
				FechaVencimiento:   linea.FechaVencimiento,
				CantidadRecibida:   linea.Cantidad,
				CantidadDisponible: linea.Cantidad,
				Estado:             entity.LoteActivo,
				CreatedAt:          ahora,
				UpdatedAt:          ahora,
			}
			if err := r.Lotes.Create(nuevoLote); err != nil {
				return err
			}
			mov, err := c.kardexSvc.RegistrarEnTx(r.Kardex, kardex.MovimientoInput{
				Producto:       producto,
				Tipo:           entity.KardexEntrada,
				Cantidad:       linea.Cantidad,
				PrecioUnitario: linea.CostoUnitario,
				Referencia:     "COMPRA-" + entradaID,
				Usuario:        in.Usuario,
				Fecha:          ahora,
			})
			if err != nil {
				return err
			}
			if err := recalcularProducto(r, producto.ID, mov.CostoPromedioActual); err != nil {
				return err
			}

			subtotal := linea.Cantidad.Mul(linea.CostoUnitario)
			total = total.Add(subtotal)
			detalles = append(detalles, entity.DetalleEntrada{
				ID:               uuid.New().String(),
				EntradaID:        entradaID,
				ProductID:        producto.ID,
				Cantidad:         linea.Cantidad,
				CostoUnitario:    linea.CostoUnitario,
				Subtotal:         subtotal,
				FechaVencimiento: linea.FechaVencimiento,
				LoteID:           nuevoLote.ID,
			})
		}

		entrada = &entity.Entrada{
			ID:        entradaID,
			Fecha:     ahora,
			Proveedor: in.Proveedor,
			Total:     total,
			Usuario:   in.Usuario,
			Detalles:  detalles,
			CreatedAt: ahora,
		}
		if err := r.Entradas.Create(entrada); err != nil {
			return err
		}
		if in.PagoContado {
			_, err := c.cajaUC.RegistrarMovimientoEnTx(
				r.Cajas, r.MovimientosCaja,
				cajaAbierta.ID, entity.MovimientoEgreso, total,
				"Compra de mercancía", "COMPRA-"+entradaID, in.Usuario,
			)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("entrada_id", entrada.ID).Str("total", entrada.Total.String()).Msg("compra registrada")
	return entrada, nil
}

// AjusteInput entrada para RegistrarAjuste (ajuste manual de inventario).
type AjusteInput struct {
	ProductID      string
	Direccion      string // kardex.AjusteEntrada o kardex.AjusteSalida
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal // solo relevante en ajustes de entrada
	Observaciones  string
	Usuario        string
}

// RegistrarAjuste registra un ajuste manual. Un ajuste de entrada crea un
// lote sin vencimiento; uno de salida consume lotes como una venta. El
// movimiento se guarda siempre con tipo AJUSTE y referencia AJUSTE MANUAL;
// la dirección queda implícita en los saldos antes/después.
func (c *Coordinator) RegistrarAjuste(ctx context.Context, in AjusteInput) (*entity.Kardex, error) {
	if in.Direccion != kardex.AjusteEntrada && in.Direccion != kardex.AjusteSalida {
		return nil, domain.ErrInvalidInput
	}
	if !in.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}

	ahora := c.now()
	var mov *entity.Kardex
	err := c.txRunner.RunPOS(ctx, func(r Repos) error {
		producto, err := r.Productos.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrNotFound
		}

		if in.Direccion == kardex.AjusteEntrada {
			nuevoLote := &entity.Lote{
				ID:                 uuid.New().String(),
				ProductID:          producto.ID,
				NumeroLote:         "AJUSTE-" + ahora.Format("20060102"),
				FechaEntrada:       ahora,
				CantidadRecibida:   in.Cantidad,
				CantidadDisponible: in.Cantidad,
				Estado:             entity.LoteActivo,
				CreatedAt:          ahora,
				UpdatedAt:          ahora,
			}
			if err := r.Lotes.Create(nuevoLote); err != nil {
				return err
			}
		} else {
			if _, err := lote.Asignar(r.Lotes, producto.ID, in.Cantidad); err != nil {
				return err
			}
		}

		mov, err = c.kardexSvc.RegistrarEnTx(r.Kardex, kardex.MovimientoInput{
			Producto:       producto,
			Tipo:           entity.KardexAjuste,
			Direccion:      in.Direccion,
			Cantidad:       in.Cantidad,
			PrecioUnitario: in.PrecioUnitario,
			Referencia:     "AJUSTE MANUAL",
			Usuario:        in.Usuario,
			Observaciones:  in.Observaciones,
			Fecha:          ahora,
		})
		if err != nil {
			return err
		}
		return recalcularProducto(r, producto.ID, mov.CostoPromedioActual)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegistrarPagoCredito registra el abono de un crédito: descuenta el saldo
// (PAGADO al llegar a cero) y registra el INGRESO en la caja abierta con
// referencia PAGO-CREDITO-<id>, todo en una transacción.
func (c *Coordinator) RegistrarPagoCredito(ctx context.Context, creditoID string, monto decimal.Decimal, usuario string) (*entity.Credito, error) {
	if !monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	ahora := c.now()
	var credito *entity.Credito
	err := c.txRunner.RunPOS(ctx, func(r Repos) error {
		cajaAbierta, err := r.Cajas.GetAbierta()
		if err != nil {
			return err
		}
		if cajaAbierta == nil {
			return domain.ErrCajaCerrada
		}
		credito, err = r.Creditos.GetForUpdate(creditoID)
		if err != nil {
			return err
		}
		if credito == nil {
			return domain.ErrNotFound
		}
		if credito.Estado != entity.CreditoPendiente {
			return domain.ErrConflict
		}
		if monto.GreaterThan(credito.Saldo) {
			return domain.ErrInvalidAmount
		}

		credito.Saldo = credito.Saldo.Sub(monto)
		if credito.Saldo.IsZero() {
			credito.Estado = entity.CreditoPagado
		}
		credito.UpdatedAt = ahora
		if err := r.Creditos.Update(credito); err != nil {
			return err
		}
		_, err = c.cajaUC.RegistrarMovimientoEnTx(
			r.Cajas, r.MovimientosCaja,
			cajaAbierta.ID, entity.MovimientoIngreso, monto,
			"Abono a crédito", "PAGO-CREDITO-"+credito.ID, usuario,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("credito_id", credito.ID).Str("monto", monto.String()).Msg("pago de crédito registrado")
	return credito, nil
}
