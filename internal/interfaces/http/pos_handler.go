package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/pos"
	"github.com/tu-usuario/tienda-pos/internal/domain"
)

// POSHandler operaciones transaccionales del punto de venta: ventas,
// anulaciones, compras, ajustes y pagos de crédito (protegido).
type POSHandler struct {
	coord *pos.Coordinator
}

// NewPOSHandler construye el handler.
func NewPOSHandler(coord *pos.Coordinator) *POSHandler {
	return &POSHandler{coord: coord}
}

// CrearVenta godoc
// @Summary      Registrar venta
// @Description  Consume lotes FEFO, apunta la SALIDA en el Kardex y, si es de
// @Description  contado, registra el INGRESO de caja; todo en una transacción.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "cliente, tipo_venta, lineas"
// @Success      201   {object}  entity.Venta
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *POSHandler) CrearVenta(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := pos.VentaInput{
		Cliente:   in.Cliente,
		TipoVenta: in.TipoVenta,
		Usuario:   GetUserID(c),
	}
	for _, l := range in.Lineas {
		input.Lineas = append(input.Lineas, pos.LineaVenta{
			ProductID:      l.ProductID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
		})
	}
	out, err := h.coord.RegistrarVenta(c.Context(), input)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AnularVenta godoc
// @Summary      Anular venta
// @Description  Restaura los lotes consumidos, apunta la ENTRADA compensatoria
// @Description  en el Kardex y revierte el efecto en caja o crédito.
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  entity.Venta
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/anular [post]
func (h *POSHandler) AnularVenta(c *fiber.Ctx) error {
	out, err := h.coord.AnularVenta(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// CrearCompra godoc
// @Summary      Registrar compra (entrada de mercancía)
// @Description  Crea un lote por línea, apunta la ENTRADA en el Kardex al
// @Description  costo de compra y, si es de contado, registra el EGRESO de caja.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompraRequest  true  "proveedor, pago_contado, lineas"
// @Success      201   {object}  entity.Entrada
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *POSHandler) CrearCompra(c *fiber.Ctx) error {
	var in dto.CompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := pos.CompraInput{
		Proveedor:   in.Proveedor,
		PagoContado: in.PagoContado,
		Usuario:     GetUserID(c),
	}
	for _, l := range in.Lineas {
		linea := pos.LineaCompra{
			ProductID:     l.ProductID,
			Cantidad:      l.Cantidad,
			CostoUnitario: l.CostoUnitario,
		}
		if l.FechaVencimiento != "" {
			t, err := time.Parse("2006-01-02", l.FechaVencimiento)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_vencimiento inválida, formato YYYY-MM-DD"})
			}
			linea.FechaVencimiento = &t
		}
		input.Lineas = append(input.Lineas, linea)
	}
	out, err := h.coord.RegistrarCompra(c.Context(), input)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Ajuste godoc
// @Summary      Registrar ajuste manual de inventario
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteManualRequest  true  "product_id, direccion, cantidad"
// @Success      201   {object}  entity.Kardex
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *POSHandler) Ajuste(c *fiber.Ctx) error {
	var in dto.AjusteManualRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.coord.RegistrarAjuste(c.Context(), pos.AjusteInput{
		ProductID:      in.ProductID,
		Direccion:      in.Direccion,
		Cantidad:       in.Cantidad,
		PrecioUnitario: in.PrecioUnitario,
		Observaciones:  in.Observaciones,
		Usuario:        GetUserID(c),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PagoCredito godoc
// @Summary      Registrar abono a un crédito
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del crédito"
// @Param        body  body  dto.PagoCreditoRequest  true  "monto"
// @Success      200   {object}  entity.Credito
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/creditos/{id}/pagos [post]
func (h *POSHandler) PagoCredito(c *fiber.Ctx) error {
	var in dto.PagoCreditoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.coord.RegistrarPagoCredito(c.Context(), c.Params("id"), in.Monto, GetUserID(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// mapError traduce los errores de dominio del coordinador a códigos HTTP.
func (h *POSHandler) mapError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser mayor que cero"})
	case domain.ErrInvalidAmount:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "monto inválido"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en lotes disponibles"})
	case domain.ErrCajaCerrada:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAJA_CERRADA", Message: "la operación de contado exige una caja abierta"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la operación entra en conflicto con el estado actual"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
