package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/caja"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/domain"
)

// CajaHandler maneja apertura, cierre y movimientos de la caja diaria (protegido).
type CajaHandler struct {
	uc *caja.UseCase
}

// NewCajaHandler construye el handler.
func NewCajaHandler(uc *caja.UseCase) *CajaHandler {
	return &CajaHandler{uc: uc}
}

// Abrir godoc
// @Summary      Abrir la caja del día
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AbrirCajaRequest  true  "monto_apertura"
// @Success      201   {object}  entity.CajaDiaria
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/abrir [post]
func (h *CajaHandler) Abrir(c *fiber.Ctx) error {
	var in dto.AbrirCajaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Abrir(c.Context(), in.MontoApertura, GetUserID(c), in.Observaciones)
	if err != nil {
		if err == domain.ErrInvalidAmount {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "el monto de apertura no puede ser negativo"})
		}
		if err == domain.ErrCajaAbierta {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAJA_ABIERTA", Message: "ya hay una caja abierta"})
		}
		if err == domain.ErrCajaDuplicada {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAJA_DUPLICADA", Message: "ya existe una caja para esta fecha"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cerrar godoc
// @Summary      Cerrar una caja
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la caja"
// @Param        body  body  dto.CerrarCajaRequest  true  "observaciones"
// @Success      200   {object}  entity.CajaDiaria
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/{id}/cerrar [post]
func (h *CajaHandler) Cerrar(c *fiber.Ctx) error {
	var in dto.CerrarCajaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Cerrar(c.Context(), c.Params("id"), GetUserID(c), in.Observaciones)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		if err == domain.ErrCajaYaCerrada {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAJA_YA_CERRADA", Message: "la caja ya fue cerrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Actual godoc
// @Summary      Caja abierta actual con totales recalculados
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.CajaDiaria
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caja/actual [get]
func (h *CajaHandler) Actual(c *fiber.Ctx) error {
	out, err := h.uc.CajaAbierta(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay caja abierta"})
	}
	return c.JSON(out)
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento manual de caja
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la caja"
// @Param        body  body  dto.MovimientoCajaRequest  true  "tipo, monto, descripcion"
// @Success      201   {object}  entity.MovimientoCaja
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caja/{id}/movimientos [post]
func (h *CajaHandler) RegistrarMovimiento(c *fiber.Ctx) error {
	var in dto.MovimientoCajaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegistrarMovimiento(c.Context(), c.Params("id"), in.Tipo, in.Monto, in.Descripcion, in.Referencia, GetUserID(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		if err == domain.ErrCajaCerrada {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CAJA_CERRADA", Message: "la caja está cerrada"})
		}
		if err == domain.ErrInvalidAmount {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "el monto debe ser mayor que cero"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo debe ser INGRESO o EGRESO"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movimientos godoc
// @Summary      Movimientos de una caja
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la caja"
// @Success      200  {array}   entity.MovimientoCaja
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caja/{id}/movimientos [get]
func (h *CajaHandler) Movimientos(c *fiber.Ctx) error {
	list, err := h.uc.Movimientos(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "movimientos": list})
}

// Historial godoc
// @Summary      Historial de cajas de los últimos días
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "Días hacia atrás (default 30)"
// @Success      200  {array}  entity.CajaDiaria
// @Router       /api/caja/historial [get]
func (h *CajaHandler) Historial(c *fiber.Ctx) error {
	dias := c.QueryInt("dias", 30)
	list, err := h.uc.Historial(dias)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "cajas": list})
}

// Reporte godoc
// @Summary      Reporte PDF de una caja
// @Tags         caja
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la caja"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caja/{id}/reporte [get]
func (h *CajaHandler) Reporte(c *fiber.Ctx) error {
	data, err := h.uc.GenerarReporte(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-caja.pdf"`)
	return c.Send(data)
}
