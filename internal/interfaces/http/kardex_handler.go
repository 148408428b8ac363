package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/kardex"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// KardexHandler consultas del ledger de costos (protegido). Los movimientos
// se crean solo a través de ventas, compras y ajustes.
type KardexHandler struct {
	svc *kardex.Service
}

// NewKardexHandler construye el handler.
func NewKardexHandler(svc *kardex.Service) *KardexHandler {
	return &KardexHandler{svc: svc}
}

// parseFecha interpreta una fecha YYYY-MM-DD de query string (nil si vacía).
func parseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *KardexHandler) filterFromQuery(c *fiber.Ctx) (repository.KardexFilter, error) {
	desde, err := parseFecha(c.Query("desde"))
	if err != nil {
		return repository.KardexFilter{}, err
	}
	hasta, err := parseFecha(c.Query("hasta"))
	if err != nil {
		return repository.KardexFilter{}, err
	}
	return repository.KardexFilter{
		ProductID:      c.Params("productId"),
		Desde:          desde,
		Hasta:          hasta,
		TipoMovimiento: c.Query("tipo"),
		Limit:          c.QueryInt("limit", 0),
		Offset:         c.QueryInt("offset", 0),
	}, nil
}

// Movimientos godoc
// @Summary      Movimientos de Kardex de un producto
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        desde      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta      query  string  false  "Fecha final YYYY-MM-DD"
// @Param        tipo       query  string  false  "ENTRADA, SALIDA o AJUSTE"
// @Success      200  {array}   entity.Kardex
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kardex/{productId} [get]
func (h *KardexHandler) Movimientos(c *fiber.Ctx) error {
	filter, err := h.filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	list, err := h.svc.Movimientos(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "movimientos": list})
}

// Resumen godoc
// @Summary      Resumen de Kardex de un producto en un rango
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        desde      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta      query  string  false  "Fecha final YYYY-MM-DD"
// @Param        tipo       query  string  false  "Filtrar totales por tipo"
// @Success      200  {object}  dto.ResumenKardex
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex/{productId}/resumen [get]
func (h *KardexHandler) Resumen(c *fiber.Ctx) error {
	desde, err := parseFecha(c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	hasta, err := parseFecha(c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	out, err := h.svc.Resumen(c.Params("productId"), desde, hasta, c.Query("tipo"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExportarCSV godoc
// @Summary      Exportar movimientos de Kardex a CSV
// @Tags         kardex
// @Security     Bearer
// @Produce      text/csv
// @Param        productId  path   string  true   "ID del producto"
// @Param        desde      query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        hasta      query  string  false  "Fecha final YYYY-MM-DD"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kardex/{productId}/export [get]
func (h *KardexHandler) ExportarCSV(c *fiber.Ctx) error {
	filter, err := h.filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	data, err := h.svc.ExportarCSV(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="kardex.csv"`)
	return c.Send(data)
}
