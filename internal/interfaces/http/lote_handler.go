package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/lote"
)

// LoteHandler consultas de lotes y alertas de vencimiento (protegido).
type LoteHandler struct {
	svc *lote.Service
}

// NewLoteHandler construye el handler.
func NewLoteHandler(svc *lote.Service) *LoteHandler {
	return &LoteHandler{svc: svc}
}

// PorProducto godoc
// @Summary      Lotes de un producto
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  entity.Lote
// @Router       /api/lotes/{productId} [get]
func (h *LoteHandler) PorProducto(c *fiber.Ctx) error {
	list, err := h.svc.PorProducto(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "lotes": list})
}

// StockTotal godoc
// @Summary      Stock autoritativo de un producto (suma de lotes activos)
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]string
// @Router       /api/lotes/{productId}/stock [get]
func (h *LoteHandler) StockTotal(c *fiber.Ctx) error {
	total, err := h.svc.StockTotal(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"product_id": c.Params("productId"), "stock": total})
}

// Vencidos godoc
// @Summary      Lotes activos ya vencidos
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Lote
// @Router       /api/lotes/vencidos [get]
func (h *LoteHandler) Vencidos(c *fiber.Ctx) error {
	list, err := h.svc.Vencidos()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "lotes": list})
}

// ProximosAVencer godoc
// @Summary      Lotes que vencen dentro de la ventana de alerta
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Lote
// @Router       /api/lotes/proximos-a-vencer [get]
func (h *LoteHandler) ProximosAVencer(c *fiber.Ctx) error {
	list, err := h.svc.ProximosAVencer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "lotes": list})
}

// Alertas godoc
// @Summary      Resumen de alertas de vencimiento (cacheado)
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertasLotes
// @Router       /api/lotes/alertas [get]
func (h *LoteHandler) Alertas(c *fiber.Ctx) error {
	out, err := h.svc.ResumenAlertas(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
