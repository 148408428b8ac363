package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/auth"
	"github.com/tu-usuario/tienda-pos/internal/application/caja"
	"github.com/tu-usuario/tienda-pos/internal/application/kardex"
	"github.com/tu-usuario/tienda-pos/internal/application/lote"
	"github.com/tu-usuario/tienda-pos/internal/application/pos"
	"github.com/tu-usuario/tienda-pos/internal/application/product"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *product.UseCase
	KardexSvc *kardex.Service
	LoteSvc   *lote.Service
	CajaUC    *caja.UseCase
	POS       *pos.Coordinator
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Kardex (protegido, solo consulta: los movimientos nacen de ventas/compras/ajustes)
	kardexGroup := protected.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexSvc)
	kardexGroup.Get("/:productId", kardexHandler.Movimientos)
	kardexGroup.Get("/:productId/resumen", kardexHandler.Resumen)
	kardexGroup.Get("/:productId/export", kardexHandler.ExportarCSV)

	// Lotes (protegido)
	lotes := protected.Group("/lotes")
	loteHandler := NewLoteHandler(deps.LoteSvc)
	lotes.Get("/vencidos", loteHandler.Vencidos)
	lotes.Get("/proximos-a-vencer", loteHandler.ProximosAVencer)
	lotes.Get("/alertas", loteHandler.Alertas)
	lotes.Get("/:productId", loteHandler.PorProducto)
	lotes.Get("/:productId/stock", loteHandler.StockTotal)

	// Caja diaria (protegido)
	cajaGroup := protected.Group("/caja")
	cajaHandler := NewCajaHandler(deps.CajaUC)
	cajaGroup.Post("/abrir", cajaHandler.Abrir)
	cajaGroup.Get("/actual", cajaHandler.Actual)
	cajaGroup.Get("/historial", cajaHandler.Historial)
	cajaGroup.Post("/:id/cerrar", cajaHandler.Cerrar)
	cajaGroup.Post("/:id/movimientos", cajaHandler.RegistrarMovimiento)
	cajaGroup.Get("/:id/movimientos", cajaHandler.Movimientos)
	cajaGroup.Get("/:id/reporte", cajaHandler.Reporte)

	// POS: ventas, compras, ajustes y créditos (protegido)
	posHandler := NewPOSHandler(deps.POS)
	ventas := protected.Group("/ventas")
	ventas.Post("/", posHandler.CrearVenta)
	// solo admin puede anular ventas
	ventas.Post("/:id/anular", RequireRoles(entity.RoleAdmin), posHandler.AnularVenta)

	compras := protected.Group("/compras")
	compras.Post("/", posHandler.CrearCompra)

	// ajustes manuales: admin o bodeguero
	inventario := protected.Group("/inventario")
	inventario.Post("/ajustes", RequireRoles(entity.RoleAdmin, entity.RoleBodeguero), posHandler.Ajuste)

	creditos := protected.Group("/creditos")
	creditos.Post("/:id/pagos", posHandler.PagoCredito)
}
