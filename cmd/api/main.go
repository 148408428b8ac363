package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/tienda-pos/internal/application/auth"
	appcaja "github.com/tu-usuario/tienda-pos/internal/application/caja"
	appkardex "github.com/tu-usuario/tienda-pos/internal/application/kardex"
	applote "github.com/tu-usuario/tienda-pos/internal/application/lote"
	"github.com/tu-usuario/tienda-pos/internal/application/pos"
	"github.com/tu-usuario/tienda-pos/internal/application/product"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/tienda-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/tienda-pos/internal/interfaces/http"
	"github.com/tu-usuario/tienda-pos/pkg/config"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	kardexRepo := postgres.NewKardexRepository(pool)
	cajaRepo := postgres.NewCajaRepository(pool)
	movCajaRepo := postgres.NewMovimientoCajaRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de alertas de vencimiento: Redis si está configurado, noop si no.
	var alertCache applote.AlertCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisAlertCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis no disponible, usando caché noop")
			alertCache = cache.NewNoop()
		} else {
			defer redisCache.Close()
			alertCache = redisCache
		}
	} else {
		alertCache = cache.NewNoop()
	}

	kardexSvc := appkardex.NewService(kardexRepo, productRepo)
	loteSvc := applote.NewService(loteRepo, alertCache)
	cajaUC := appcaja.NewUseCase(txRunner, cajaRepo, movCajaRepo, infrapdf.NewMarotoCajaReport())
	posCoord := pos.NewCoordinator(txRunner, kardexSvc, cajaUC)
	productUC := product.NewUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.ExpMinutes,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ProductUC: productUC,
		KardexSvc: kardexSvc,
		LoteSvc:   loteSvc,
		CajaUC:    cajaUC,
		POS:       posCoord,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
