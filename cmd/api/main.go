package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/application/usecase"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/cache"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/memory"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/migration"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-inventario/internal/interfaces/http"
	"github.com/tu-usuario/pos-inventario/pkg/config"
	"github.com/tu-usuario/pos-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner     engine.TxRunner
		productRepo  repository.ProductRepository
		movementRepo repository.StockMovementRepository
		saleRepo     repository.SaleRepository
		categoryRepo repository.CategoryRepository
		supplierRepo repository.SupplierRepository
		reportRepo   repository.ReportRepository
	)

	switch cfg.App.Store {
	case "memory":
		// Solo para desarrollo: el estado se pierde al apagar.
		store := memory.NewStore()
		txRunner = store
		productRepo = store.Products()
		movementRepo = store.Movements()
		saleRepo = store.Sales()
		categoryRepo = store.Categories()
		supplierRepo = store.Suppliers()
		reportRepo = store.Reports()
	default:
		if cfg.Migrations.Auto {
			if err := migration.Up(cfg.Migrations.Path, cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}

		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		txRunner = postgres.NewTxRunner(pool)
		productRepo = postgres.NewProductRepository(pool)
		movementRepo = postgres.NewStockMovementRepository(pool)
		saleRepo = postgres.NewSaleRepository(pool)
		categoryRepo = postgres.NewCategoryRepository(pool)
		supplierRepo = postgres.NewSupplierRepository(pool)
		reportRepo = postgres.NewReportRepository(pool)
	}

	var statsCache reports.StatsCache = reports.NopStatsCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisStatsCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// Sin redis la app funciona igual, solo sin caché de stats.
			log.Warn().Err(err).Msg("redis no disponible, stats sin caché")
		} else {
			defer redisCache.Close()
			statsCache = redisCache
		}
	}

	eng := engine.New(txRunner, productRepo, movementRepo, saleRepo,
		engine.WithObserver(logger.NewOperationObserver(log)))

	productUC := usecase.NewProductUseCase(productRepo, movementRepo, saleRepo)
	saleUC := usecase.NewSaleUseCase(saleRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	reportUC := reports.NewReportUseCase(saleRepo, reportRepo, statsCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:     eng,
		ProductUC:  productUC,
		SaleUC:     saleUC,
		CategoryUC: categoryUC,
		SupplierUC: supplierUC,
		ReportUC:   reportUC,
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
