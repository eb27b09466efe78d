package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/salcar420/InnovaLogix/internal/application/catalog"
	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/internal/application/purchasing"
	"github.com/salcar420/InnovaLogix/internal/application/sales"
	"github.com/salcar420/InnovaLogix/internal/infrastructure/cache"
	"github.com/salcar420/InnovaLogix/internal/infrastructure/postgres"
	"github.com/salcar420/InnovaLogix/internal/infrastructure/ws"
	httpiface "github.com/salcar420/InnovaLogix/internal/interfaces/http"
	"github.com/salcar420/InnovaLogix/pkg/config"
	"github.com/salcar420/InnovaLogix/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "debug"})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando " + cfg.App.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios fuera de transacción (lecturas) y runner transaccional
	// (mutaciones de stock).
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockCache := cache.NewStockCache(productRepo)
	if err := stockCache.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del cache de stock")
	}
	log.Info().Int("products", stockCache.Len()).Msg("cache de stock cargado")

	hub := ws.NewHub(log)
	engine := inventory.NewEngine(txRunner, stockCache, hub)

	productUC := catalog.NewProductUseCase(txRunner, engine, productRepo, stockCache)
	purchaseUC := purchasing.NewPurchaseUseCase(txRunner, purchaseRepo)
	saleUC := sales.NewUseCase(saleRepo)
	alertUC := inventory.NewAlertUseCase(productRepo, saleRepo)
	kardexUC := inventory.NewKardexUseCase(movementRepo, productRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	httpiface.SetupRoutes(app, httpiface.RouterDeps{
		Products:  httpiface.NewProductHandler(productUC, alertUC),
		Sales:     httpiface.NewSaleHandler(engine, saleUC),
		Purchases: httpiface.NewPurchaseHandler(purchaseUC, engine),
		Inventory: httpiface.NewInventoryHandler(alertUC, kardexUC, engine, stockCache),
		Hub:       hub,
	})

	// Refresco periódico del cache: red de seguridad contra derivas.
	go func() {
		ticker := time.NewTicker(cfg.Cache.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := stockCache.Refresh(ctx); err != nil {
					log.Error().Err(err).Msg("refresco periódico del cache")
				}
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Info().Msg("apagando servidor")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}
