package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/BenoitRanque/guembe-pos-extension/internal/application/sale"
	"github.com/BenoitRanque/guembe-pos-extension/internal/domain/fiscal"
	"github.com/BenoitRanque/guembe-pos-extension/internal/infrastructure/postgres"
	httpRouter "github.com/BenoitRanque/guembe-pos-extension/internal/interfaces/http"
	"github.com/BenoitRanque/guembe-pos-extension/pkg/config"
	"github.com/BenoitRanque/guembe-pos-extension/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("company", cfg.POS.Company).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	salesPointRepo := postgres.NewSalesPointRepository(pool)
	authorizationRepo := postgres.NewAuthorizationRepository(pool)
	partnerRepo := postgres.NewBusinessPartnerRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	splitter := sale.NewSplitter(decimal.NewFromInt(int64(cfg.POS.TransactionalTaxPercent)))
	codeSvc := fiscal.NewControlCodeService()
	quickSaleUC := sale.NewQuickSaleUseCase(txRunner, partnerRepo, itemRepo, splitter, codeSvc)

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
		QuickSale:      quickSaleUC,
		SalesPoints:    salesPointRepo,
		Authorizations: authorizationRepo,
		Log:            log,
		JWTSecret:      cfg.JWT.Secret,
		Company:        cfg.POS.Company,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
