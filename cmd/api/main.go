package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lucasgiorgi95/stock-backend/internal/application/auth"
	"github.com/lucasgiorgi95/stock-backend/internal/application/catalog"
	"github.com/lucasgiorgi95/stock-backend/internal/application/dashboard"
	"github.com/lucasgiorgi95/stock-backend/internal/application/ledger"
	"github.com/lucasgiorgi95/stock-backend/internal/infrastructure/postgres"
	httpRouter "github.com/lucasgiorgi95/stock-backend/internal/interfaces/http"
	"github.com/lucasgiorgi95/stock-backend/pkg/config"
	"github.com/lucasgiorgi95/stock-backend/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	marcaRepo := postgres.NewMarcaRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, productRepo, movementRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(productRepo, movementRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo, productRepo)
	marcaUC := catalog.NewMarcaUseCase(marcaRepo, productRepo)
	ledgerUC := ledger.NewUseCase(txRunner, productRepo, movementRepo)
	dashboardUC := dashboard.NewUseCase(dashboardRepo, movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		MarcaUC:     marcaUC,
		LedgerUC:    ledgerUC,
		DashboardUC: dashboardUC,
		DevMode:     cfg.App.IsDevelopment(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
