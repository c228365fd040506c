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

	"github.com/marlonji2360/pos-venta/internal/application/auth"
	"github.com/marlonji2360/pos-venta/internal/application/inventory"
	"github.com/marlonji2360/pos-venta/internal/application/payables"
	"github.com/marlonji2360/pos-venta/internal/application/sales"
	"github.com/marlonji2360/pos-venta/internal/application/usecase"
	infrapdf "github.com/marlonji2360/pos-venta/internal/infrastructure/pdf"
	"github.com/marlonji2360/pos-venta/internal/infrastructure/postgres"
	httpRouter "github.com/marlonji2360/pos-venta/internal/interfaces/http"
	"github.com/marlonji2360/pos-venta/pkg/config"
	"github.com/marlonji2360/pos-venta/pkg/logger"
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
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	payableRepo := postgres.NewPayableRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockAdjustUC := inventory.NewStockAdjustmentUseCase(txRunner)
	saleUC := sales.NewCreateSaleUseCase(txRunner, stockAdjustUC, saleRepo, customerRepo, userRepo)
	ticketGenerator := infrapdf.NewMarotoTicketGenerator(cfg.App.Name)
	ticketUC := sales.NewTicketUseCase(saleRepo, productRepo, ticketGenerator)
	payableUC := payables.NewPayableUseCase(txRunner, payableRepo, paymentRepo, supplierRepo, notifRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		StockAdjust:  stockAdjustUC,
		SaleUC:       saleUC,
		TicketUC:     ticketUC,
		PayableUC:    payableUC,
		MovementRepo: movementRepo,
		NotifRepo:    notifRepo,
		SupplierRepo: supplierRepo,
		CustomerRepo: customerRepo,
		ShipmentRepo: shipmentRepo,
		JWTSecret:    cfg.JWT.Secret,
	})

	// Reconciliación periódica de cuentas vencidas / por vencer.
	reconcileCtx, stopReconcile := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(cfg.Jobs.OverdueInterval)
		defer ticker.Stop()
		for {
			vencidas, porVencer, err := payableUC.ReconcileOverdue(reconcileCtx)
			if err != nil {
				log.Error().Err(err).Msg("reconciliación de cuentas por pagar")
			} else if vencidas > 0 || porVencer > 0 {
				log.Info().
					Int("vencidas", vencidas).
					Int("por_vencer", porVencer).
					Msg("reconciliación de cuentas por pagar")
			}
			select {
			case <-ticker.C:
			case <-reconcileCtx.Done():
				return
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopReconcile()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
