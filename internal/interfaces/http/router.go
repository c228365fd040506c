package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marlonji2360/pos-venta/internal/application/auth"
	"github.com/marlonji2360/pos-venta/internal/application/inventory"
	"github.com/marlonji2360/pos-venta/internal/application/payables"
	"github.com/marlonji2360/pos-venta/internal/application/sales"
	"github.com/marlonji2360/pos-venta/internal/application/usecase"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	StockAdjust  *inventory.StockAdjustmentUseCase
	SaleUC       *sales.CreateSaleUseCase
	TicketUC     *sales.TicketUseCase
	PayableUC    *payables.PayableUseCase
	MovementRepo repository.InventoryMovementRepository
	NotifRepo    repository.NotificationRepository
	SupplierRepo repository.SupplierRepository
	CustomerRepo repository.CustomerRepository
	ShipmentRepo repository.ShipmentRepository
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo para admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolAdmin),
		authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RolAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RolAdmin), productHandler.Update)

	// Inventario: ajustes y kárdex
	invGroup := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.StockAdjust, deps.MovementRepo)
	invGroup.Post("/movimientos", RequireRole(entity.RolAdmin), inventoryHandler.AdjustStock)
	invGroup.Get("/movimientos/:producto_id", inventoryHandler.ListMovements)

	// Ventas
	ventas := protected.Group("/ventas")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.TicketUC)
	shipmentHandler := NewShipmentHandler(deps.ShipmentRepo)
	ventas.Post("/", RequireRole(entity.RolAdmin, entity.RolVendedor), saleHandler.Create)
	ventas.Get("/", saleHandler.List)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Post("/:id/cancelar", RequireRole(entity.RolAdmin), saleHandler.Cancel)
	ventas.Get("/:id/ticket", saleHandler.Ticket)
	ventas.Get("/:id/envio", shipmentHandler.GetByVenta)

	// Envíos
	envios := protected.Group("/envios")
	envios.Put("/:id/estado",
		RequireRole(entity.RolAdmin, entity.RolRepartidor),
		shipmentHandler.UpdateEstado)

	// Cuentas por pagar
	cpp := protected.Group("/cuentas-por-pagar", RequireRole(entity.RolAdmin))
	payableHandler := NewPayableHandler(deps.PayableUC)
	cpp.Post("/", payableHandler.Create)
	cpp.Get("/", payableHandler.List)
	cpp.Get("/:id", payableHandler.GetByID)
	cpp.Delete("/:id", payableHandler.Delete)
	cpp.Post("/:id/abonos", payableHandler.ApplyPayment)
	cpp.Get("/:id/abonos", payableHandler.ListPayments)

	// Proveedores
	proveedores := protected.Group("/proveedores", RequireRole(entity.RolAdmin))
	supplierHandler := NewSupplierHandler(deps.SupplierRepo)
	proveedores.Post("/", supplierHandler.Create)
	proveedores.Get("/", supplierHandler.List)

	// Clientes
	clientes := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerRepo)
	clientes.Post("/", customerHandler.Create)
	clientes.Get("/", customerHandler.List)

	// Notificaciones
	notifs := protected.Group("/notificaciones")
	notificationHandler := NewNotificationHandler(deps.NotifRepo)
	notifs.Get("/", notificationHandler.List)
	notifs.Post("/:id/leer", notificationHandler.MarkRead)
}
