package sales

import (
	"context"
	"time"

	"github.com/marlonji2360/pos-venta/internal/application/inventory"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de venta, inventario, folios, notificaciones y envíos.
// Toda la creación (o cancelación) de una venta es un solo commit.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		folioRepo repository.FolioRepository,
		notifRepo repository.NotificationRepository,
		shipmentRepo repository.ShipmentRepository,
	) error) error
}

// StockAdjuster integra ventas con el motor de inventario. AdjustInTx aplica
// el ajuste usando los repositorios del caller (misma transacción); si retorna
// error el caller hace rollback.
type StockAdjuster interface {
	AdjustInTx(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		input inventory.AdjustInput,
		now time.Time,
	) (*entity.InventoryMovement, error)
}

// TicketLine línea enriquecida para el ticket PDF de la venta.
type TicketLine struct {
	Line           *entity.SaleLine
	ProductoNombre string
}

// TicketGenerator genera la representación PDF del ticket de venta.
type TicketGenerator interface {
	GenerateTicket(ctx context.Context, sale *entity.Sale, lines []TicketLine) ([]byte, error)
}
