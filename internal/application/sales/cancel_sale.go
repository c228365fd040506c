package sales

import (
	"context"
	"time"

	"github.com/marlonji2360/pos-venta/internal/application/inventory"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// CancelSale cancela una venta devolviendo el stock de cada línea, el inverso
// exacto del descuento de la creación. Re-cancelar una venta ya cancelada
// falla con ErrConflict en lugar de tener éxito en silencio.
func (uc *CreateSaleUseCase) CancelSale(ctx context.Context, saleID, usuarioID string) error {
	if saleID == "" || usuarioID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunSale(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.FolioRepository,
		_ repository.NotificationRepository,
		_ repository.ShipmentRepository,
	) error {
		// Bloquea la cabecera: dos cancelaciones concurrentes no pueden
		// devolver el stock dos veces.
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Estado == entity.SaleCancelada {
			return domain.ErrConflict
		}

		lines, err := saleRepo.GetLines(saleID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := uc.inventoryUC.AdjustInTx(movRepo, productRepo, inventory.AdjustInput{
				ProductoID: line.ProductoID,
				Delta:      line.Cantidad,
				Motivo:     MotivoCancelacion,
				UsuarioID:  usuarioID,
				Referencia: sale.Folio,
			}, now); err != nil {
				return err
			}
		}
		return saleRepo.UpdateEstado(saleID, entity.SaleCancelada)
	})
}
