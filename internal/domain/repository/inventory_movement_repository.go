package repository

import (
	"time"

	"github.com/marlonji2360/pos-venta/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos
// de inventario. Solo Create y lecturas: el historial es append-only.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productoID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByReferencia(referencia string) ([]*entity.InventoryMovement, error)
}
