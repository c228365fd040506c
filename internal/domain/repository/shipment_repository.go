package repository

import "github.com/marlonji2360/pos-venta/internal/domain/entity"

// ShipmentRepository define el puerto de persistencia para envíos a domicilio.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByVentaID(ventaID string) (*entity.Shipment, error)
	UpdateEstado(id, estado string) error
}
