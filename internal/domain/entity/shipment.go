package entity

import "time"

// Estados de un envío a domicilio.
const (
	ShipmentPendiente = "pendiente"
	ShipmentEnRuta    = "en_ruta"
	ShipmentEntregado = "entregado"
)

// Shipment es el registro de envío a domicilio asociado a una venta.
// RepartidorID puede ser nil si no había repartidores activos al crear la venta.
type Shipment struct {
	ID           string
	VentaID      string
	RepartidorID *string
	Direccion    string
	Telefono     string
	Notas        string
	Estado       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
