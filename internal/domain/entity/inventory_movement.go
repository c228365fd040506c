package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementEntrada = "entrada"
	MovementSalida  = "salida"
)

// InventoryMovement es el registro inmutable de cada cambio de stock.
// Se crea exactamente uno por evento que afecte stock (venta, cancelación,
// recepción de mercancía, ajuste manual); nunca se actualiza ni se borra.
type InventoryMovement struct {
	ID         string
	ProductoID string
	Tipo       string // entrada | salida
	Cantidad   int    // siempre positivo; el signo lo da Tipo
	Motivo     string
	UsuarioID  string
	Referencia string // correlación libre: folio de venta, folio CPP, etc.
	CreatedAt  time.Time
}
