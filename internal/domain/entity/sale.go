package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Una venta solo transiciona de completada a cancelada,
// nunca en sentido inverso.
const (
	SaleCompletada = "completada"
	SaleCancelada  = "cancelada"
)

// Métodos de pago aceptados en caja.
const (
	PagoEfectivo      = "efectivo"
	PagoTarjeta       = "tarjeta"
	PagoTransferencia = "transferencia"
)

// Sale es la cabecera de una venta. Invariante: Subtotal + IVA == Total
// (recomputado y verificado al crear, no se confía en el caller).
type Sale struct {
	ID         string
	Folio      string // VTA-NNNNNN, único
	UsuarioID  string // vendedor
	ClienteID  *string
	FechaVenta time.Time
	MetodoPago string
	Subtotal   decimal.Decimal
	IVA        decimal.Decimal
	Total      decimal.Decimal
	Estado     string // completada | cancelada
	EsEnvio    bool
	Lines      []SaleLine
}

// SaleLine es una línea de detalle de la venta. Subtotal = Cantidad * PrecioUnitario.
type SaleLine struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
