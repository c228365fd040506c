package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuenta por pagar. "vencida" es derivado (fecha de vencimiento
// pasada con saldo > 0) y se materializa en la pasada de reconciliación.
const (
	PayablePendiente = "pendiente"
	PayableParcial   = "parcial"
	PayablePagada    = "pagada"
	PayableVencida   = "vencida"
)

// PayableAccount representa una deuda con un proveedor.
// Invariante: MontoPagado + SaldoPendiente == MontoTotal en todo momento;
// SaldoPendiente nunca es negativo.
type PayableAccount struct {
	ID               string
	Folio            string // CPP-NNNNNN, único
	ProveedorID      string
	OrdenCompraID    *string
	Concepto         string
	FechaEmision     time.Time
	FechaVencimiento time.Time // FechaEmision + DiasCredito días calendario
	MontoTotal       decimal.Decimal
	MontoPagado      decimal.Decimal
	SaldoPendiente   decimal.Decimal
	DiasCredito      int
	Estado           string
	UsuarioID        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
