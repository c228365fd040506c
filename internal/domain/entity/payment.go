package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment es un abono aplicado a una cuenta por pagar. Inmutable una vez creado;
// el insert del abono y la actualización del saldo de la cuenta ocurren en la
// misma transacción (nunca como dos escrituras independientes).
type Payment struct {
	ID               string
	CuentaPorPagarID string
	Monto            decimal.Decimal
	MetodoPago       string
	Referencia       string
	UsuarioID        string
	FechaPago        time.Time
}
