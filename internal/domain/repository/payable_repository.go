package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marlonji2360/pos-venta/internal/domain/entity"
)

// PayableRepository define el puerto de persistencia para cuentas por pagar.
type PayableRepository interface {
	Create(payable *entity.PayableAccount) error
	GetByID(id string) (*entity.PayableAccount, error)
	// GetForUpdate bloquea la fila para aplicar un abono (serializa la
	// actualización de saldo con el insert del pago).
	GetForUpdate(id string) (*entity.PayableAccount, error)
	// UpdateBalance persiste monto_pagado, saldo_pendiente y estado en un solo UPDATE.
	UpdateBalance(id string, montoPagado, saldoPendiente decimal.Decimal, estado string) error
	UpdateEstado(id, estado string) error
	Delete(id string) error
	List(estado string, limit, offset int) ([]*entity.PayableAccount, error)
	// ListDueBefore devuelve cuentas pendientes o parciales con vencimiento anterior a la fecha.
	ListDueBefore(fecha time.Time) ([]*entity.PayableAccount, error)
	// ListDueBetween devuelve cuentas pendientes o parciales que vencen dentro del rango.
	ListDueBetween(desde, hasta time.Time) ([]*entity.PayableAccount, error)
}
