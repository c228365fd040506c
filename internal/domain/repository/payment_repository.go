package repository

import "github.com/marlonji2360/pos-venta/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para abonos.
// Los abonos son inmutables: solo Create y lecturas.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByPayable(cuentaPorPagarID string) ([]*entity.Payment, error)
	CountByPayable(cuentaPorPagarID string) (int, error)
}
