package payables

import (
	"context"

	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// PayableTxRunner ejecuta una función dentro de una transacción con los
// repositorios de cuentas por pagar, abonos y folios. El insert del abono y la
// actualización del saldo son siempre un solo commit.
type PayableTxRunner interface {
	RunPayable(ctx context.Context, fn func(
		payableRepo repository.PayableRepository,
		paymentRepo repository.PaymentRepository,
		folioRepo repository.FolioRepository,
	) error) error
}
