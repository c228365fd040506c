package postgres

import (
	"context"
	"fmt"

	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository sobre PostgreSQL (usable con pool o tx).
// Los abonos son inmutables: solo insert y lecturas.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de abonos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un abono.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO pagos_cpp (id, cuenta_por_pagar_id, monto, metodo_pago, referencia, usuario_id, fecha_pago)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CuentaPorPagarID, payment.Monto, payment.MetodoPago,
		nullIfEmpty(payment.Referencia), payment.UsuarioID, payment.FechaPago,
	)
	if err != nil {
		return fmt.Errorf("insert abono: %w", err)
	}
	return nil
}

// ListByPayable lista los abonos de una cuenta en orden cronológico.
func (r *PaymentRepo) ListByPayable(cuentaPorPagarID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, cuenta_por_pagar_id, monto, metodo_pago, referencia, usuario_id, fecha_pago
		FROM pagos_cpp WHERE cuenta_por_pagar_id = $1 ORDER BY fecha_pago`
	rows, err := r.q.Query(context.Background(), query, cuentaPorPagarID)
	if err != nil {
		return nil, fmt.Errorf("list abonos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var referencia *string
		if err := rows.Scan(&p.ID, &p.CuentaPorPagarID, &p.Monto, &p.MetodoPago,
			&referencia, &p.UsuarioID, &p.FechaPago); err != nil {
			return nil, fmt.Errorf("scan abono: %w", err)
		}
		if referencia != nil {
			p.Referencia = *referencia
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByPayable cuenta los abonos de una cuenta (guard de borrado).
func (r *PaymentRepo) CountByPayable(cuentaPorPagarID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM pagos_cpp WHERE cuenta_por_pagar_id = $1`, cuentaPorPagarID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count abonos: %w", err)
	}
	return n, nil
}
