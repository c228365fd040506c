package payables

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/folio"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

const fechaLayout = "2006-01-02"

// PayableUseCase coordina las cuentas por pagar: alta con fecha de
// vencimiento calculada, abonos con conservación de saldo
// (monto_pagado + saldo_pendiente == monto_total siempre) y el guard de
// borrado.
type PayableUseCase struct {
	txRunner     PayableTxRunner
	payableRepo  repository.PayableRepository
	paymentRepo  repository.PaymentRepository
	supplierRepo repository.SupplierRepository
	notifRepo    repository.NotificationRepository
	nowFn        func() time.Time
}

// NewPayableUseCase construye el coordinador de cuentas por pagar.
func NewPayableUseCase(
	txRunner PayableTxRunner,
	payableRepo repository.PayableRepository,
	paymentRepo repository.PaymentRepository,
	supplierRepo repository.SupplierRepository,
	notifRepo repository.NotificationRepository,
) *PayableUseCase {
	return &PayableUseCase{
		txRunner:     txRunner,
		payableRepo:  payableRepo,
		paymentRepo:  paymentRepo,
		supplierRepo: supplierRepo,
		notifRepo:    notifRepo,
		nowFn:        time.Now,
	}
}

// WithNow reemplaza la fuente de tiempo (reconciliación y vencimientos en tests).
func (uc *PayableUseCase) WithNow(now func() time.Time) *PayableUseCase {
	uc.nowFn = now
	return uc
}

// CreatePayable registra la cuenta con folio CPP-NNNNNN,
// fecha_vencimiento = fecha_emision + dias_credito (días calendario),
// saldo_pendiente = monto_total y estado pendiente.
func (uc *PayableUseCase) CreatePayable(ctx context.Context, usuarioID string, in dto.CreatePayableRequest) (*dto.PayableResponse, error) {
	if usuarioID == "" || in.ProveedorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DiasCredito < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.MontoTotal.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	supplier, err := uc.supplierRepo.GetByID(in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.nowFn()
	fechaEmision := now
	if in.FechaEmision != "" {
		fechaEmision, err = time.Parse(fechaLayout, in.FechaEmision)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	payable := &entity.PayableAccount{
		ID:               uuid.New().String(),
		ProveedorID:      in.ProveedorID,
		OrdenCompraID:    in.OrdenCompraID,
		Concepto:         in.Concepto,
		FechaEmision:     fechaEmision,
		FechaVencimiento: fechaEmision.AddDate(0, 0, in.DiasCredito),
		MontoTotal:       in.MontoTotal,
		MontoPagado:      decimal.Zero,
		SaldoPendiente:   in.MontoTotal,
		DiasCredito:      in.DiasCredito,
		Estado:           entity.PayablePendiente,
		UsuarioID:        usuarioID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.RunPayable(ctx, func(
		payableRepo repository.PayableRepository,
		_ repository.PaymentRepository,
		folioRepo repository.FolioRepository,
	) error {
		f, err := folioRepo.Next(folio.PrefijoCuenta)
		if err != nil {
			return err
		}
		payable.Folio = f
		return payableRepo.Create(payable)
	})
	if err != nil {
		return nil, err
	}
	resp := toPayableResponse(payable)
	return &resp, nil
}

// ApplyPayment aplica un abono: inserta el pago y actualiza
// monto_pagado/saldo_pendiente/estado en la misma transacción (equivalente
// explícito del trigger de BD, visible en el código de aplicación).
// Rechaza con ErrInvalidAmount montos no positivos o mayores al saldo.
func (uc *PayableUseCase) ApplyPayment(ctx context.Context, usuarioID, payableID string, in dto.ApplyPaymentRequest) (*dto.PaymentResponse, error) {
	if usuarioID == "" || payableID == "" || in.MetodoPago == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Monto.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	now := uc.nowFn()
	var payment *entity.Payment
	err := uc.txRunner.RunPayable(ctx, func(
		payableRepo repository.PayableRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.FolioRepository,
	) error {
		// Bloquea la cuenta: el saldo que se valida es el saldo que se actualiza.
		payable, err := payableRepo.GetForUpdate(payableID)
		if err != nil {
			return err
		}
		if payable == nil {
			return domain.ErrNotFound
		}
		if in.Monto.GreaterThan(payable.SaldoPendiente) {
			// el abono excede el saldo pendiente
			return domain.ErrInvalidAmount
		}

		payment = &entity.Payment{
			ID:               uuid.New().String(),
			CuentaPorPagarID: payable.ID,
			Monto:            in.Monto,
			MetodoPago:       in.MetodoPago,
			Referencia:       in.Referencia,
			UsuarioID:        usuarioID,
			FechaPago:        now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}

		pagado := payable.MontoPagado.Add(in.Monto)
		saldo := payable.SaldoPendiente.Sub(in.Monto)
		estado := entity.PayableParcial
		if saldo.IsZero() {
			estado = entity.PayablePagada
		}
		return payableRepo.UpdateBalance(payable.ID, pagado, saldo, estado)
	})
	if err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{
		ID:               payment.ID,
		CuentaPorPagarID: payment.CuentaPorPagarID,
		Monto:            payment.Monto,
		MetodoPago:       payment.MetodoPago,
		Referencia:       payment.Referencia,
		FechaPago:        payment.FechaPago.Format(time.RFC3339),
	}, nil
}

// DeletePayable elimina una cuenta solo si no tiene abonos; con abonos
// registrados falla con ErrConflict (la historia de pagos es inmutable).
func (uc *PayableUseCase) DeletePayable(ctx context.Context, payableID string) error {
	if payableID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunPayable(ctx, func(
		payableRepo repository.PayableRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.FolioRepository,
	) error {
		payable, err := payableRepo.GetForUpdate(payableID)
		if err != nil {
			return err
		}
		if payable == nil {
			return domain.ErrNotFound
		}
		n, err := paymentRepo.CountByPayable(payableID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrConflict
		}
		return payableRepo.Delete(payableID)
	})
}

// GetPayable obtiene una cuenta por ID con su estado vigente.
func (uc *PayableUseCase) GetPayable(ctx context.Context, id string) (*dto.PayableResponse, error) {
	payable, err := uc.payableRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payable == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPayableResponse(payable)
	return &resp, nil
}

// ListPayables lista cuentas, opcionalmente filtradas por estado.
func (uc *PayableUseCase) ListPayables(ctx context.Context, estado string, limit, offset int) ([]dto.PayableResponse, error) {
	list, err := uc.payableRepo.List(estado, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayableResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPayableResponse(p))
	}
	return out, nil
}

// ListPayments lista los abonos de una cuenta.
func (uc *PayableUseCase) ListPayments(ctx context.Context, payableID string) ([]dto.PaymentResponse, error) {
	payments, err := uc.paymentRepo.ListByPayable(payableID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.PaymentResponse{
			ID:               p.ID,
			CuentaPorPagarID: p.CuentaPorPagarID,
			Monto:            p.Monto,
			MetodoPago:       p.MetodoPago,
			Referencia:       p.Referencia,
			FechaPago:        p.FechaPago.Format(time.RFC3339),
		})
	}
	return out, nil
}

func toPayableResponse(p *entity.PayableAccount) dto.PayableResponse {
	return dto.PayableResponse{
		ID:               p.ID,
		Folio:            p.Folio,
		ProveedorID:      p.ProveedorID,
		OrdenCompraID:    p.OrdenCompraID,
		Concepto:         p.Concepto,
		FechaEmision:     p.FechaEmision.Format(fechaLayout),
		FechaVencimiento: p.FechaVencimiento.Format(fechaLayout),
		MontoTotal:       p.MontoTotal,
		MontoPagado:      p.MontoPagado,
		SaldoPendiente:   p.SaldoPendiente,
		DiasCredito:      p.DiasCredito,
		Estado:           p.Estado,
	}
}
