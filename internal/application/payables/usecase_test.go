package payables_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/application/payables"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/folio"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	payables  map[string]*entity.PayableAccount
	payments  []*entity.Payment
	suppliers map[string]*entity.Supplier
	notifs    []*entity.Notification
	folios    map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		payables:  map[string]*entity.PayableAccount{},
		suppliers: map[string]*entity.Supplier{},
		folios:    map[string]int64{},
	}
}

type storePayableRepo struct{ s *fakeStore }

func (r storePayableRepo) Create(p *entity.PayableAccount) error {
	cp := *p
	r.s.payables[p.ID] = &cp
	return nil
}
func (r storePayableRepo) GetByID(id string) (*entity.PayableAccount, error) {
	p, ok := r.s.payables[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r storePayableRepo) GetForUpdate(id string) (*entity.PayableAccount, error) {
	return r.GetByID(id)
}
func (r storePayableRepo) UpdateBalance(id string, montoPagado, saldoPendiente decimal.Decimal, estado string) error {
	p, ok := r.s.payables[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.MontoPagado = montoPagado
	p.SaldoPendiente = saldoPendiente
	p.Estado = estado
	return nil
}
func (r storePayableRepo) UpdateEstado(id, estado string) error {
	p, ok := r.s.payables[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Estado = estado
	return nil
}
func (r storePayableRepo) Delete(id string) error {
	delete(r.s.payables, id)
	return nil
}
func (r storePayableRepo) List(estado string, _, _ int) ([]*entity.PayableAccount, error) {
	var out []*entity.PayableAccount
	for _, p := range r.s.payables {
		if estado == "" || p.Estado == estado {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r storePayableRepo) ListDueBefore(fecha time.Time) ([]*entity.PayableAccount, error) {
	var out []*entity.PayableAccount
	for _, p := range r.s.payables {
		if (p.Estado == entity.PayablePendiente || p.Estado == entity.PayableParcial) &&
			p.FechaVencimiento.Before(fecha) {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r storePayableRepo) ListDueBetween(desde, hasta time.Time) ([]*entity.PayableAccount, error) {
	var out []*entity.PayableAccount
	for _, p := range r.s.payables {
		if (p.Estado == entity.PayablePendiente || p.Estado == entity.PayableParcial) &&
			!p.FechaVencimiento.Before(desde) && !p.FechaVencimiento.After(hasta) {
			out = append(out, p)
		}
	}
	return out, nil
}

type storePaymentRepo struct{ s *fakeStore }

func (r storePaymentRepo) Create(p *entity.Payment) error {
	r.s.payments = append(r.s.payments, p)
	return nil
}
func (r storePaymentRepo) ListByPayable(id string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.CuentaPorPagarID == id {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r storePaymentRepo) CountByPayable(id string) (int, error) {
	list, _ := r.ListByPayable(id)
	return len(list), nil
}

type storeSupplierRepo struct{ s *fakeStore }

func (r storeSupplierRepo) Create(sup *entity.Supplier) error {
	r.s.suppliers[sup.ID] = sup
	return nil
}
func (r storeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return sup, nil
}
func (r storeSupplierRepo) List(bool, int, int) ([]*entity.Supplier, error) { return nil, nil }

type storeNotifRepo struct{ s *fakeStore }

func (r storeNotifRepo) Create(n *entity.Notification) error {
	r.s.notifs = append(r.s.notifs, n)
	return nil
}
func (r storeNotifRepo) ExistsForDay(tipo, referencia string, dia time.Time) (bool, error) {
	for _, n := range r.s.notifs {
		if n.Tipo == tipo && n.Referencia == referencia &&
			n.CreatedAt.Year() == dia.Year() && n.CreatedAt.YearDay() == dia.YearDay() {
			return true, nil
		}
	}
	return false, nil
}
func (r storeNotifRepo) List(bool, int, int) ([]*entity.Notification, error) { return r.s.notifs, nil }
func (r storeNotifRepo) MarkRead(string) error                               { return nil }

type storeFolioRepo struct{ s *fakeStore }

func (r storeFolioRepo) Next(prefijo string) (string, error) {
	r.s.folios[prefijo]++
	return folio.Format(prefijo, r.s.folios[prefijo]), nil
}

type storeTxRunner struct{ s *fakeStore }

func (tx storeTxRunner) RunPayable(ctx context.Context, fn func(
	payableRepo repository.PayableRepository,
	paymentRepo repository.PaymentRepository,
	folioRepo repository.FolioRepository,
) error) error {
	return fn(storePayableRepo{tx.s}, storePaymentRepo{tx.s}, storeFolioRepo{tx.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

// hoyFijo es el "ahora" inyectado en todos los tests.
var hoyFijo = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newPayableFixture(t *testing.T) (*payables.PayableUseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore()
	s.suppliers["prov1"] = &entity.Supplier{ID: "prov1", Nombre: "Distribuidora Norte", Activo: true}
	uc := payables.NewPayableUseCase(storeTxRunner{s}, storePayableRepo{s}, storePaymentRepo{s},
		storeSupplierRepo{s}, storeNotifRepo{s}).
		WithNow(func() time.Time { return hoyFijo })
	return uc, s
}

func createPayable(t *testing.T, uc *payables.PayableUseCase, monto int64, diasCredito int) *dto.PayableResponse {
	t.Helper()
	resp, err := uc.CreatePayable(context.Background(), "u1", dto.CreatePayableRequest{
		ProveedorID: "prov1",
		Concepto:    "compra de mercancía",
		DiasCredito: diasCredito,
		MontoTotal:  decimal.NewFromInt(monto),
	})
	require.NoError(t, err)
	return resp
}

func abono(monto int64) dto.ApplyPaymentRequest {
	return dto.ApplyPaymentRequest{Monto: decimal.NewFromInt(monto), MetodoPago: "transferencia"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePayable_FolioYVencimiento(t *testing.T) {
	uc, _ := newPayableFixture(t)

	resp := createPayable(t, uc, 1500, 30)

	assert.Equal(t, "CPP-000001", resp.Folio)
	assert.Equal(t, entity.PayablePendiente, resp.Estado)
	assert.Equal(t, "2025-04-09", resp.FechaVencimiento, "vencimiento = emisión + 30 días calendario")
	assert.True(t, resp.SaldoPendiente.Equal(decimal.NewFromInt(1500)),
		"el saldo inicial es el monto total")
	assert.True(t, resp.MontoPagado.IsZero())
}

func TestCreatePayable_MontoNoPositivo(t *testing.T) {
	uc, _ := newPayableFixture(t)
	ctx := context.Background()

	_, err := uc.CreatePayable(ctx, "u1", dto.CreatePayableRequest{
		ProveedorID: "prov1", MontoTotal: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount, "monto cero")

	_, err = uc.CreatePayable(ctx, "u1", dto.CreatePayableRequest{
		ProveedorID: "prov1", MontoTotal: decimal.NewFromInt(-100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount, "monto negativo")
}

func TestCreatePayable_ProveedorInexistente(t *testing.T) {
	uc, _ := newPayableFixture(t)
	_, err := uc.CreatePayable(context.Background(), "u1", dto.CreatePayableRequest{
		ProveedorID: "fantasma", MontoTotal: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePayable_DiasCreditoNegativo(t *testing.T) {
	uc, _ := newPayableFixture(t)
	_, err := uc.CreatePayable(context.Background(), "u1", dto.CreatePayableRequest{
		ProveedorID: "prov1", DiasCredito: -5, MontoTotal: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Abonos
// ──────────────────────────────────────────────────────────────────────────────

// Secuencia de abonos 600/500/400 sobre una cuenta de 1500: tras cada abono se
// conserva pagado + saldo == total, y los estados transitan
// pendiente → parcial → parcial → pagada.
func TestApplyPayment_SecuenciaDeAbonosConservaSaldo(t *testing.T) {
	uc, s := newPayableFixture(t)
	ctx := context.Background()
	cuenta := createPayable(t, uc, 1500, 30)
	total := decimal.NewFromInt(1500)

	pasos := []struct {
		monto     int64
		pagadoEsp int64
		saldoEsp  int64
		estadoEsp string
	}{
		{600, 600, 900, entity.PayableParcial},
		{500, 1100, 400, entity.PayableParcial},
		{400, 1500, 0, entity.PayablePagada},
	}

	for _, paso := range pasos {
		_, err := uc.ApplyPayment(ctx, "u1", cuenta.ID, abono(paso.monto))
		require.NoError(t, err)

		p := s.payables[cuenta.ID]
		assert.True(t, p.MontoPagado.Equal(decimal.NewFromInt(paso.pagadoEsp)),
			"pagado tras abono de %d", paso.monto)
		assert.True(t, p.SaldoPendiente.Equal(decimal.NewFromInt(paso.saldoEsp)),
			"saldo tras abono de %d", paso.monto)
		assert.Equal(t, paso.estadoEsp, p.Estado)
		assert.True(t, p.MontoPagado.Add(p.SaldoPendiente).Equal(total),
			"conservación: pagado + saldo == total en todo momento")
	}
	require.Len(t, s.payments, 3, "cada abono deja exactamente un registro inmutable")
}

// Un abono que excede el saldo se rechaza sin tocar saldo ni estado.
func TestApplyPayment_ExcedeSaldoRechazado(t *testing.T) {
	uc, s := newPayableFixture(t)
	ctx := context.Background()
	cuenta := createPayable(t, uc, 1000, 30)

	_, err := uc.ApplyPayment(ctx, "u1", cuenta.ID, abono(600))
	require.NoError(t, err)

	_, err = uc.ApplyPayment(ctx, "u1", cuenta.ID, abono(500))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount, "600 + 500 > 1000: debe rechazarse")

	p := s.payables[cuenta.ID]
	assert.True(t, p.SaldoPendiente.Equal(decimal.NewFromInt(400)),
		"el saldo no cambia tras un abono rechazado")
	assert.Equal(t, entity.PayableParcial, p.Estado)
	require.Len(t, s.payments, 1, "el abono rechazado no deja registro")
}

func TestApplyPayment_MontoNoPositivo(t *testing.T) {
	uc, _ := newPayableFixture(t)
	cuenta := createPayable(t, uc, 1000, 30)

	_, err := uc.ApplyPayment(context.Background(), "u1", cuenta.ID, abono(0))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.ApplyPayment(context.Background(), "u1", cuenta.ID, abono(-50))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestApplyPayment_CuentaInexistente(t *testing.T) {
	uc, _ := newPayableFixture(t)
	_, err := uc.ApplyPayment(context.Background(), "u1", "no-existe", abono(100))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDeletePayable_SinAbonos(t *testing.T) {
	uc, s := newPayableFixture(t)
	cuenta := createPayable(t, uc, 1000, 30)

	require.NoError(t, uc.DeletePayable(context.Background(), cuenta.ID))
	assert.Empty(t, s.payables)
}

// Con abonos registrados la cuenta no puede borrarse: la historia de pagos es
// inmutable.
func TestDeletePayable_ConAbonosConflicto(t *testing.T) {
	uc, s := newPayableFixture(t)
	ctx := context.Background()
	cuenta := createPayable(t, uc, 1000, 30)
	_, err := uc.ApplyPayment(ctx, "u1", cuenta.ID, abono(100))
	require.NoError(t, err)

	err = uc.DeletePayable(ctx, cuenta.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, s.payables, 1, "la cuenta sigue existiendo")
}
