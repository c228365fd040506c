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
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
)

// createPayableEmitida registra una cuenta con fecha de emisión explícita.
func createPayableEmitida(t *testing.T, uc *payables.PayableUseCase, emision string, diasCredito int) *dto.PayableResponse {
	t.Helper()
	resp, err := uc.CreatePayable(context.Background(), "u1", dto.CreatePayableRequest{
		ProveedorID:  "prov1",
		Concepto:     "compra de mercancía",
		FechaEmision: emision,
		DiasCredito:  diasCredito,
		MontoTotal:   decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	return resp
}

func notifsPorTipo(s *fakeStore, tipo string) []*entity.Notification {
	var out []*entity.Notification
	for _, n := range s.notifs {
		if n.Tipo == tipo {
			out = append(out, n)
		}
	}
	return out
}

// Una cuenta vencida pasa a estado "vencida" y emite una notificación de
// prioridad alta; una próxima a vencer conserva su estado y emite una de
// prioridad media; una lejana no emite nada.
func TestReconcileOverdue_MarcaVencidasYAvisaProximas(t *testing.T) {
	uc, s := newPayableFixture(t)
	ctx := context.Background()

	// hoyFijo es 2025-03-10.
	vencida := createPayableEmitida(t, uc, "2025-02-01", 10) // venció el 2025-02-11
	proxima := createPayableEmitida(t, uc, "2025-03-08", 5)  // vence el 2025-03-13
	lejana := createPayableEmitida(t, uc, "2025-03-10", 60)  // vence el 2025-05-09

	vencidas, porVencer, err := uc.ReconcileOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, vencidas)
	assert.Equal(t, 1, porVencer)

	assert.Equal(t, entity.PayableVencida, s.payables[vencida.ID].Estado)
	assert.Equal(t, entity.PayablePendiente, s.payables[proxima.ID].Estado,
		"próxima a vencer no cambia de estado")
	assert.Equal(t, entity.PayablePendiente, s.payables[lejana.ID].Estado)

	altas := notifsPorTipo(s, entity.NotifCuentaVencida)
	require.Len(t, altas, 1)
	assert.Equal(t, entity.PrioridadAlta, altas[0].Prioridad)
	assert.Equal(t, vencida.Folio, altas[0].Referencia)

	medias := notifsPorTipo(s, entity.NotifCuentaPorVencer)
	require.Len(t, medias, 1)
	assert.Equal(t, entity.PrioridadMedia, medias[0].Prioridad)
	assert.Equal(t, proxima.Folio, medias[0].Referencia)
}

// Correr la reconciliación dos veces el mismo día no duplica avisos.
func TestReconcileOverdue_DedupMismoDia(t *testing.T) {
	uc, s := newPayableFixture(t)
	ctx := context.Background()

	createPayableEmitida(t, uc, "2025-02-01", 10)
	createPayableEmitida(t, uc, "2025-03-08", 5)

	_, _, err := uc.ReconcileOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, s.notifs, 2)

	vencidas, porVencer, err := uc.ReconcileOverdue(ctx)
	require.NoError(t, err)
	assert.Zero(t, vencidas, "segunda pasada del mismo día no emite nada")
	assert.Zero(t, porVencer)
	assert.Len(t, s.notifs, 2, "sin notificaciones duplicadas")
}

// Al día siguiente la cuenta por vencer vuelve a avisar: el dedup es por día
// calendario, no de por vida.
func TestReconcileOverdue_AvisaDeNuevoAlDiaSiguiente(t *testing.T) {
	uc, s := newPayableFixture(t)
	ctx := context.Background()

	proxima := createPayableEmitida(t, uc, "2025-03-08", 5) // vence el 2025-03-13

	_, porVencer, err := uc.ReconcileOverdue(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, porVencer)

	uc.WithNow(func() time.Time { return hoyFijo.AddDate(0, 0, 1) })
	_, porVencer, err = uc.ReconcileOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, porVencer, "nuevo día calendario, nuevo aviso")

	medias := notifsPorTipo(s, entity.NotifCuentaPorVencer)
	assert.Len(t, medias, 2)
	for _, n := range medias {
		assert.Equal(t, proxima.Folio, n.Referencia)
	}
}

// Una cuenta pagada por completo queda fuera de la reconciliación aunque su
// fecha de vencimiento ya haya pasado.
func TestReconcileOverdue_IgnoraPagadas(t *testing.T) {
	uc, s := newPayableFixture(t)
	ctx := context.Background()

	cuenta := createPayableEmitida(t, uc, "2025-02-01", 10)
	_, err := uc.ApplyPayment(ctx, "u1", cuenta.ID, abono(1000))
	require.NoError(t, err)

	vencidas, porVencer, err := uc.ReconcileOverdue(ctx)
	require.NoError(t, err)
	assert.Zero(t, vencidas)
	assert.Zero(t, porVencer)
	assert.Empty(t, s.notifs)
	assert.Equal(t, entity.PayablePagada, s.payables[cuenta.ID].Estado)
}
