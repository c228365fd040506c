package payables

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marlonji2360/pos-venta/internal/domain/entity"
)

// Ventana de aviso anticipado de vencimiento.
const diasAvisoVencimiento = 7

// ReconcileOverdue materializa el estado derivado "vencida": toda cuenta
// pendiente o parcial con fecha de vencimiento pasada se marca vencida y emite
// una notificación de prioridad alta; las que vencen dentro de los próximos
// 7 días emiten una de prioridad media. Ambas se deduplican por
// cuenta/tipo/día calendario, así la pasada puede correr tan seguido como se
// quiera sin duplicar avisos.
//
// Pensada para correr periódicamente desde un ticker o un cron externo.
// Devuelve cuántas cuentas se marcaron vencidas y cuántos avisos de
// por-vencer se emitieron.
func (uc *PayableUseCase) ReconcileOverdue(ctx context.Context) (vencidas, porVencer int, err error) {
	now := uc.nowFn()
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	overdue, err := uc.payableRepo.ListDueBefore(hoy)
	if err != nil {
		return 0, 0, fmt.Errorf("reconciliación: listar vencidas: %w", err)
	}
	for _, p := range overdue {
		if err := uc.payableRepo.UpdateEstado(p.ID, entity.PayableVencida); err != nil {
			return vencidas, porVencer, err
		}
		emitida, err := uc.notifyOnce(entity.NotifCuentaVencida, entity.PrioridadAlta,
			"Cuenta por pagar vencida",
			fmt.Sprintf("La cuenta %s venció el %s con saldo pendiente de %s",
				p.Folio, p.FechaVencimiento.Format(fechaLayout), p.SaldoPendiente.StringFixed(2)),
			p, hoy, now)
		if err != nil {
			return vencidas, porVencer, err
		}
		if emitida {
			vencidas++
		}
	}

	proximas, err := uc.payableRepo.ListDueBetween(hoy, hoy.AddDate(0, 0, diasAvisoVencimiento))
	if err != nil {
		return vencidas, 0, fmt.Errorf("reconciliación: listar por vencer: %w", err)
	}
	for _, p := range proximas {
		emitida, err := uc.notifyOnce(entity.NotifCuentaPorVencer, entity.PrioridadMedia,
			"Cuenta por pagar próxima a vencer",
			fmt.Sprintf("La cuenta %s vence el %s con saldo pendiente de %s",
				p.Folio, p.FechaVencimiento.Format(fechaLayout), p.SaldoPendiente.StringFixed(2)),
			p, hoy, now)
		if err != nil {
			return vencidas, porVencer, err
		}
		if emitida {
			porVencer++
		}
	}
	return vencidas, porVencer, nil
}

// notifyOnce inserta la notificación solo si no existe otra del mismo
// tipo/cuenta creada el mismo día calendario.
func (uc *PayableUseCase) notifyOnce(tipo, prioridad, titulo, mensaje string, p *entity.PayableAccount, dia, now time.Time) (bool, error) {
	existe, err := uc.notifRepo.ExistsForDay(tipo, p.Folio, dia)
	if err != nil {
		return false, err
	}
	if existe {
		return false, nil
	}
	notif := &entity.Notification{
		ID:         uuid.New().String(),
		Tipo:       tipo,
		Prioridad:  prioridad,
		Titulo:     titulo,
		Mensaje:    mensaje,
		Referencia: p.Folio,
		CreatedAt:  now,
	}
	if err := uc.notifRepo.Create(notif); err != nil {
		return false, err
	}
	return true, nil
}
