package repository

import (
	"time"

	"github.com/marlonji2360/pos-venta/internal/domain/entity"
)

// NotificationRepository define el puerto para el buzón de notificaciones (insert-only).
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	// ExistsForDay verifica si ya existe una notificación del mismo tipo y
	// referencia creada el mismo día calendario (dedup de la reconciliación).
	ExistsForDay(tipo, referencia string, dia time.Time) (bool, error)
	List(soloNoLeidas bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id string) error
}
