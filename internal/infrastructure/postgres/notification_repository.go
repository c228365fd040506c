package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación sobre PostgreSQL (usable con pool o tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(notification *entity.Notification) error {
	query := `
		INSERT INTO notificaciones (id, tipo, prioridad, titulo, mensaje, referencia, leida, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		notification.ID, notification.Tipo, notification.Prioridad,
		notification.Titulo, notification.Mensaje, nullIfEmpty(notification.Referencia),
		notification.Leida, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notificación: %w", err)
	}
	return nil
}

// ExistsForDay verifica si ya hay una notificación del mismo tipo y referencia
// creada el mismo día calendario (dedup de la reconciliación de vencidas).
func (r *NotificationRepo) ExistsForDay(tipo, referencia string, dia time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notificaciones
			WHERE tipo = $1 AND referencia = $2 AND created_at::date = $3::date
		)`
	var existe bool
	if err := r.q.QueryRow(context.Background(), query, tipo, referencia, dia).Scan(&existe); err != nil {
		return false, fmt.Errorf("exists notificación: %w", err)
	}
	return existe, nil
}

// List lista notificaciones, más recientes primero.
func (r *NotificationRepo) List(soloNoLeidas bool, limit, offset int) ([]*entity.Notification, error) {
	query := `SELECT id, tipo, prioridad, titulo, mensaje, referencia, leida, created_at FROM notificaciones`
	if soloNoLeidas {
		query += ` WHERE NOT leida`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notificaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		var referencia *string
		if err := rows.Scan(&n.ID, &n.Tipo, &n.Prioridad, &n.Titulo, &n.Mensaje,
			&referencia, &n.Leida, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notificación: %w", err)
		}
		if referencia != nil {
			n.Referencia = *referencia
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(id string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE notificaciones SET leida = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
