package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste un envío.
func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	query := `
		INSERT INTO envios (id, venta_id, repartidor_id, direccion, telefono, notas, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.VentaID, shipment.RepartidorID,
		shipment.Direccion, nullIfEmpty(shipment.Telefono), nullIfEmpty(shipment.Notas),
		shipment.Estado, shipment.CreatedAt, shipment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert envío: %w", err)
	}
	return nil
}

// GetByVentaID busca el envío asociado a una venta. Devuelve (nil, nil) si no existe.
func (r *ShipmentRepo) GetByVentaID(ventaID string) (*entity.Shipment, error) {
	query := `
		SELECT id, venta_id, repartidor_id, direccion, telefono, notas, estado, created_at, updated_at
		FROM envios WHERE venta_id = $1`
	var s entity.Shipment
	var telefono, notas *string
	err := r.q.QueryRow(context.Background(), query, ventaID).Scan(
		&s.ID, &s.VentaID, &s.RepartidorID, &s.Direccion,
		&telefono, &notas, &s.Estado, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get envío: %w", err)
	}
	if telefono != nil {
		s.Telefono = *telefono
	}
	if notas != nil {
		s.Notas = *notas
	}
	return &s, nil
}

// UpdateEstado actualiza el estado del envío.
func (r *ShipmentRepo) UpdateEstado(id, estado string) error {
	query := `UPDATE envios SET estado = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, estado)
	if err != nil {
		return fmt.Errorf("update estado envío: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
