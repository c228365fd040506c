package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, producto_id, tipo_movimiento, cantidad, motivo, usuario_id, referencia, created_at`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay Update ni Delete.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_inventario (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductoID, movement.Tipo, movement.Cantidad,
		movement.Motivo, nullIfEmpty(movement.UsuarioID), nullIfEmpty(movement.Referencia),
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *InventoryMovementRepo) ListByProduct(productoID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos_inventario WHERE producto_id = $1`
	args := []any{productoID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	return r.list(query, args...)
}

// ListByReferencia lista movimientos por referencia (ej. el folio de una venta).
func (r *InventoryMovementRepo) ListByReferencia(referencia string) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimientos_inventario WHERE referencia = $1 ORDER BY created_at`
	return r.list(query, referencia)
}

func (r *InventoryMovementRepo) list(query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var usuarioID, referencia *string
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad,
			&m.Motivo, &usuarioID, &referencia, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if usuarioID != nil {
			m.UsuarioID = *usuarioID
		}
		if referencia != nil {
			m.Referencia = *referencia
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
