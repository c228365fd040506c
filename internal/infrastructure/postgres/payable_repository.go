package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.PayableRepository = (*PayableRepo)(nil)

const payableColumns = `id, folio, proveedor_id, orden_compra_id, concepto, fecha_emision, fecha_vencimiento,
		monto_total, monto_pagado, saldo_pendiente, dias_credito, estado, usuario_id, created_at, updated_at`

// PayableRepo implementación de PayableRepository sobre PostgreSQL (usable con pool o tx).
type PayableRepo struct {
	q Querier
}

// NewPayableRepository construye el adaptador de cuentas por pagar. Pasar pool o tx (Querier).
func NewPayableRepository(q Querier) *PayableRepo {
	return &PayableRepo{q: q}
}

// Create persiste la cuenta por pagar.
func (r *PayableRepo) Create(payable *entity.PayableAccount) error {
	query := `
		INSERT INTO cuentas_por_pagar (` + payableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		payable.ID, payable.Folio, payable.ProveedorID, payable.OrdenCompraID,
		payable.Concepto, payable.FechaEmision, payable.FechaVencimiento,
		payable.MontoTotal, payable.MontoPagado, payable.SaldoPendiente,
		payable.DiasCredito, payable.Estado, payable.UsuarioID,
		payable.CreatedAt, payable.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("folio CPP duplicado: %w", err)
		}
		return fmt.Errorf("insert cuenta por pagar: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *PayableRepo) GetByID(id string) (*entity.PayableAccount, error) {
	return r.get(`SELECT `+payableColumns+` FROM cuentas_por_pagar WHERE id = $1`, id)
}

// GetForUpdate obtiene la cuenta y bloquea su fila (SELECT FOR UPDATE) para
// serializar la aplicación de abonos.
func (r *PayableRepo) GetForUpdate(id string) (*entity.PayableAccount, error) {
	return r.get(`SELECT `+payableColumns+` FROM cuentas_por_pagar WHERE id = $1 FOR UPDATE`, id)
}

func (r *PayableRepo) get(query, id string) (*entity.PayableAccount, error) {
	var p entity.PayableAccount
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Folio, &p.ProveedorID, &p.OrdenCompraID, &p.Concepto,
		&p.FechaEmision, &p.FechaVencimiento,
		&p.MontoTotal, &p.MontoPagado, &p.SaldoPendiente,
		&p.DiasCredito, &p.Estado, &p.UsuarioID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuenta por pagar: %w", err)
	}
	return &p, nil
}

// UpdateBalance persiste monto_pagado, saldo_pendiente y estado en un solo UPDATE.
// Siempre corre en la misma transacción que el insert del abono.
func (r *PayableRepo) UpdateBalance(id string, montoPagado, saldoPendiente decimal.Decimal, estado string) error {
	query := `
		UPDATE cuentas_por_pagar
		SET monto_pagado = $2, saldo_pendiente = $3, estado = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, montoPagado, saldoPendiente, estado)
	if err != nil {
		return fmt.Errorf("update saldo cuenta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateEstado cambia solo el estado (reconciliación de vencidas).
func (r *PayableRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE cuentas_por_pagar SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado cuenta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cuenta. El guard de abonos existentes vive en el caso de
// uso; la FK de pagos respalda la regla a nivel de BD.
func (r *PayableRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM cuentas_por_pagar WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete cuenta por pagar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cuentas, opcionalmente filtradas por estado.
func (r *PayableRepo) List(estado string, limit, offset int) ([]*entity.PayableAccount, error) {
	query := `SELECT ` + payableColumns + ` FROM cuentas_por_pagar`
	args := []any{}
	pos := 1
	if estado != "" {
		query += fmt.Sprintf(" WHERE estado = $%d", pos)
		args = append(args, estado)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha_vencimiento LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListDueBefore devuelve cuentas pendientes o parciales con vencimiento anterior a la fecha.
func (r *PayableRepo) ListDueBefore(fecha time.Time) ([]*entity.PayableAccount, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM cuentas_por_pagar
		WHERE estado IN ($1, $2) AND fecha_vencimiento < $3
		ORDER BY fecha_vencimiento`
	return r.list(query, entity.PayablePendiente, entity.PayableParcial, fecha)
}

// ListDueBetween devuelve cuentas pendientes o parciales que vencen dentro del rango.
func (r *PayableRepo) ListDueBetween(desde, hasta time.Time) ([]*entity.PayableAccount, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM cuentas_por_pagar
		WHERE estado IN ($1, $2) AND fecha_vencimiento >= $3 AND fecha_vencimiento <= $4
		ORDER BY fecha_vencimiento`
	return r.list(query, entity.PayablePendiente, entity.PayableParcial, desde, hasta)
}

func (r *PayableRepo) list(query string, args ...any) ([]*entity.PayableAccount, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cuentas por pagar: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayableAccount
	for rows.Next() {
		var p entity.PayableAccount
		if err := rows.Scan(
			&p.ID, &p.Folio, &p.ProveedorID, &p.OrdenCompraID, &p.Concepto,
			&p.FechaEmision, &p.FechaVencimiento,
			&p.MontoTotal, &p.MontoPagado, &p.SaldoPendiente,
			&p.DiasCredito, &p.Estado, &p.UsuarioID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cuenta por pagar: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
