package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, folio, usuario_id, cliente_id, fecha_venta, metodo_pago, subtotal, iva, total, estado, es_envio`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO ventas (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Folio, sale.UsuarioID, sale.ClienteID, sale.FechaVenta,
		sale.MetodoPago, sale.Subtotal, sale.IVA, sale.Total, sale.Estado, sale.EsEnvio,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("folio de venta duplicado: %w", err)
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de detalle.
func (r *SaleRepo) CreateLine(line *entity.SaleLine) error {
	query := `
		INSERT INTO detalle_ventas (id, venta_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.VentaID, line.ProductoID, line.Cantidad, line.PrecioUnitario, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.get(`SELECT `+saleColumns+` FROM ventas WHERE id = $1`, id)
}

// GetForUpdate obtiene la cabecera y bloquea la fila (SELECT FOR UPDATE);
// evita que dos cancelaciones concurrentes devuelvan el stock dos veces.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.get(`SELECT `+saleColumns+` FROM ventas WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(query, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Folio, &s.UsuarioID, &s.ClienteID, &s.FechaVenta,
		&s.MetodoPago, &s.Subtotal, &s.IVA, &s.Total, &s.Estado, &s.EsEnvio,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &s, nil
}

// GetLines devuelve las líneas de una venta en orden de inserción.
func (r *SaleRepo) GetLines(ventaID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, subtotal
		FROM detalle_ventas WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("get detalle venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.VentaID, &l.ProductoID, &l.Cantidad, &l.PrecioUnitario, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado de la venta (completada -> cancelada).
func (r *SaleRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE ventas SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ventas en un rango de fechas, más recientes primero.
func (r *SaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM ventas WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND fecha_venta >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND fecha_venta <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha_venta DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Folio, &s.UsuarioID, &s.ClienteID, &s.FechaVenta,
			&s.MetodoPago, &s.Subtotal, &s.IVA, &s.Total, &s.Estado, &s.EsEnvio); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
