package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO proveedores (id, nombre, rfc, telefono, email, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Nombre, nullIfEmpty(supplier.RFC),
		nullIfEmpty(supplier.Telefono), nullIfEmpty(supplier.Email),
		supplier.Activo, supplier.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID busca un proveedor por id. Devuelve (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `
		SELECT id, nombre, rfc, telefono, email, activo, created_at
		FROM proveedores WHERE id = $1`
	var s entity.Supplier
	var rfc, telefono, email *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Nombre, &rfc, &telefono, &email, &s.Activo, &s.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	if rfc != nil {
		s.RFC = *rfc
	}
	if telefono != nil {
		s.Telefono = *telefono
	}
	if email != nil {
		s.Email = *email
	}
	return &s, nil
}

// List lista proveedores, opcionalmente solo los activos.
func (r *SupplierRepo) List(soloActivos bool, limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT id, nombre, rfc, telefono, email, activo, created_at FROM proveedores`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		var rfc, telefono, email *string
		if err := rows.Scan(&s.ID, &s.Nombre, &rfc, &telefono, &email, &s.Activo, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		if rfc != nil {
			s.RFC = *rfc
		}
		if telefono != nil {
			s.Telefono = *telefono
		}
		if email != nil {
			s.Email = *email
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
