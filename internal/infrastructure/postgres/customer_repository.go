package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO clientes (id, nombre, telefono, email, direccion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Nombre, nullIfEmpty(customer.Telefono),
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Direccion), customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID busca un cliente por id. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT id, nombre, telefono, email, direccion, created_at FROM clientes WHERE id = $1`
	var c entity.Customer
	var telefono, email, direccion *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Nombre, &telefono, &email, &direccion, &c.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	if telefono != nil {
		c.Telefono = *telefono
	}
	if email != nil {
		c.Email = *email
	}
	if direccion != nil {
		c.Direccion = *direccion
	}
	return &c, nil
}

// List lista clientes ordenados por nombre.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT id, nombre, telefono, email, direccion, created_at FROM clientes ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		var telefono, email, direccion *string
		if err := rows.Scan(&c.ID, &c.Nombre, &telefono, &email, &direccion, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		if telefono != nil {
			c.Telefono = *telefono
		}
		if email != nil {
			c.Email = *email
		}
		if direccion != nil {
			c.Direccion = *direccion
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
