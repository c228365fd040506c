package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, codigo, nombre, descripcion, stock_actual, stock_minimo, stock_maximo, precio_compra, precio_venta, activo, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Codigo, product.Nombre, product.Descripcion,
		product.StockActual, product.StockMinimo, product.StockMaximo,
		product.PrecioCompra, product.PrecioVenta, product.Activo,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.get(`SELECT `+productColumns+` FROM productos WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE) para
// serializar los ajustes de stock dentro de la transacción activa.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.get(`SELECT `+productColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(query, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion,
		&p.StockActual, &p.StockMinimo, &p.StockMaximo,
		&p.PrecioCompra, &p.PrecioVenta, &p.Activo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// UpdateStock persiste el nuevo stock actual. Solo lo llama el motor de
// ajustes, siempre dentro de la transacción que también inserta el movimiento.
func (r *ProductRepo) UpdateStock(id string, stockActual int) error {
	query := `UPDATE productos SET stock_actual = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stockActual)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza los datos de catálogo del producto (no el stock actual).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE productos
		SET nombre = $2, descripcion = $3, stock_minimo = $4, stock_maximo = $5,
		    precio_compra = $6, precio_venta = $7, activo = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Nombre, product.Descripcion,
		product.StockMinimo, product.StockMaximo,
		product.PrecioCompra, product.PrecioVenta, product.Activo, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos ordenados por nombre.
func (r *ProductRepo) List(soloActivos bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion,
			&p.StockActual, &p.StockMinimo, &p.StockMaximo,
			&p.PrecioCompra, &p.PrecioVenta, &p.Activo,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
