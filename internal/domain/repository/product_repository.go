package repository

import "github.com/marlonji2360/pos-venta/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar los ajustes de stock dentro de la transacción activa.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(id string, stockActual int) error
	Update(product *entity.Product) error
	List(soloActivos bool, limit, offset int) ([]*entity.Product, error)
}
