package repository

import "github.com/marlonji2360/pos-venta/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(soloActivos bool, limit, offset int) ([]*entity.Supplier, error)
}
