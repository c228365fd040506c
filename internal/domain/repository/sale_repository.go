package repository

import (
	"time"

	"github.com/marlonji2360/pos-venta/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
// Las líneas pertenecen a la venta (ciclo de vida en cascada).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera para la cancelación (evita doble cancelación concurrente).
	GetForUpdate(id string) (*entity.Sale, error)
	GetLines(ventaID string) ([]*entity.SaleLine, error)
	UpdateEstado(id, estado string) error
	List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
}
