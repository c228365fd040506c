package repository

import "github.com/marlonji2360/pos-venta/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// ListActiveByRol devuelve los usuarios activos con el rol dado
	// (usado para la asignación aleatoria de repartidor en envíos).
	ListActiveByRol(rol string) ([]*entity.User, error)
}
