package entity

import "time"

// Roles de usuario (RBAC por string, resuelto en el middleware HTTP).
const (
	RolAdmin      = "admin"
	RolVendedor   = "vendedor"
	RolRepartidor = "repartidor"
)

// User es un usuario del sistema (vendedor, administrador o repartidor).
type User struct {
	ID           string
	Nombre       string
	Email        string
	PasswordHash string
	Rol          string
	Activo       bool
	CreatedAt    time.Time
}
