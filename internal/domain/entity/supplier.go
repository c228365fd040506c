package entity

import "time"

// Supplier es un proveedor al que se le deben cuentas por pagar.
type Supplier struct {
	ID        string
	Nombre    string
	RFC       string
	Telefono  string
	Email     string
	Activo    bool
	CreatedAt time.Time
}
