package entity

import "time"

// Customer es un cliente registrado; las ventas de mostrador pueden no tener cliente.
type Customer struct {
	ID        string
	Nombre    string
	Telefono  string
	Email     string
	Direccion string
	CreatedAt time.Time
}
