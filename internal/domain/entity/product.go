package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// StockActual puede quedar negativo: la venta nunca se bloquea por falta de
// stock, solo se advierte (ver sales.StockWarning). Todo cambio de StockActual
// debe ir acompañado de un InventoryMovement en la misma transacción.
type Product struct {
	ID           string
	Codigo       string // código único (código de barras o interno)
	Nombre       string
	Descripcion  string
	StockActual  int
	StockMinimo  int
	StockMaximo  int
	PrecioCompra decimal.Decimal
	PrecioVenta  decimal.Decimal
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
