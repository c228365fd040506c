package dto

import "github.com/shopspring/decimal"

// CreateProductRequest petición para crear un producto.
type CreateProductRequest struct {
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	StockActual  int             `json:"stock_actual"`
	StockMinimo  int             `json:"stock_minimo"`
	StockMaximo  int             `json:"stock_maximo"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}

// UpdateProductRequest petición para actualizar un producto.
// No toca stock_actual: el stock solo cambia vía movimientos.
type UpdateProductRequest struct {
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	StockMinimo  int             `json:"stock_minimo"`
	StockMaximo  int             `json:"stock_maximo"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Activo       *bool           `json:"activo"`
}

// ProductResponse producto en la respuesta.
type ProductResponse struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	StockActual  int             `json:"stock_actual"`
	StockMinimo  int             `json:"stock_minimo"`
	StockMaximo  int             `json:"stock_maximo"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Activo       bool            `json:"activo"`
}
