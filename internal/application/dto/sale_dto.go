package dto

import "github.com/shopspring/decimal"

// SaleLineRequest línea de venta enviada por el cliente.
type SaleLineRequest struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// ShipmentRequest datos del envío a domicilio (opcional al crear la venta).
type ShipmentRequest struct {
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Notas     string `json:"notas"`
}

// CreateSaleRequest petición para crear una venta.
// Subtotal y Total se verifican contra lo recalculado de las líneas.
type CreateSaleRequest struct {
	ClienteID  *string           `json:"cliente_id"`
	MetodoPago string            `json:"metodo_pago"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	IVA        decimal.Decimal   `json:"iva"`
	Total      decimal.Decimal   `json:"total"`
	Lines      []SaleLineRequest `json:"lineas"`
	Envio      *ShipmentRequest  `json:"envio"`
}

// StockWarningDTO advertencia de stock insuficiente en una línea (no bloquea la venta).
type StockWarningDTO struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	Solicitado  int    `json:"solicitado"`
	Faltante    int    `json:"faltante"`
}

// SaleLineResponse línea de venta en la respuesta.
type SaleLineResponse struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ShipmentResponse envío creado junto con la venta.
type ShipmentResponse struct {
	ID           string  `json:"id"`
	RepartidorID *string `json:"repartidor_id"`
	Direccion    string  `json:"direccion"`
	Estado       string  `json:"estado"`
}

// SaleResponse venta creada o consultada.
type SaleResponse struct {
	ID         string             `json:"id"`
	Folio      string             `json:"folio"`
	UsuarioID  string             `json:"usuario_id"`
	ClienteID  *string            `json:"cliente_id"`
	FechaVenta string             `json:"fecha_venta"`
	MetodoPago string             `json:"metodo_pago"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	IVA        decimal.Decimal    `json:"iva"`
	Total      decimal.Decimal    `json:"total"`
	Estado     string             `json:"estado"`
	EsEnvio    bool               `json:"es_envio"`
	Lineas     []SaleLineResponse `json:"lineas"`
}

// CreateSaleResponse resultado de crear una venta: la venta, sus advertencias
// de stock (lista vacía = venta limpia) y el envío si se solicitó.
type CreateSaleResponse struct {
	Venta        SaleResponse      `json:"venta"`
	Advertencias []StockWarningDTO `json:"advertencias"`
	Envio        *ShipmentResponse `json:"envio,omitempty"`
}
