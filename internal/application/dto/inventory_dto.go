package dto

// AdjustStockRequest petición para registrar un ajuste manual o una recepción
// de mercancía. Delta positivo = entrada, negativo = salida.
type AdjustStockRequest struct {
	ProductoID string `json:"producto_id"`
	Delta      int    `json:"delta"`
	Motivo     string `json:"motivo"`
	Referencia string `json:"referencia"`
}

// MovementResponse movimiento de inventario en la respuesta.
type MovementResponse struct {
	ID         string `json:"id"`
	ProductoID string `json:"producto_id"`
	Tipo       string `json:"tipo"`
	Cantidad   int    `json:"cantidad"`
	Motivo     string `json:"motivo"`
	UsuarioID  string `json:"usuario_id"`
	Referencia string `json:"referencia"`
	CreatedAt  string `json:"created_at"`
}
