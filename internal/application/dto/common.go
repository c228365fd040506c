package dto

// ErrorResponse respuesta estándar de error de la API: código estable + mensaje.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
