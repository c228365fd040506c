package entity

import "time"

// Tipos de notificación emitidos por los coordinadores.
const (
	NotifStockInsuficiente = "stock_insuficiente"
	NotifCuentaVencida     = "cuenta_vencida"
	NotifCuentaPorVencer   = "cuenta_por_vencer"
)

// Prioridades de notificación.
const (
	PrioridadAlta  = "alta"
	PrioridadMedia = "media"
	PrioridadBaja  = "baja"
)

// Notification es un aviso insert-only para el panel administrativo.
type Notification struct {
	ID         string
	Tipo       string
	Prioridad  string
	Titulo     string
	Mensaje    string
	Referencia string // id o folio del recurso que la originó
	Leida      bool
	CreatedAt  time.Time
}
