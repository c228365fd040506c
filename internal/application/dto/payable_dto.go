package dto

import "github.com/shopspring/decimal"

// CreatePayableRequest petición para registrar una cuenta por pagar.
// FechaEmision en formato 2006-01-02; si viene vacía se usa la fecha actual.
type CreatePayableRequest struct {
	ProveedorID   string          `json:"proveedor_id"`
	OrdenCompraID *string         `json:"orden_compra_id"`
	Concepto      string          `json:"concepto"`
	FechaEmision  string          `json:"fecha_emision"`
	DiasCredito   int             `json:"dias_credito"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
}

// ApplyPaymentRequest petición para aplicar un abono a una cuenta por pagar.
type ApplyPaymentRequest struct {
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	Referencia string          `json:"referencia"`
}

// PayableResponse cuenta por pagar en la respuesta.
type PayableResponse struct {
	ID               string          `json:"id"`
	Folio            string          `json:"folio"`
	ProveedorID      string          `json:"proveedor_id"`
	OrdenCompraID    *string         `json:"orden_compra_id"`
	Concepto         string          `json:"concepto"`
	FechaEmision     string          `json:"fecha_emision"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	MontoTotal       decimal.Decimal `json:"monto_total"`
	MontoPagado      decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente   decimal.Decimal `json:"saldo_pendiente"`
	DiasCredito      int             `json:"dias_credito"`
	Estado           string          `json:"estado"`
}

// PaymentResponse abono aplicado.
type PaymentResponse struct {
	ID               string          `json:"id"`
	CuentaPorPagarID string          `json:"cuenta_por_pagar_id"`
	Monto            decimal.Decimal `json:"monto"`
	MetodoPago       string          `json:"metodo_pago"`
	Referencia       string          `json:"referencia"`
	FechaPago        string          `json:"fecha_pago"`
}
