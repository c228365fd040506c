package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/application/payables"
	"github.com/marlonji2360/pos-venta/internal/domain"
)

// PayableHandler maneja las peticiones HTTP de cuentas por pagar (protegido).
type PayableHandler struct {
	uc *payables.PayableUseCase
}

// NewPayableHandler construye el handler.
func NewPayableHandler(uc *payables.PayableUseCase) *PayableHandler {
	return &PayableHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cuenta por pagar
// @Description  Genera el folio CPP-NNNNNN y calcula la fecha de vencimiento
//
//	a partir de los días de crédito.
//
// @Tags         cuentas-por-pagar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePayableRequest  true  "proveedor_id, concepto, monto_total, dias_credito"
// @Success      201   {object}  dto.PayableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar [post]
func (h *PayableHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePayableRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreatePayable(c.Context(), userID, in)
	if err != nil {
		return payableError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApplyPayment godoc
// @Summary      Aplicar abono a una cuenta por pagar
// @Description  Valida que el monto no exceda el saldo pendiente, registra el
//
//	abono y actualiza saldo y estado en una sola transacción.
//
// @Tags         cuentas-por-pagar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.ApplyPaymentRequest  true  "monto, metodo_pago, referencia"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar/{id}/abonos [post]
func (h *PayableHandler) ApplyPayment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ApplyPayment(c.Context(), userID, id, in)
	if err != nil {
		return payableError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar cuenta por pagar sin abonos
// @Tags         cuentas-por-pagar
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar/{id} [delete]
func (h *PayableHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeletePayable(c.Context(), id); err != nil {
		return payableError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cuenta eliminada"})
}

// GetByID godoc
// @Summary      Obtener cuenta por pagar por ID
// @Tags         cuentas-por-pagar
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.PayableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar/{id} [get]
func (h *PayableHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetPayable(c.Context(), id)
	if err != nil {
		return payableError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cuentas por pagar
// @Tags         cuentas-por-pagar
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "pendiente | parcial | pagada | vencida"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.PayableResponse
// @Router       /api/cuentas-por-pagar [get]
func (h *PayableHandler) List(c *fiber.Ctx) error {
	estado := c.Query("estado")
	limit, offset := pagination(c)
	out, err := h.uc.ListPayables(c.Context(), estado, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListPayments godoc
// @Summary      Listar abonos de una cuenta por pagar
// @Tags         cuentas-por-pagar
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar/{id}/abonos [get]
func (h *PayableHandler) ListPayments(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListPayments(c.Context(), id)
	if err != nil {
		return payableError(c, err)
	}
	return c.JSON(out)
}

// payableError traduce los sentinelas del dominio a respuestas HTTP.
func payableError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrInvalidAmount:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "monto inválido o mayor al saldo pendiente"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta por pagar o proveedor no encontrado"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la cuenta tiene abonos registrados"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
