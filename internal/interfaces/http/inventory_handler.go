package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/application/inventory"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// InventoryHandler maneja ajustes de stock y consulta del kárdex (protegido).
type InventoryHandler struct {
	uc      *inventory.StockAdjustmentUseCase
	movRepo repository.InventoryMovementRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockAdjustmentUseCase, movRepo repository.InventoryMovementRepository) *InventoryHandler {
	return &InventoryHandler{uc: uc, movRepo: movRepo}
}

// AdjustStock godoc
// @Summary      Registrar ajuste de stock
// @Description  Delta positivo = entrada, negativo = salida. Aplica el cambio
//
//	de stock y registra el movimiento en la misma transacción.
//
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "producto_id, delta, motivo, referencia"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.AdjustStock(c.Context(), inventory.AdjustInput{
		ProductoID: in.ProductoID,
		Delta:      in.Delta,
		Motivo:     in.Motivo,
		UsuarioID:  userID,
		Referencia: in.Referencia,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id requerido y delta distinto de cero"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:         mov.ID,
		ProductoID: mov.ProductoID,
		Tipo:       mov.Tipo,
		Cantidad:   mov.Cantidad,
		Motivo:     mov.Motivo,
		UsuarioID:  mov.UsuarioID,
		Referencia: mov.Referencia,
		CreatedAt:  mov.CreatedAt.Format(time.RFC3339),
	})
}

// ListMovements godoc
// @Summary      Kárdex de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path   string  true   "ID del producto"
// @Param        desde        query  string  false  "Fecha inicial (2006-01-02)"
// @Param        hasta        query  string  false  "Fecha final (2006-01-02)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{producto_id} [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productoID := c.Params("producto_id")
	if productoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "producto_id es requerido"})
	}
	from, err := parseDateQuery(c, "desde")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde: formato esperado 2006-01-02"})
	}
	to, err := parseDateQuery(c, "hasta")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta: formato esperado 2006-01-02"})
	}
	limit, offset := pagination(c)
	movs, err := h.movRepo.ListByProduct(productoID, from, to, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:         m.ID,
			ProductoID: m.ProductoID,
			Tipo:       m.Tipo,
			Cantidad:   m.Cantidad,
			Motivo:     m.Motivo,
			UsuarioID:  m.UsuarioID,
			Referencia: m.Referencia,
			CreatedAt:  m.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}

// parseDateQuery lee un query param de fecha opcional (2006-01-02).
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
