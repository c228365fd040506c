package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// ShipmentHandler maneja la consulta y avance de envíos a domicilio (protegido).
type ShipmentHandler struct {
	repo repository.ShipmentRepository
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(repo repository.ShipmentRepository) *ShipmentHandler {
	return &ShipmentHandler{repo: repo}
}

// GetByVenta godoc
// @Summary      Obtener el envío de una venta
// @Tags         envios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  entity.Shipment
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/envio [get]
func (h *ShipmentHandler) GetByVenta(c *fiber.Ctx) error {
	ventaID := c.Params("id")
	if ventaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	shipment, err := h.repo.GetByVentaID(ventaID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if shipment == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la venta no tiene envío"})
	}
	return c.JSON(shipment)
}

// UpdateEstado godoc
// @Summary      Avanzar el estado de un envío
// @Tags         envios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del envío"
// @Param        body  body  map[string]string  true  "estado: pendiente | en_ruta | entregado"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/envios/{id}/estado [put]
func (h *ShipmentHandler) UpdateEstado(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in struct {
		Estado string `json:"estado"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	switch in.Estado {
	case entity.ShipmentPendiente, entity.ShipmentEnRuta, entity.ShipmentEntregado:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
	}
	if err := h.repo.UpdateEstado(id, in.Estado); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "envío no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}
