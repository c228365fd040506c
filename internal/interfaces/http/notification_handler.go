package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// NotificationHandler maneja la consulta del buzón de notificaciones (protegido).
type NotificationHandler struct {
	repo repository.NotificationRepository
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(repo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

// notificationDTO notificación en la respuesta.
type notificationDTO struct {
	ID         string `json:"id"`
	Tipo       string `json:"tipo"`
	Prioridad  string `json:"prioridad"`
	Titulo     string `json:"titulo"`
	Mensaje    string `json:"mensaje"`
	Referencia string `json:"referencia"`
	Leida      bool   `json:"leida"`
	CreatedAt  string `json:"created_at"`
}

// List godoc
// @Summary      Listar notificaciones
// @Tags         notificaciones
// @Security     Bearer
// @Produce      json
// @Param        no_leidas  query  bool  false  "Solo no leídas"
// @Param        limit      query  int   false  "Límite"   default(20)
// @Param        offset     query  int   false  "Offset"   default(0)
// @Success      200        {array}  notificationDTO
// @Router       /api/notificaciones [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	soloNoLeidas := c.QueryBool("no_leidas", false)
	limit, offset := pagination(c)
	list, err := h.repo.List(soloNoLeidas, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]notificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, notificationDTO{
			ID:         n.ID,
			Tipo:       n.Tipo,
			Prioridad:  n.Prioridad,
			Titulo:     n.Titulo,
			Mensaje:    n.Mensaje,
			Referencia: n.Referencia,
			Leida:      n.Leida,
			CreatedAt:  n.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notificaciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la notificación"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notificaciones/{id}/leer [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.repo.MarkRead(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "notificación leída"})
}
