package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// SupplierHandler maneja el catálogo de proveedores (protegido).
type SupplierHandler struct {
	repo repository.SupplierRepository
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(repo repository.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{repo: repo}
}

// supplierRequest alta de proveedor.
type supplierRequest struct {
	Nombre   string `json:"nombre"`
	RFC      string `json:"rfc"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  supplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in supplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		RFC:       in.RFC,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Activo:    true,
		CreatedAt: time.Now(),
	}
	if err := h.repo.Create(supplier); err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el proveedor ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": supplier.ID})
}

// List godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        activos  query  bool  false  "Solo proveedores activos"
// @Param        limit    query  int   false  "Límite"   default(20)
// @Param        offset   query  int   false  "Offset"   default(0)
// @Success      200      {array}  entity.Supplier
// @Router       /api/proveedores [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	soloActivos := c.QueryBool("activos", false)
	limit, offset := pagination(c)
	list, err := h.repo.List(soloActivos, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
