package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock actual solo cambia
// a través del motor de movimientos, nunca por el update de catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto nuevo con su stock inicial.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PrecioCompra.IsNegative() || in.PrecioVenta.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Codigo:       in.Codigo,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		StockActual:  in.StockActual,
		StockMinimo:  in.StockMinimo,
		StockMaximo:  in.StockMaximo,
		PrecioCompra: in.PrecioCompra,
		PrecioVenta:  in.PrecioVenta,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Update actualiza los datos de catálogo (no el stock actual).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != "" {
		product.Nombre = in.Nombre
	}
	product.Descripcion = in.Descripcion
	product.StockMinimo = in.StockMinimo
	product.StockMaximo = in.StockMaximo
	if !in.PrecioCompra.IsNegative() {
		product.PrecioCompra = in.PrecioCompra
	}
	if !in.PrecioVenta.IsNegative() {
		product.PrecioVenta = in.PrecioVenta
	}
	if in.Activo != nil {
		product.Activo = *in.Activo
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// List lista productos, opcionalmente solo los activos.
func (uc *ProductUseCase) List(soloActivos bool, limit, offset int) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(soloActivos, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Codigo:       p.Codigo,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		StockActual:  p.StockActual,
		StockMinimo:  p.StockMinimo,
		StockMaximo:  p.StockMaximo,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		Activo:       p.Activo,
	}
}
