package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// StockAdjustmentUseCase aplica deltas de stock con su movimiento de auditoría
// en una sola transacción. Es el único camino por el que cambia
// productos.stock_actual: todo ajuste deja exactamente un InventoryMovement.
//
// No impone piso ni techo: el stock resultante puede quedar negativo
// (la venta nunca se bloquea por falta de stock, solo se advierte).
type StockAdjustmentUseCase struct {
	txRunner TxRunner
}

// NewStockAdjustmentUseCase construye el motor de ajuste de stock.
func NewStockAdjustmentUseCase(txRunner TxRunner) *StockAdjustmentUseCase {
	return &StockAdjustmentUseCase{txRunner: txRunner}
}

// AdjustInput entrada para un ajuste de stock.
// Delta es un entero con signo distinto de cero: positivo = entrada, negativo = salida.
type AdjustInput struct {
	ProductoID string
	Delta      int
	Motivo     string
	UsuarioID  string
	Referencia string // correlación libre: folio de venta, folio CPP, orden de compra...
}

// AdjustStock inicia una transacción, bloquea la fila del producto
// (SELECT FOR UPDATE), aplica stock_actual += delta y registra el movimiento.
// Commit o Rollback como unidad.
func (uc *StockAdjustmentUseCase) AdjustStock(ctx context.Context, input AdjustInput) (*entity.InventoryMovement, error) {
	if input.Delta == 0 || input.ProductoID == "" {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		mov, err = uc.AdjustInTx(movRepo, productRepo, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// AdjustInTx aplica el ajuste usando los repositorios del caller (misma
// transacción). Lo usan la creación y la cancelación de ventas y la recepción
// de mercancía para componer varios ajustes en un solo commit.
func (uc *StockAdjustmentUseCase) AdjustInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	input AdjustInput,
	now time.Time,
) (*entity.InventoryMovement, error) {
	if input.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Bloquea la fila del producto para serializar ajustes concurrentes
	product, err := productRepo.GetForUpdate(input.ProductoID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if err := productRepo.UpdateStock(product.ID, product.StockActual+input.Delta); err != nil {
		return nil, err
	}

	tipo := entity.MovementEntrada
	cantidad := input.Delta
	if input.Delta < 0 {
		tipo = entity.MovementSalida
		cantidad = -input.Delta
	}
	mov := &entity.InventoryMovement{
		ID:         uuid.New().String(),
		ProductoID: product.ID,
		Tipo:       tipo,
		Cantidad:   cantidad,
		Motivo:     input.Motivo,
		UsuarioID:  input.UsuarioID,
		Referencia: input.Referencia,
		CreatedAt:  now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
