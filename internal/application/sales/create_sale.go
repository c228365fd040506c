package sales

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/application/inventory"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/folio"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// Motivos registrados en inventory_movements por el coordinador de ventas.
const (
	MotivoVenta       = "venta"
	MotivoCancelacion = "cancelación de venta"
)

// Tolerancia de redondeo al verificar los totales enviados por el caller.
var totalsEpsilon = decimal.NewFromFloat(0.01)

// CreateSaleUseCase coordina la creación y cancelación de ventas: folio
// consecutivo, descuento de stock por línea, advertencias de stock
// insuficiente y envío a domicilio opcional, todo en una transacción.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	inventoryUC  StockAdjuster
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
}

// NewCreateSaleUseCase construye el coordinador de ventas.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	inventoryUC StockAdjuster,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		inventoryUC:  inventoryUC,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

// CreateSale crea la venta con sus líneas y el descuento de stock en un solo
// commit. El stock insuficiente no bloquea: se devuelve la lista de
// advertencias y se emite una notificación de prioridad alta por cada línea
// con faltante. Los totales del caller se verifican contra lo recalculado.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, usuarioID string, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if usuarioID == "" || in.MetodoPago == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductoID == "" || line.Cantidad <= 0 || line.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Envio != nil && in.Envio.Direccion == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.IVA.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Recalcular totales y verificar contra lo enviado (tolerancia de redondeo).
	// No se confía en el subtotal/total del caller.
	subtotal := decimal.Zero
	for _, line := range in.Lines {
		subtotal = subtotal.Add(line.PrecioUnitario.Mul(decimal.NewFromInt(int64(line.Cantidad))))
	}
	total := subtotal.Add(in.IVA)
	if subtotal.Sub(in.Subtotal).Abs().GreaterThan(totalsEpsilon) ||
		total.Sub(in.Total).Abs().GreaterThan(totalsEpsilon) {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente si la venta lo referencia (venta de mostrador = sin cliente)
	if in.ClienteID != nil && *in.ClienteID != "" {
		customer, err := uc.customerRepo.GetByID(*in.ClienteID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Selección de repartidor para el envío: uniforme al azar entre los
	// repartidores activos. Puede no haber ninguno; el envío queda sin asignar.
	var repartidorID *string
	if in.Envio != nil {
		couriers, err := uc.userRepo.ListActiveByRol(entity.RolRepartidor)
		if err != nil {
			return nil, err
		}
		if len(couriers) > 0 {
			id := couriers[rand.Intn(len(couriers))].ID
			repartidorID = &id
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		UsuarioID:  usuarioID,
		ClienteID:  in.ClienteID,
		FechaVenta: now,
		MetodoPago: in.MetodoPago,
		Subtotal:   subtotal,
		IVA:        in.IVA,
		Total:      total,
		Estado:     entity.SaleCompletada,
		EsEnvio:    in.Envio != nil,
	}
	var warnings []dto.StockWarningDTO
	var shipment *entity.Shipment

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		folioRepo repository.FolioRepository,
		notifRepo repository.NotificationRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		// 1) Leer (y bloquear) cada producto; detectar faltantes sin rechazar.
		type lineaConAviso struct {
			linea  dto.SaleLineRequest
			aviso  *dto.StockWarningDTO
			nombre string
		}
		lineas := make([]lineaConAviso, 0, len(in.Lines))
		for _, line := range in.Lines {
			product, err := productRepo.GetForUpdate(line.ProductoID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			lc := lineaConAviso{linea: line, nombre: product.Nombre}
			if product.StockActual < line.Cantidad {
				lc.aviso = &dto.StockWarningDTO{
					ProductoID:  product.ID,
					Nombre:      product.Nombre,
					StockActual: product.StockActual,
					Solicitado:  line.Cantidad,
					Faltante:    line.Cantidad - product.StockActual,
				}
			}
			lineas = append(lineas, lc)
		}

		// 2) Folio consecutivo VTA-NNNNNN (contador atómico por prefijo)
		f, err := folioRepo.Next(folio.PrefijoVenta)
		if err != nil {
			return err
		}
		sale.Folio = f

		// 3) Cabecera en estado completada
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// 4) Líneas + salida de stock + notificación por faltante
		for _, lc := range lineas {
			line := &entity.SaleLine{
				ID:             uuid.New().String(),
				VentaID:        sale.ID,
				ProductoID:     lc.linea.ProductoID,
				Cantidad:       lc.linea.Cantidad,
				PrecioUnitario: lc.linea.PrecioUnitario,
				Subtotal:       lc.linea.PrecioUnitario.Mul(decimal.NewFromInt(int64(lc.linea.Cantidad))),
			}
			if err := saleRepo.CreateLine(line); err != nil {
				return err
			}
			sale.Lines = append(sale.Lines, *line)

			if _, err := uc.inventoryUC.AdjustInTx(movRepo, productRepo, inventory.AdjustInput{
				ProductoID: lc.linea.ProductoID,
				Delta:      -lc.linea.Cantidad,
				Motivo:     MotivoVenta,
				UsuarioID:  usuarioID,
				Referencia: sale.Folio,
			}, now); err != nil {
				return err
			}

			if lc.aviso != nil {
				warnings = append(warnings, *lc.aviso)
				notif := &entity.Notification{
					ID:         uuid.New().String(),
					Tipo:       entity.NotifStockInsuficiente,
					Prioridad:  entity.PrioridadAlta,
					Titulo:     "Venta con stock insuficiente",
					Mensaje:    "Producto " + lc.nombre + " vendido con faltante en la venta " + sale.Folio,
					Referencia: sale.Folio,
					CreatedAt:  now,
				}
				if err := notifRepo.Create(notif); err != nil {
					return err
				}
			}
		}

		// 5) Envío a domicilio opcional
		if in.Envio != nil {
			shipment = &entity.Shipment{
				ID:           uuid.New().String(),
				VentaID:      sale.ID,
				RepartidorID: repartidorID,
				Direccion:    in.Envio.Direccion,
				Telefono:     in.Envio.Telefono,
				Notas:        in.Envio.Notas,
				Estado:       entity.ShipmentPendiente,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := shipmentRepo.Create(shipment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CreateSaleResponse{
		Venta:        toSaleResponse(sale),
		Advertencias: warnings,
	}
	if resp.Advertencias == nil {
		resp.Advertencias = []dto.StockWarningDTO{}
	}
	if shipment != nil {
		resp.Envio = &dto.ShipmentResponse{
			ID:           shipment.ID,
			RepartidorID: shipment.RepartidorID,
			Direccion:    shipment.Direccion,
			Estado:       shipment.Estado,
		}
	}
	return resp, nil
}

// GetSale obtiene una venta por ID con sus líneas.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		sale.Lines = append(sale.Lines, *l)
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

// ListSales lista ventas en un rango de fechas.
func (uc *CreateSaleUseCase) ListSales(ctx context.Context, from, to *time.Time, limit, offset int) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:         sale.ID,
		Folio:      sale.Folio,
		UsuarioID:  sale.UsuarioID,
		ClienteID:  sale.ClienteID,
		FechaVenta: sale.FechaVenta.Format(time.RFC3339),
		MetodoPago: sale.MetodoPago,
		Subtotal:   sale.Subtotal,
		IVA:        sale.IVA,
		Total:      sale.Total,
		Estado:     sale.Estado,
		EsEnvio:    sale.EsEnvio,
		Lineas:     make([]dto.SaleLineResponse, 0, len(sale.Lines)),
	}
	for _, l := range sale.Lines {
		resp.Lineas = append(resp.Lineas, dto.SaleLineResponse{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal,
		})
	}
	return resp
}
