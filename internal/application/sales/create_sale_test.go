package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/application/inventory"
	"github.com/marlonji2360/pos-venta/internal/application/sales"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/folio"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product
	movements []*entity.InventoryMovement
	sales     map[string]*entity.Sale
	lines     []*entity.SaleLine
	notifs    []*entity.Notification
	shipments []*entity.Shipment
	couriers  []*entity.User
	customers map[string]*entity.Customer
	folios    map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  map[string]*entity.Product{},
		sales:     map[string]*entity.Sale{},
		customers: map[string]*entity.Customer{},
		folios:    map[string]int64{},
	}
}

// ── product repo ──

type storeProductRepo struct{ s *fakeStore }

func (r storeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r storeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r storeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r storeProductRepo) UpdateStock(id string, stock int) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockActual = stock
	return nil
}
func (r storeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r storeProductRepo) List(bool, int, int) ([]*entity.Product, error) { return nil, nil }

// ── movement repo ──

type storeMovementRepo struct{ s *fakeStore }

func (r storeMovementRepo) Create(m *entity.InventoryMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r storeMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r storeMovementRepo) ListByReferencia(referencia string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.Referencia == referencia {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── sale repo ──

type storeSaleRepo struct{ s *fakeStore }

func (r storeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	cp.Lines = nil
	r.s.sales[sale.ID] = &cp
	return nil
}
func (r storeSaleRepo) CreateLine(line *entity.SaleLine) error {
	r.s.lines = append(r.s.lines, line)
	return nil
}
func (r storeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}
func (r storeSaleRepo) GetForUpdate(id string) (*entity.Sale, error) { return r.GetByID(id) }
func (r storeSaleRepo) GetLines(ventaID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	for _, l := range r.s.lines {
		if l.VentaID == ventaID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r storeSaleRepo) UpdateEstado(id, estado string) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Estado = estado
	return nil
}
func (r storeSaleRepo) List(*time.Time, *time.Time, int, int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		out = append(out, s)
	}
	return out, nil
}

// ── folio repo ──

type storeFolioRepo struct{ s *fakeStore }

func (r storeFolioRepo) Next(prefijo string) (string, error) {
	r.s.folios[prefijo]++
	return folio.Format(prefijo, r.s.folios[prefijo]), nil
}

// ── notification repo ──

type storeNotifRepo struct{ s *fakeStore }

func (r storeNotifRepo) Create(n *entity.Notification) error {
	r.s.notifs = append(r.s.notifs, n)
	return nil
}
func (r storeNotifRepo) ExistsForDay(tipo, referencia string, dia time.Time) (bool, error) {
	for _, n := range r.s.notifs {
		if n.Tipo == tipo && n.Referencia == referencia &&
			n.CreatedAt.Year() == dia.Year() && n.CreatedAt.YearDay() == dia.YearDay() {
			return true, nil
		}
	}
	return false, nil
}
func (r storeNotifRepo) List(bool, int, int) ([]*entity.Notification, error) { return r.s.notifs, nil }
func (r storeNotifRepo) MarkRead(string) error                               { return nil }

// ── shipment repo ──

type storeShipmentRepo struct{ s *fakeStore }

func (r storeShipmentRepo) Create(sh *entity.Shipment) error {
	r.s.shipments = append(r.s.shipments, sh)
	return nil
}
func (r storeShipmentRepo) GetByVentaID(ventaID string) (*entity.Shipment, error) {
	for _, sh := range r.s.shipments {
		if sh.VentaID == ventaID {
			return sh, nil
		}
	}
	return nil, nil
}
func (r storeShipmentRepo) UpdateEstado(string, string) error { return nil }

// ── customer / user repos ──

type storeCustomerRepo struct{ s *fakeStore }

func (r storeCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }
func (r storeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r storeCustomerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }

type storeUserRepo struct{ s *fakeStore }

func (r storeUserRepo) Create(*entity.User) error                 { return nil }
func (r storeUserRepo) GetByID(string) (*entity.User, error)      { return nil, nil }
func (r storeUserRepo) GetByEmail(string) (*entity.User, error)   { return nil, nil }
func (r storeUserRepo) ListActiveByRol(rol string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.couriers {
		if u.Rol == rol && u.Activo {
			out = append(out, u)
		}
	}
	return out, nil
}

// ── tx runner ──

// storeTxRunner pasa los repos del store a fn; ante error restaura stocks y
// longitudes previas, imitando el rollback real.
type storeTxRunner struct{ s *fakeStore }

func (tx storeTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	folioRepo repository.FolioRepository,
	notifRepo repository.NotificationRepository,
	shipmentRepo repository.ShipmentRepository,
) error) error {
	stocks := map[string]int{}
	for id, p := range tx.s.products {
		stocks[id] = p.StockActual
	}
	nMovs, nLines, nNotifs, nShips := len(tx.s.movements), len(tx.s.lines), len(tx.s.notifs), len(tx.s.shipments)
	salesIDs := map[string]bool{}
	for id := range tx.s.sales {
		salesIDs[id] = true
	}

	err := fn(storeMovementRepo{tx.s}, storeProductRepo{tx.s}, storeSaleRepo{tx.s},
		storeFolioRepo{tx.s}, storeNotifRepo{tx.s}, storeShipmentRepo{tx.s})
	if err != nil {
		for id, stock := range stocks {
			tx.s.products[id].StockActual = stock
		}
		tx.s.movements = tx.s.movements[:nMovs]
		tx.s.lines = tx.s.lines[:nLines]
		tx.s.notifs = tx.s.notifs[:nNotifs]
		tx.s.shipments = tx.s.shipments[:nShips]
		for id := range tx.s.sales {
			if !salesIDs[id] {
				delete(tx.s.sales, id)
			}
		}
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func newSaleFixture(t *testing.T) (*sales.CreateSaleUseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore()
	s.products["p1"] = &entity.Product{ID: "p1", Nombre: "Café molido", StockActual: 10, PrecioVenta: decimal.NewFromInt(50), Activo: true}
	s.products["p2"] = &entity.Product{ID: "p2", Nombre: "Azúcar 1kg", StockActual: 2, PrecioVenta: decimal.NewFromInt(30), Activo: true}

	inventoryUC := inventory.NewStockAdjustmentUseCase(nil) // AdjustInTx no usa el runner
	uc := sales.NewCreateSaleUseCase(storeTxRunner{s}, inventoryUC, storeSaleRepo{s}, storeCustomerRepo{s}, storeUserRepo{s})
	return uc, s
}

func lineReq(productoID string, cantidad int, precio int64) dto.SaleLineRequest {
	return dto.SaleLineRequest{
		ProductoID:     productoID,
		Cantidad:       cantidad,
		PrecioUnitario: decimal.NewFromInt(precio),
	}
}

func saleReq(lines ...dto.SaleLineRequest) dto.CreateSaleRequest {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad))))
	}
	iva := subtotal.Mul(decimal.NewFromFloat(0.16)).Round(2)
	return dto.CreateSaleRequest{
		MetodoPago: entity.PagoEfectivo,
		Subtotal:   subtotal,
		IVA:        iva,
		Total:      subtotal.Add(iva),
		Lines:      lines,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

// Venta simple: descuenta stock, deja un movimiento de salida por línea con el
// folio como referencia y no genera advertencias.
func TestCreateSale_DescuentaStockYRegistraMovimientos(t *testing.T) {
	uc, s := newSaleFixture(t)

	resp, err := uc.CreateSale(context.Background(), "u1", saleReq(lineReq("p1", 3, 50)))
	require.NoError(t, err)

	assert.Equal(t, "VTA-000001", resp.Venta.Folio)
	assert.Equal(t, entity.SaleCompletada, resp.Venta.Estado)
	assert.Empty(t, resp.Advertencias, "con stock suficiente no hay advertencias")
	assert.Equal(t, 7, s.products["p1"].StockActual)

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementSalida, mov.Tipo)
	assert.Equal(t, 3, mov.Cantidad)
	assert.Equal(t, sales.MotivoVenta, mov.Motivo)
	assert.Equal(t, "VTA-000001", mov.Referencia, "el movimiento referencia el folio de la venta")
}

// Escenario de sobreventa: vender más de lo disponible NO bloquea; la venta se
// completa, el stock queda negativo y se devuelve la advertencia con el
// faltante exacto, más una notificación de prioridad alta.
func TestCreateSale_SobreventaGeneraAdvertenciaYStockNegativo(t *testing.T) {
	uc, s := newSaleFixture(t)

	resp, err := uc.CreateSale(context.Background(), "u1", saleReq(lineReq("p2", 5, 30)))
	require.NoError(t, err, "la sobreventa no debe rechazarse")

	assert.Equal(t, -3, s.products["p2"].StockActual)
	require.Len(t, resp.Advertencias, 1)
	w := resp.Advertencias[0]
	assert.Equal(t, "p2", w.ProductoID)
	assert.Equal(t, 2, w.StockActual)
	assert.Equal(t, 5, w.Solicitado)
	assert.Equal(t, 3, w.Faltante)

	require.Len(t, s.notifs, 1)
	assert.Equal(t, entity.NotifStockInsuficiente, s.notifs[0].Tipo)
	assert.Equal(t, entity.PrioridadAlta, s.notifs[0].Prioridad)
}

// Los totales enviados se verifican contra lo recalculado de las líneas.
func TestCreateSale_TotalesInconsistentesRechazados(t *testing.T) {
	uc, s := newSaleFixture(t)

	req := saleReq(lineReq("p1", 2, 50))
	req.Total = req.Total.Add(decimal.NewFromInt(10)) // total manipulado

	_, err := uc.CreateSale(context.Background(), "u1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, s.products["p1"].StockActual, "una venta rechazada no toca el stock")
	assert.Empty(t, s.movements)
}

// Una diferencia de redondeo dentro de la tolerancia no rechaza la venta.
func TestCreateSale_ToleranciaDeRedondeo(t *testing.T) {
	uc, _ := newSaleFixture(t)

	req := saleReq(lineReq("p1", 2, 50))
	req.Subtotal = req.Subtotal.Add(decimal.NewFromFloat(0.01))
	req.Total = req.Total.Add(decimal.NewFromFloat(0.01))

	_, err := uc.CreateSale(context.Background(), "u1", req)
	assert.NoError(t, err)
}

// Producto inexistente a mitad de la venta: todo se revierte, ninguna línea
// previa queda escrita.
func TestCreateSale_ProductoInexistenteRevierteTodo(t *testing.T) {
	uc, s := newSaleFixture(t)

	req := saleReq(lineReq("p1", 2, 50), lineReq("fantasma", 1, 10))
	_, err := uc.CreateSale(context.Background(), "u1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 10, s.products["p1"].StockActual, "el descuento de la primera línea debe revertirse")
	assert.Empty(t, s.movements)
	assert.Empty(t, s.lines)
	assert.Empty(t, s.sales)
}

func TestCreateSale_ValidacionesBasicas(t *testing.T) {
	uc, _ := newSaleFixture(t)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, "u1", dto.CreateSaleRequest{MetodoPago: entity.PagoEfectivo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	req := saleReq(lineReq("p1", 0, 50))
	_, err = uc.CreateSale(ctx, "u1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	req = saleReq(lineReq("p1", 1, 50))
	req.Envio = &dto.ShipmentRequest{Direccion: ""}
	_, err = uc.CreateSale(ctx, "u1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "envío sin dirección")

	req = saleReq(lineReq("p1", 1, 50))
	req.ClienteID = strPtr("cliente-fantasma")
	_, err = uc.CreateSale(ctx, "u1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")
}

// Folios consecutivos por orden de creación.
func TestCreateSale_FoliosConsecutivos(t *testing.T) {
	uc, _ := newSaleFixture(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		resp, err := uc.CreateSale(ctx, "u1", saleReq(lineReq("p1", 1, 50)))
		require.NoError(t, err)
		n, err := folio.Sequence(resp.Venta.Folio)
		require.NoError(t, err)
		assert.Equal(t, prev+1, n, "los folios deben ser consecutivos sin huecos")
		prev = n
	}
}

// Venta con envío: se crea el registro de envío en pendiente y se asigna un
// repartidor activo al azar.
func TestCreateSale_EnvioConRepartidorAsignado(t *testing.T) {
	uc, s := newSaleFixture(t)
	s.couriers = []*entity.User{
		{ID: "r1", Rol: entity.RolRepartidor, Activo: true},
		{ID: "r2", Rol: entity.RolRepartidor, Activo: true},
	}

	req := saleReq(lineReq("p1", 1, 50))
	req.Envio = &dto.ShipmentRequest{Direccion: "Av. Juárez 10", Telefono: "5512345678"}

	resp, err := uc.CreateSale(context.Background(), "u1", req)
	require.NoError(t, err)
	require.NotNil(t, resp.Envio)
	assert.Equal(t, entity.ShipmentPendiente, resp.Envio.Estado)
	require.NotNil(t, resp.Envio.RepartidorID)
	assert.Contains(t, []string{"r1", "r2"}, *resp.Envio.RepartidorID)
	require.Len(t, s.shipments, 1)
}

// Sin repartidores activos el envío se crea igualmente, sin asignar.
func TestCreateSale_EnvioSinRepartidoresQuedaSinAsignar(t *testing.T) {
	uc, s := newSaleFixture(t)
	s.couriers = []*entity.User{{ID: "r1", Rol: entity.RolRepartidor, Activo: false}}

	req := saleReq(lineReq("p1", 1, 50))
	req.Envio = &dto.ShipmentRequest{Direccion: "Av. Juárez 10"}

	resp, err := uc.CreateSale(context.Background(), "u1", req)
	require.NoError(t, err)
	require.NotNil(t, resp.Envio)
	assert.Nil(t, resp.Envio.RepartidorID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

// La cancelación es el inverso exacto de la creación: el stock vuelve a su
// valor original y queda un movimiento de entrada por línea con el folio como
// referencia.
func TestCancelSale_RestauraStock(t *testing.T) {
	uc, s := newSaleFixture(t)
	ctx := context.Background()

	resp, err := uc.CreateSale(ctx, "u1", saleReq(lineReq("p1", 4, 50), lineReq("p2", 1, 30)))
	require.NoError(t, err)
	assert.Equal(t, 6, s.products["p1"].StockActual)
	assert.Equal(t, 1, s.products["p2"].StockActual)

	require.NoError(t, uc.CancelSale(ctx, resp.Venta.ID, "admin1"))

	assert.Equal(t, 10, s.products["p1"].StockActual, "el stock debe volver al valor previo a la venta")
	assert.Equal(t, 2, s.products["p2"].StockActual)
	assert.Equal(t, entity.SaleCancelada, s.sales[resp.Venta.ID].Estado)

	// 2 salidas de la venta + 2 entradas de la cancelación, misma referencia
	movs, _ := storeMovementRepo{s}.ListByReferencia(resp.Venta.Folio)
	require.Len(t, movs, 4)
	entradas := 0
	for _, m := range movs {
		if m.Tipo == entity.MovementEntrada {
			entradas++
			assert.Equal(t, sales.MotivoCancelacion, m.Motivo)
		}
	}
	assert.Equal(t, 2, entradas)
}

// Cancelar dos veces falla con conflicto y no duplica la devolución de stock.
func TestCancelSale_DobleCancelacionConflicto(t *testing.T) {
	uc, s := newSaleFixture(t)
	ctx := context.Background()

	resp, err := uc.CreateSale(ctx, "u1", saleReq(lineReq("p1", 4, 50)))
	require.NoError(t, err)
	require.NoError(t, uc.CancelSale(ctx, resp.Venta.ID, "admin1"))

	err = uc.CancelSale(ctx, resp.Venta.ID, "admin1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 10, s.products["p1"].StockActual, "el stock no debe devolverse dos veces")
}

func TestCancelSale_VentaInexistente(t *testing.T) {
	uc, _ := newSaleFixture(t)
	err := uc.CancelSale(context.Background(), "no-existe", "admin1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func strPtr(s string) *string { return &s }
