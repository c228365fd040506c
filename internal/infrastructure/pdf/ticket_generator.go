// Package pdf implementa la generación del ticket de venta en PDF.
//
// Layout de la página (formato angosto, estilo ticket de mostrador):
//
//	┌──────────────────────────────────────┐
//	│  NOMBRE DEL NEGOCIO                  │
//	│  Folio VTA-NNNNNN  │  fecha/hora     │
//	│  ──────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.U. | Sub │
//	│  ──────────────────────────────────  │
//	│  Subtotal / IVA / TOTAL              │
//	│  Método de pago + leyenda            │
//	└──────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/marlonji2360/pos-venta/internal/application/sales"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoTicketGenerator implementa sales.TicketGenerator usando Maroto v2.
type MarotoTicketGenerator struct {
	negocio string
}

// NewMarotoTicketGenerator construye el generador con el nombre del negocio
// que encabeza el ticket.
func NewMarotoTicketGenerator(negocio string) *MarotoTicketGenerator {
	return &MarotoTicketGenerator{negocio: negocio}
}

var _ sales.TicketGenerator = (*MarotoTicketGenerator)(nil)

// GenerateTicket genera el PDF del ticket y devuelve sus bytes.
func (g *MarotoTicketGenerator) GenerateTicket(
	_ context.Context,
	sale *entity.Sale,
	lines []sales.TicketLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket "+sale.Folio, true).
		WithAuthor(g.negocio, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.negocio, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	// Pie
	for _, r := range footerRows(sale) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y folio + fecha (der).
func headerRow(negocio string, sale *entity.Sale) core.Row {
	fecha := sale.FechaVenta.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(negocio, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Ticket de venta", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(sale.Folio, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de la venta.
func tableLineRows(lines []sales.TicketLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				strconv.Itoa(l.Line.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductoNombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.Line.PrecioUnitario.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+l.Line.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	return row.New(22).Add(
		col.New(5),
		col.New(4).Add(
			label("Subtotal:", 1),
			label("IVA:", 6),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 12,
			}),
		),
		col.New(3).Add(
			value("$"+sale.Subtotal.StringFixed(2), 1),
			value("$"+sale.IVA.StringFixed(2), 6),
			text.New("$"+sale.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 12,
			}),
		),
	)
}

// footerRows: método de pago, marca de cancelación y leyenda.
func footerRows(sale *entity.Sale) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Método de pago: "+sale.MetodoPago, props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		)),
	}

	if sale.Estado == entity.SaleCancelada {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("*** VENTA CANCELADA ***", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorAlert, Top: 2,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra. Conserve este ticket para cualquier aclaración.",
			props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 3},
		),
	)))

	return rows
}
