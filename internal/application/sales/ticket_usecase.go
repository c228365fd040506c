package sales

import (
	"context"
	"fmt"

	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

// TicketUseCase genera el ticket PDF de una venta para impresión o reenvío.
type TicketUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	generator   TicketGenerator
}

// NewTicketUseCase construye el caso de uso del ticket.
func NewTicketUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	generator TicketGenerator,
) *TicketUseCase {
	return &TicketUseCase{saleRepo: saleRepo, productRepo: productRepo, generator: generator}
}

// DownloadTicket carga la venta con sus líneas, resuelve los nombres de
// producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe.
func (uc *TicketUseCase) DownloadTicket(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("ticket: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	lines, err := uc.saleRepo.GetLines(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("ticket: obtener líneas: %w", err)
	}

	ticketLines := make([]TicketLine, 0, len(lines))
	for _, line := range lines {
		nombre := line.ProductoID
		if product, err := uc.productRepo.GetByID(line.ProductoID); err == nil && product != nil {
			nombre = product.Nombre
		}
		ticketLines = append(ticketLines, TicketLine{Line: line, ProductoNombre: nombre})
	}

	pdfBytes, err = uc.generator.GenerateTicket(ctx, sale, ticketLines)
	if err != nil {
		return nil, "", fmt.Errorf("ticket: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("ticket_%s.pdf", sale.Folio), nil
}
