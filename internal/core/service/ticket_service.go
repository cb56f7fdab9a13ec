package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rl1809/mini-pos/internal/core/domain"
	"github.com/rl1809/mini-pos/internal/port"
)

type TicketService struct {
	tickets  port.TicketRepository
	products port.ProductRepository
}

func NewTicketService(tickets port.TicketRepository, products port.ProductRepository) *TicketService {
	return &TicketService{tickets: tickets, products: products}
}

func (s *TicketService) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListTickets(ctx)
}

// Create builds a ticket from the requested lines. Every line is validated
// in order before any stock is touched; the repository then re-applies the
// stock guard per product inside the transaction that persists the ticket,
// so a failure leaves no partial state.
func (s *TicketService) Create(ctx context.Context, lines []domain.TicketLine) (*domain.Ticket, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyTicket
	}

	items := make([]domain.TicketItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}

		p, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %d: %w", line.ProductID, err)
		}
		if p == nil {
			return nil, domain.ErrProductNotFound
		}
		if p.Stock < line.Quantity {
			return nil, domain.ErrInsufficientStock
		}

		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, domain.TicketItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	ticket := &domain.Ticket{Total: total, Items: items}
	if err := s.tickets.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	return ticket, nil
}
