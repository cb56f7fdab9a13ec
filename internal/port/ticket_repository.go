package port

import (
	"context"

	"github.com/rl1809/mini-pos/internal/core/domain"
)

type TicketRepository interface {
	// ListTickets returns every ticket with its line items populated
	ListTickets(ctx context.Context) ([]domain.Ticket, error)

	// CreateTicket persists the ticket with its items and decrements product
	// stock, all inside a single transaction
	CreateTicket(ctx context.Context, t *domain.Ticket) error
}
