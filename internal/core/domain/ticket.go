package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is a completed sale. It owns its items; total equals the sum of
// the item subtotals.
type Ticket struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Total     decimal.Decimal `json:"total"`
	Items     []TicketItem    `json:"items"`
}

// TicketItem is one line of a ticket. ProductID is an informational link;
// the unit price is captured at sale time and never re-read from the
// product, so historical tickets keep their original pricing.
type TicketItem struct {
	ID        int64           `json:"id"`
	TicketID  int64           `json:"-"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// TicketLine is one requested line of a new ticket.
type TicketLine struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}
