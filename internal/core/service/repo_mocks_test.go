package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rl1809/mini-pos/internal/core/domain"
)

// Mock ProductRepository
type mockProductRepo struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	nextID   int64
}

func newMockProductRepo(products ...domain.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[int64]domain.Product)}
	for _, p := range products {
		if p.ID > m.nextID {
			m.nextID = p.ID
		}
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProductRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockProductRepo) SearchProducts(ctx context.Context, q string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Product, 0)
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProductRepo) SaveProduct(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	}
	m.products[p.ID] = *p
	return nil
}

func (m *mockProductRepo) CountProducts(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.products)), nil
}

func (m *mockProductRepo) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decrementLocked(productID, quantity)
}

func (m *mockProductRepo) decrementLocked(productID int64, quantity int) error {
	p, ok := m.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock < quantity {
		return domain.ErrInsufficientStock
	}
	p.Stock -= quantity
	m.products[productID] = p
	return nil
}

func (m *mockProductRepo) stock(productID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[productID].Stock
}

// Mock TicketRepository. CreateTicket mimics the transactional adapter:
// every stock guard is checked before any decrement, and a failing guard
// leaves no partial state.
type mockTicketRepo struct {
	mu       sync.Mutex
	products *mockProductRepo
	tickets  []domain.Ticket
	nextID   int64
}

func newMockTicketRepo(products *mockProductRepo) *mockTicketRepo {
	return &mockTicketRepo{products: products}
}

func (m *mockTicketRepo) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Ticket, len(m.tickets))
	copy(out, m.tickets)
	return out, nil
}

func (m *mockTicketRepo) CreateTicket(ctx context.Context, t *domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products.mu.Lock()
	defer m.products.mu.Unlock()

	for _, item := range t.Items {
		p, ok := m.products.products[item.ProductID]
		if !ok || p.Stock < item.Quantity {
			return domain.ErrInsufficientStock
		}
	}
	for _, item := range t.Items {
		if err := m.products.decrementLocked(item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now().UTC()
	for i := range t.Items {
		t.Items[i].ID = int64(i + 1)
		t.Items[i].TicketID = t.ID
	}
	m.tickets = append(m.tickets, *t)
	return nil
}

func (m *mockTicketRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickets)
}
