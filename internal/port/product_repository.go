package port

import (
	"context"

	"github.com/rl1809/mini-pos/internal/core/domain"
)

type ProductRepository interface {
	// ListProducts returns every product in the catalog.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProduct retrieves a product by id, nil when absent
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)

	// SearchProducts returns products whose name contains q, case-insensitively
	SearchProducts(ctx context.Context, q string) ([]domain.Product, error)

	// SaveProduct inserts when the id is zero, otherwise updates all fields
	SaveProduct(ctx context.Context, p *domain.Product) error

	// CountProducts returns the catalog size (used by the seed gate)
	CountProducts(ctx context.Context) (int64, error)

	// DecrementStock subtracts quantity with a conditional update; no
	// mutation happens when stock is insufficient
	DecrementStock(ctx context.Context, productID int64, quantity int) error
}
