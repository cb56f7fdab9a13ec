package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rl1809/mini-pos/internal/core/domain"
	"github.com/rl1809/mini-pos/internal/port"
)

type ProductService struct {
	products port.ProductRepository
}

func NewProductService(products port.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *ProductService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// Search returns the whole catalog when q is blank.
func (s *ProductService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	if strings.TrimSpace(q) == "" {
		return s.products.ListProducts(ctx)
	}
	return s.products.SearchProducts(ctx, q)
}

func (s *ProductService) Save(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.products.SaveProduct(ctx, p); err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// DecrementStock applies the stock guard for a single product. The mutation
// is durable once the call returns.
func (s *ProductService) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return s.products.DecrementStock(ctx, productID, quantity)
}
