package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{"valid product", Product{Name: "Mouse Óptico", UnitPrice: decimal.NewFromFloat(15.90), Stock: 30}, false},
		{"zero price", Product{Name: "Promo", UnitPrice: decimal.Zero, Stock: 1}, false},
		{"missing name", Product{UnitPrice: decimal.NewFromInt(10), Stock: 1}, true},
		{"negative price", Product{Name: "Mouse", UnitPrice: decimal.NewFromInt(-1), Stock: 1}, true},
		{"negative stock", Product{Name: "Mouse", UnitPrice: decimal.NewFromInt(10), Stock: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidProduct) {
				t.Errorf("expected ErrInvalidProduct, got: %v", err)
			}
		})
	}
}
