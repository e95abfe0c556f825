package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

func produto(id, nome string, unitario, final string) domain.Product {
	p := domain.Product{
		ID:         id,
		Name:       nome,
		UnitPrice:  decimal.RequireFromString(unitario),
		FinalPrice: decimal.RequireFromString(final),
	}
	p.Normalize()
	return p
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name             string
		cart             *domain.Cart
		subtotalOriginal string
		totalDiscount    string
		netTotal         string
	}{
		{
			name:             "Carrinho vazio",
			cart:             domain.NewCart(),
			subtotalOriginal: "0",
			totalDiscount:    "0",
			netTotal:         "0",
		},
		{
			name:             "Carrinho nulo",
			cart:             nil,
			subtotalOriginal: "0",
			totalDiscount:    "0",
			netTotal:         "0",
		},
		{
			// Produto A: unitário 10.00, final 8.00, qtd 2
			// Produto B: unitário 5.00, final 5.00, qtd 1
			name: "Produto promovido e produto sem promoção",
			cart: &domain.Cart{
				Items: []*domain.CartItem{
					{Product: produto("1", "Dipirona", "10.00", "8.00"), Quantity: 2},
					{Product: produto("2", "Vitamina C", "5.00", "5.00"), Quantity: 1},
				},
			},
			subtotalOriginal: "25",
			totalDiscount:    "4",
			netTotal:         "21",
		},
		{
			// Final acima do unitário é normalizado e não gera desconto negativo
			name: "Preço final acima do unitário contribui zero",
			cart: &domain.Cart{
				Items: []*domain.CartItem{
					{Product: produto("3", "Aspirina", "10.00", "12.00"), Quantity: 3},
				},
			},
			subtotalOriginal: "30",
			totalDiscount:    "0",
			netTotal:         "30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Reconcile(tt.cart)

			assert.True(t, summary.SubtotalOriginal.Equal(decimal.RequireFromString(tt.subtotalOriginal)),
				"subtotal esperado %s, obtido %s", tt.subtotalOriginal, summary.SubtotalOriginal)
			assert.True(t, summary.TotalDiscount.Equal(decimal.RequireFromString(tt.totalDiscount)),
				"desconto esperado %s, obtido %s", tt.totalDiscount, summary.TotalDiscount)
			assert.True(t, summary.NetTotal.Equal(decimal.RequireFromString(tt.netTotal)),
				"líquido esperado %s, obtido %s", tt.netTotal, summary.NetTotal)
		})
	}
}

func TestReconcileIdentity(t *testing.T) {
	cart := &domain.Cart{
		Items: []*domain.CartItem{
			{Product: produto("1", "Dipirona", "19.90", "14.90"), Quantity: 3},
			{Product: produto("2", "Omeprazol", "35.50", "35.50"), Quantity: 2},
			{Product: produto("3", "Protetor Solar", "89.90", "71.92"), Quantity: 1},
		},
	}

	summary := Reconcile(cart)

	// Identidade líquido = subtotal − desconto, e desconto nunca negativo
	assert.True(t, summary.NetTotal.Equal(summary.SubtotalOriginal.Sub(summary.TotalDiscount)))
	assert.False(t, summary.TotalDiscount.IsNegative())
}
