package domain

import "github.com/shopspring/decimal"

// Product é o registro de produto normalizado na borda de entrada: o
// identificador vira string canônica e os preços viram decimais, qualquer que
// seja o formato entregue pela retaguarda.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"nome"`
	Brand            string          `json:"marca"`
	ActiveIngredient string          `json:"principio_ativo"`
	Department       string          `json:"departamento"`
	UnitPrice        decimal.Decimal `json:"preco_unitario"`
	FinalPrice       decimal.Decimal `json:"preco_final"`
	DiscountPercent  decimal.Decimal `json:"desconto_percentual"`
	Savings          decimal.Decimal `json:"economia"`
}

// Normalize garante os invariantes de preço: preço final nunca acima do
// unitário e economia nunca negativa.
func (p *Product) Normalize() {
	if p.FinalPrice.IsZero() || p.FinalPrice.GreaterThan(p.UnitPrice) {
		p.FinalPrice = p.UnitPrice
	}

	p.Savings = p.UnitPrice.Sub(p.FinalPrice)
	if p.Savings.IsNegative() {
		p.Savings = decimal.Zero
	}

	if p.DiscountPercent.IsNegative() {
		p.DiscountPercent = decimal.Zero
	}
}

// HasPromotion indica se há promoção ativa aplicada ao produto
func (p Product) HasPromotion() bool {
	return p.FinalPrice.LessThan(p.UnitPrice)
}
