// Package pricing é a rotina única de reconciliação de preços do carrinho.
// Todas as telas derivam subtotal, desconto e líquido daqui; não existe outra
// derivação de desconto no sistema.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/GstJus133718/barateira-pos-api/internal/domain"
	"github.com/GstJus133718/barateira-pos-api/pkg/money"
)

// Summary é o resumo financeiro derivado do razão do carrinho
type Summary struct {
	SubtotalOriginal decimal.Decimal `json:"subtotal_original"`
	TotalDiscount    decimal.Decimal `json:"total_descontos"`
	NetTotal         decimal.Decimal `json:"total_liquido"`
}

// Reconcile é uma função pura do razão atual: nenhum efeito colateral e nada
// em cache entre mutações.
//
//	subtotal = Σ unitário × quantidade
//	desconto = Σ max(0, unitário − final) × quantidade
//	líquido  = subtotal − desconto
//
// Linha com preço final maior ou igual ao unitário contribui zero para o
// desconto, nunca um valor negativo.
func Reconcile(cart *domain.Cart) Summary {
	subtotal := decimal.Zero
	discount := decimal.Zero

	if cart != nil {
		for _, item := range cart.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			unit := item.Product.UnitPrice
			final := item.Product.FinalPrice

			subtotal = subtotal.Add(unit.Mul(qty))

			lineDiscount := unit.Sub(final)
			if lineDiscount.IsPositive() {
				discount = discount.Add(lineDiscount.Mul(qty))
			}
		}
	}

	return Summary{
		SubtotalOriginal: money.Round2(subtotal),
		TotalDiscount:    money.Round2(discount),
		NetTotal:         money.Round2(subtotal.Sub(discount)),
	}
}
