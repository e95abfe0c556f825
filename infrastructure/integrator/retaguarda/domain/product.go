// Package domain contém os formatos de fio da API da retaguarda. As respostas
// chegam com formas heterogêneas (ids numéricos ou string, preços em número ou
// string com moeda) e são normalizadas aqui, nunca mais adiante.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GstJus133718/barateira-pos-api/internal/domain"
	"github.com/GstJus133718/barateira-pos-api/pkg/money"
)

// ProductPayload é o produto como a retaguarda o envia
type ProductPayload struct {
	ID              any    `json:"id"`
	Nome            string `json:"nome"`
	Marca           string `json:"marca"`
	PrincipioAtivo  string `json:"principio_ativo"`
	Departamento    string `json:"departamento"`
	PrecoUnitario   any    `json:"preco_unitario"`
	PrecoFinal      any    `json:"preco_final"`
	DescontoPercent any    `json:"desconto_percentual"`
	Economia        any    `json:"economia"`
}

// ToProduct normaliza o payload para o registro canônico: id como string,
// preços como decimais e invariantes de promoção garantidos
func (p ProductPayload) ToProduct() domain.Product {
	product := domain.Product{
		ID:               CanonicalID(p.ID),
		Name:             p.Nome,
		Brand:            p.Marca,
		ActiveIngredient: p.PrincipioAtivo,
		Department:       p.Departamento,
		UnitPrice:        money.Parse(p.PrecoUnitario),
		FinalPrice:       money.Parse(p.PrecoFinal),
		DiscountPercent:  money.Parse(p.DescontoPercent),
		Savings:          money.Parse(p.Economia),
	}

	product.Normalize()
	return product
}

// CanonicalID converte identificadores numéricos ou string para a forma
// canônica em string, evitando falhas silenciosas de comparação de chaves
func CanonicalID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
