// Package money normaliza valores monetários e quantidades que chegam da
// retaguarda em formatos heterogêneos (número, string com "R$", separador de
// milhar, vírgula ou ponto decimal).
package money

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converte qualquer representação de preço/quantidade em um decimal
// finito e não-negativo. Entrada não reconhecida vira zero, nunca erro.
func Parse(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return clamp(v)
	case float64:
		return clamp(decimal.NewFromFloat(v))
	case float32:
		return clamp(decimal.NewFromFloat32(v))
	case int:
		return clamp(decimal.NewFromInt(int64(v)))
	case int64:
		return clamp(decimal.NewFromInt(v))
	case json.Number:
		return ParseString(v.String())
	case string:
		return ParseString(v)
	default:
		return decimal.Zero
	}
}

// ParseString interpreta strings como "R$ 1.234,56", "1,234.56" ou "12.5".
func ParseString(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)

	if cleaned == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma > lastDot:
		// Formato brasileiro: ponto é separador de milhar, vírgula é decimal
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case lastDot > lastComma:
		// Formato americano: vírgula é separador de milhar
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}

	return clamp(d)
}

// Round2 arredonda para duas casas decimais (valores de exibição e resumo).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
