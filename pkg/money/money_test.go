package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:     "Float já normalizado",
			input:    12.5,
			expected: "12.5",
		},
		{
			name:     "Inteiro",
			input:    7,
			expected: "7",
		},
		{
			name:     "String com símbolo de moeda e vírgula decimal",
			input:    "R$ 1.234,56",
			expected: "1234.56",
		},
		{
			name:     "String com vírgula de milhar e ponto decimal",
			input:    "1,234.56",
			expected: "1234.56",
		},
		{
			name:     "String simples com ponto",
			input:    "12.5",
			expected: "12.5",
		},
		{
			name:     "String simples com vírgula",
			input:    "12,50",
			expected: "12.5",
		},
		{
			name:     "json.Number",
			input:    json.Number("99.90"),
			expected: "99.9",
		},
		{
			name:     "Entrada inválida vira zero",
			input:    "abc",
			expected: "0",
		},
		{
			name:     "Nil vira zero",
			input:    nil,
			expected: "0",
		},
		{
			name:     "Negativo é travado em zero",
			input:    "-10,00",
			expected: "0",
		},
		{
			name:     "Tipo não suportado vira zero",
			input:    []string{"x"},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)
			assert.True(t, got.Equal(expected), "esperado %s, obtido %s", expected, got)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.46", Round2(decimal.RequireFromString("10.455")).String())
	assert.Equal(t, "0", Round2(decimal.Zero).String())
}
