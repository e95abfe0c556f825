package domain

import "github.com/shopspring/decimal"

// Invoice é a nota fiscal emitida pela retaguarda ao concluir o checkout.
// O cliente nunca a altera, apenas exibe e imprime.
type Invoice struct {
	Number     string         `json:"numero"`
	Series     string         `json:"serie"`
	IssuedAt   string         `json:"data_emissao"`
	AccessKey  string         `json:"chave_acesso"`
	Branch     Branch         `json:"filial"`
	Customer   Customer       `json:"cliente"`
	Items      []InvoiceItem  `json:"itens"`
	Summary    InvoiceSummary `json:"resumo"`
	SalesStaff SalesStaff     `json:"vendedor"`
}

// InvoiceItem é uma linha detalhada da nota
type InvoiceItem struct {
	ProductName string          `json:"produto"`
	Brand       string          `json:"marca"`
	Quantity    int             `json:"quantidade"`
	UnitValue   decimal.Decimal `json:"valor_unitario"`
	Discount    decimal.Decimal `json:"desconto"`
	LineTotal   decimal.Decimal `json:"total"`
}

// InvoiceSummary é o resumo financeiro da nota
type InvoiceSummary struct {
	GrossValue    decimal.Decimal `json:"valor_bruto"`
	Discounts     decimal.Decimal `json:"descontos"`
	NetValue      decimal.Decimal `json:"valor_liquido"`
	PaymentMethod string          `json:"forma_pagamento"`
}

// SalesStaff é o funcionário responsável pela venda e sua comissão
type SalesStaff struct {
	Name       string          `json:"nome"`
	Commission decimal.Decimal `json:"comissao"`
}
