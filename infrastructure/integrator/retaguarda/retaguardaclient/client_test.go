package retaguardaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Retaguarda: config.Retaguarda{
			URL:            server.URL,
			AccessToken:    "token-teste",
			TimeoutSeconds: 5,
		},
	}

	return NewClient(cfg)
}

func TestListProducts_BareArrayWithMixedShapes(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/produtos", r.URL.Path)
		assert.Equal(t, "dipirona", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer token-teste", r.Header.Get("Authorization"))

		// id numérico e preço string com moeda na mesma lista
		w.Write([]byte(`[
			{"id": 10, "nome": "Dipirona", "preco_unitario": 10.0, "preco_final": "R$ 8,00"},
			{"id": "20", "nome": "Omeprazol", "preco_unitario": "35.50"}
		]`))
	})

	products, err := client.ListProducts(context.Background(), "dipirona")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "10", products[0].ID)
	assert.True(t, products[0].UnitPrice.Equal(decimal.RequireFromString("10")))
	assert.True(t, products[0].FinalPrice.Equal(decimal.RequireFromString("8")))
	assert.True(t, products[0].Savings.Equal(decimal.RequireFromString("2")))

	// Sem preço final, o preço de prateleira vale como final
	assert.Equal(t, "20", products[1].ID)
	assert.True(t, products[1].FinalPrice.Equal(decimal.RequireFromString("35.50")))
	assert.True(t, products[1].Savings.IsZero())
}

func TestListProducts_EnvelopeShape(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"produtos": [{"id": 1, "nome": "Dipirona"}], "total": 1}`))
	})

	products, err := client.ListProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "1", products[0].ID)
}

func TestListProducts_NullBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	products, err := client.ListProducts(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListCustomers_EnvelopeWithDataKey(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clientes", r.URL.Path)
		w.Write([]byte(`{"data": [{"id": 7, "nome": "Maria", "sobrenome": "Silva", "cpf": "123.456.789-00"}]}`))
	})

	customers, err := client.ListCustomers(context.Background(), "maria")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "7", customers[0].ID)
	assert.Equal(t, "Maria Silva", customers[0].FullName())
}

func TestDo_ErrorBodyMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "Estoque esgotado na filial"}`))
	})

	_, err := client.ListProducts(context.Background(), "x")

	var apiErr *retdomain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	// A mensagem do corpo prevalece sobre a enlatada
	assert.Equal(t, "Estoque esgotado na filial", apiErr.UserMessage())
	assert.True(t, apiErr.IsInsufficientStock())
}

func TestDo_ErrorWithoutBodyUsesCannedMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListProducts(context.Background(), "x")

	var apiErr *retdomain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Erro temporário no servidor, tente novamente", apiErr.UserMessage())
}

func TestCreateOrder_SendsIdempotencyKey(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/vendas", r.URL.Path)
		assert.Equal(t, "chave-abc", r.Header.Get("X-Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Write([]byte(`{
			"numero": "000123",
			"serie": "1",
			"chave_acesso": "35260800000000000000550010000001231000001234",
			"resumo": {"valor_bruto": 25.00, "descontos": 4.00, "valor_liquido": 21.00, "forma_pagamento": "dinheiro"}
		}`))
	})

	req := retdomain.CreateOrderRequest{
		CustomerID: 1,
		BranchID:   3,
		Items:      []retdomain.OrderItem{{ProdutoID: 10, Quantidade: 2}},
	}

	invoice, err := client.CreateOrder(context.Background(), req, "chave-abc")
	require.NoError(t, err)
	assert.Equal(t, "000123", invoice.Number)
	assert.True(t, invoice.Summary.NetValue.Equal(decimal.RequireFromString("21")))
}

func TestCreateOrder_RejectionKeepsStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "Cliente com cadastro bloqueado"}`))
	})

	_, err := client.CreateOrder(context.Background(), retdomain.CreateOrderRequest{}, "k")

	var apiErr *retdomain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Cliente com cadastro bloqueado", apiErr.Message)
}
