package retaguardaclient

import (
	"context"
	"net/http"
	"net/url"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

// ListCustomers busca clientes por termo livre (nome ou CPF)
func (c *RetaguardaClient) ListCustomers(ctx context.Context, term string) ([]domain.Customer, error) {
	query := url.Values{}
	if term != "" {
		query.Set("q", term)
	}

	body, err := c.do(ctx, http.MethodGet, "/clientes", query, nil)
	if err != nil {
		return nil, err
	}

	raw, err := unwrapList(body, "clientes", "data")
	if err != nil {
		return nil, err
	}

	var payloads []retdomain.CustomerPayload
	if err := decodeInto(raw, &payloads); err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(payloads))
	for _, payload := range payloads {
		customers = append(customers, payload.ToCustomer())
	}

	return customers, nil
}

func (c *RetaguardaClient) CreateCustomer(ctx context.Context, input retdomain.CustomerInput) (*domain.Customer, error) {
	body, err := c.do(ctx, http.MethodPost, "/clientes", nil, input)
	if err != nil {
		return nil, err
	}

	return decodeCustomer(body)
}

func (c *RetaguardaClient) UpdateCustomer(ctx context.Context, id string, input retdomain.CustomerInput) (*domain.Customer, error) {
	body, err := c.do(ctx, http.MethodPatch, "/clientes/"+id, nil, input)
	if err != nil {
		return nil, err
	}

	return decodeCustomer(body)
}

func (c *RetaguardaClient) DeleteCustomer(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/clientes/"+id, nil, nil)
	return err
}

func decodeCustomer(body []byte) (*domain.Customer, error) {
	var payload retdomain.CustomerPayload
	if err := decodeInto(body, &payload); err != nil {
		return nil, err
	}

	customer := payload.ToCustomer()
	return &customer, nil
}
