package retaguardaclient

import (
	"context"
	"net/http"
	"net/url"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

// ListProducts busca produtos por termo livre; termo vazio lista o catálogo
func (c *RetaguardaClient) ListProducts(ctx context.Context, term string) ([]domain.Product, error) {
	query := url.Values{}
	if term != "" {
		query.Set("q", term)
	}

	body, err := c.do(ctx, http.MethodGet, "/produtos", query, nil)
	if err != nil {
		return nil, err
	}

	raw, err := unwrapList(body, "produtos", "data")
	if err != nil {
		return nil, err
	}

	var payloads []retdomain.ProductPayload
	if err := decodeInto(raw, &payloads); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(payloads))
	for _, payload := range payloads {
		products = append(products, payload.ToProduct())
	}

	return products, nil
}

func (c *RetaguardaClient) CreateProduct(ctx context.Context, input retdomain.ProductInput) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodPost, "/produtos", nil, input)
	if err != nil {
		return nil, err
	}

	return decodeProduct(body)
}

func (c *RetaguardaClient) UpdateProduct(ctx context.Context, id string, input retdomain.ProductInput) (*domain.Product, error) {
	body, err := c.do(ctx, http.MethodPatch, "/produtos/"+id, nil, input)
	if err != nil {
		return nil, err
	}

	return decodeProduct(body)
}

func (c *RetaguardaClient) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/produtos/"+id, nil, nil)
	return err
}

func decodeProduct(body []byte) (*domain.Product, error) {
	var payload retdomain.ProductPayload
	if err := decodeInto(body, &payload); err != nil {
		return nil, err
	}

	product := payload.ToProduct()
	return &product, nil
}
