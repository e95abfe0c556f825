package retaguardaclient

import (
	"context"
	"net/http"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
	"github.com/pkg/errors"
)

// CreateOrder submete a venda e devolve a nota fiscal emitida pela retaguarda
func (c *RetaguardaClient) CreateOrder(ctx context.Context, req retdomain.CreateOrderRequest, idempotencyKey string) (*domain.Invoice, error) {
	endpoint, err := c.endpoint("/vendas", nil)
	if err != nil {
		return nil, err
	}

	body, err := c.execute(ctx, http.MethodPost, endpoint, req, map[string]string{
		"X-Idempotency-Key": idempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	var invoice domain.Invoice
	if err := decodeInto(body, &invoice); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a nota fiscal")
	}

	return &invoice, nil
}
