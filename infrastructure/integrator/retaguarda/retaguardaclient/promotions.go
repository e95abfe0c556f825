package retaguardaclient

import (
	"context"
	"net/http"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
)

// ListPromotions lista as promoções ativas
func (c *RetaguardaClient) ListPromotions(ctx context.Context) ([]retdomain.Promotion, error) {
	body, err := c.do(ctx, http.MethodGet, "/promocoes", nil, nil)
	if err != nil {
		return nil, err
	}

	raw, err := unwrapList(body, "promocoes", "data")
	if err != nil {
		return nil, err
	}

	var promotions []retdomain.Promotion
	if err := decodeInto(raw, &promotions); err != nil {
		return nil, err
	}

	return promotions, nil
}

func (c *RetaguardaClient) CreatePromotion(ctx context.Context, input retdomain.PromotionInput) error {
	_, err := c.do(ctx, http.MethodPost, "/promocoes", nil, input)
	return err
}

func (c *RetaguardaClient) DeletePromotion(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/promocoes/"+id, nil, nil)
	return err
}
