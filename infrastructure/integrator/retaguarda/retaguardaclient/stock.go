package retaguardaclient

import (
	"context"
	"net/http"
	"net/url"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
)

// ListStock consulta a posição de estoque, opcionalmente filtrada por filial
func (c *RetaguardaClient) ListStock(ctx context.Context, branchID string) ([]retdomain.StockEntry, error) {
	query := url.Values{}
	if branchID != "" {
		query.Set("filial_id", branchID)
	}

	body, err := c.do(ctx, http.MethodGet, "/estoque", query, nil)
	if err != nil {
		return nil, err
	}

	raw, err := unwrapList(body, "estoque", "data")
	if err != nil {
		return nil, err
	}

	var entries []retdomain.StockEntry
	if err := decodeInto(raw, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (c *RetaguardaClient) AdjustStock(ctx context.Context, adjustment retdomain.StockAdjustment) error {
	_, err := c.do(ctx, http.MethodPatch, "/estoque", nil, adjustment)
	return err
}
