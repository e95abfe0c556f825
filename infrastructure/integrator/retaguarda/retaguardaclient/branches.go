package retaguardaclient

import (
	"context"
	"net/http"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

// ListBranches lista as filiais da rede
func (c *RetaguardaClient) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	body, err := c.do(ctx, http.MethodGet, "/filiais", nil, nil)
	if err != nil {
		return nil, err
	}

	raw, err := unwrapList(body, "filiais", "data")
	if err != nil {
		return nil, err
	}

	var payloads []retdomain.BranchPayload
	if err := decodeInto(raw, &payloads); err != nil {
		return nil, err
	}

	branches := make([]domain.Branch, 0, len(payloads))
	for _, payload := range payloads {
		branches = append(branches, payload.ToBranch())
	}

	return branches, nil
}

func (c *RetaguardaClient) CreateBranch(ctx context.Context, input retdomain.BranchInput) (*domain.Branch, error) {
	body, err := c.do(ctx, http.MethodPost, "/filiais", nil, input)
	if err != nil {
		return nil, err
	}

	return decodeBranch(body)
}

func (c *RetaguardaClient) UpdateBranch(ctx context.Context, id string, input retdomain.BranchInput) (*domain.Branch, error) {
	body, err := c.do(ctx, http.MethodPatch, "/filiais/"+id, nil, input)
	if err != nil {
		return nil, err
	}

	return decodeBranch(body)
}

func (c *RetaguardaClient) DeleteBranch(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/filiais/"+id, nil, nil)
	return err
}

func decodeBranch(body []byte) (*domain.Branch, error) {
	var payload retdomain.BranchPayload
	if err := decodeInto(body, &payload); err != nil {
		return nil, err
	}

	branch := payload.ToBranch()
	return &branch, nil
}
