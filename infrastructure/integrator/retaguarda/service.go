package retaguarda

import (
	"context"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/retaguardaclient"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

// Integrator é a fachada da retaguarda usada pelos fluxos de venda (busca de
// catálogo, filiais e emissão do pedido)
type Integrator interface {
	SearchProducts(ctx context.Context, term string) ([]domain.Product, error)
	SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	SubmitOrder(ctx context.Context, req retdomain.CreateOrderRequest, idempotencyKey string) (*domain.Invoice, error)
}

type Service struct {
	cfg    *config.Config
	Client retaguardaclient.Client
}

func New(cfg *config.Config, client retaguardaclient.Client) Integrator {
	return &Service{
		cfg:    cfg,
		Client: client,
	}
}

func (s *Service) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	return s.Client.ListProducts(ctx, term)
}

func (s *Service) SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error) {
	return s.Client.ListCustomers(ctx, term)
}

func (s *Service) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.Client.ListBranches(ctx)
}

func (s *Service) SubmitOrder(ctx context.Context, req retdomain.CreateOrderRequest, idempotencyKey string) (*domain.Invoice, error) {
	return s.Client.CreateOrder(ctx, req, idempotencyKey)
}
