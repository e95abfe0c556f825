package retaguardaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

type Client interface {
	ListProducts(ctx context.Context, term string) ([]domain.Product, error)
	ListCustomers(ctx context.Context, term string) ([]domain.Customer, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)

	CreateOrder(ctx context.Context, req retdomain.CreateOrderRequest, idempotencyKey string) (*domain.Invoice, error)

	CreateProduct(ctx context.Context, input retdomain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input retdomain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateCustomer(ctx context.Context, input retdomain.CustomerInput) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, input retdomain.CustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	CreateBranch(ctx context.Context, input retdomain.BranchInput) (*domain.Branch, error)
	UpdateBranch(ctx context.Context, id string, input retdomain.BranchInput) (*domain.Branch, error)
	DeleteBranch(ctx context.Context, id string) error

	ListPromotions(ctx context.Context) ([]retdomain.Promotion, error)
	CreatePromotion(ctx context.Context, input retdomain.PromotionInput) error
	DeletePromotion(ctx context.Context, id string) error

	ListStock(ctx context.Context, branchID string) ([]retdomain.StockEntry, error)
	AdjustStock(ctx context.Context, adjustment retdomain.StockAdjustment) error
}

type RetaguardaClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente da retaguarda
func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Retaguarda.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &RetaguardaClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}

// endpoint monta a URL final a partir da base configurada
func (c *RetaguardaClient) endpoint(subPath string, query url.Values) (string, error) {
	base, err := url.Parse(c.config.Retaguarda.URL)
	if err != nil {
		return "", errors.Wrap(err, "erro ao analisar a URL base da retaguarda")
	}

	base.Path = path.Join(base.Path, subPath)
	if query != nil {
		base.RawQuery = query.Encode()
	}

	return base.String(), nil
}

// do executa a requisição com o token de integração e devolve o corpo.
// Rejeições 4xx/5xx viram *retdomain.APIError com a mensagem do corpo.
func (c *RetaguardaClient) do(ctx context.Context, method, subPath string, query url.Values, body any) ([]byte, error) {
	endpoint, err := c.endpoint(subPath, query)
	if err != nil {
		return nil, err
	}

	return c.execute(ctx, method, endpoint, body, nil)
}

// execute é o caminho comum de execução; headers extras servem para a chave
// de idempotência do checkout
func (c *RetaguardaClient) execute(ctx context.Context, method, endpoint string, body any, headers map[string]string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao serializar o corpo da requisição")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Retaguarda.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, parseAPIError(resp.StatusCode, data)
	}

	return data, nil
}

// parseAPIError extrai a mensagem do corpo quando ela existe nos campos
// "message" ou "error"
func parseAPIError(status int, body []byte) *retdomain.APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		message = payload.Message
		if message == "" {
			message = payload.Error
		}
	}

	return &retdomain.APIError{
		StatusCode: status,
		Message:    message,
	}
}

// unwrapList lida com as formas heterogêneas de lista: ora um array puro,
// ora um objeto envelope como {"produtos": [...]}
func unwrapList(body []byte, keys ...string) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []byte("[]"), nil
	}

	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar o envelope da lista")
	}

	for _, key := range keys {
		if raw, ok := envelope[key]; ok {
			inner := bytes.TrimSpace(raw)
			if len(inner) > 0 && inner[0] == '[' {
				return inner, nil
			}
		}
	}

	return nil, fmt.Errorf("resposta da retaguarda em formato inesperado")
}

// decodeInto decodifica preservando números como json.Number, para que ids e
// preços cheguem intactos à normalização
func decodeInto(data []byte, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return errors.Wrap(err, "erro ao decodificar a resposta")
	}
	return nil
}
