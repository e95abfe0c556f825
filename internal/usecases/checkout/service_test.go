package checkout

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	retmocks "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/mocks"
	repomocks "github.com/GstJus133718/barateira-pos-api/infrastructure/repository/mocks"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/carting"
)

const operadorID = 7

func testConfig() *config.Config {
	return &config.Config{
		Checkout: config.Checkout{TimeoutSeconds: 10},
	}
}

func cartServiceWithRepo(ctrl *gomock.Controller) carting.CartService {
	mockRepo := repomocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(gomock.Any(), domain.CartStorageKey).Return(nil, nil).AnyTimes()
	mockRepo.EXPECT().Save(gomock.Any(), domain.CartStorageKey, gomock.Any()).Return(nil).AnyTimes()
	return carting.NewService(mockRepo)
}

func produto(id string) domain.Product {
	p := domain.Product{
		ID:         id,
		Name:       "Dipirona",
		UnitPrice:  decimal.RequireFromString("10.00"),
		FinalPrice: decimal.RequireFromString("8.00"),
	}
	p.Normalize()
	return p
}

func TestSubmit_PreconditionsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa em SubmitOrder: pré-condição falha antes da rede
	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	carts := cartServiceWithRepo(ctrl)
	service := NewService(testConfig(), mockIntegrator, carts)

	// Carrinho vazio vem primeiro, mesmo sem cliente e filial
	_, err := service.Submit(context.Background(), operadorID)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateIdle, service.Status(operadorID).State)

	assert.NoError(t, carts.AddProduct(operadorID, produto("10")))
	_, err = service.Submit(context.Background(), operadorID)
	assert.ErrorIs(t, err, ErrNoCustomerSelected)

	carts.SelectCustomer(operadorID, &domain.Customer{ID: "1", Name: "Maria"})
	_, err = service.Submit(context.Background(), operadorID)
	assert.ErrorIs(t, err, ErrNoBranchSelected)
}

func TestSubmit_InvalidProductID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	carts := cartServiceWithRepo(ctrl)
	service := NewService(testConfig(), mockIntegrator, carts)

	assert.NoError(t, carts.AddProduct(operadorID, produto("abc")))
	carts.SelectCustomer(operadorID, &domain.Customer{ID: "1"})
	carts.SelectBranch(operadorID, &domain.Branch{ID: "3"})

	_, err := service.Submit(context.Background(), operadorID)

	var invalidID *InvalidIDError
	assert.ErrorAs(t, err, &invalidID)
	assert.Equal(t, "produto", invalidID.Field)
	assert.Equal(t, StateIdle, service.Status(operadorID).State)
}

func TestSubmit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invoice := &domain.Invoice{Number: "123456", Series: "1"}

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().
		SubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req retdomain.CreateOrderRequest, key string) (*domain.Invoice, error) {
			assert.Equal(t, 1, req.CustomerID)
			assert.Equal(t, 3, req.BranchID)
			assert.Equal(t, []retdomain.OrderItem{{ProdutoID: 10, Quantidade: 2}}, req.Items)
			assert.NotEmpty(t, key)

			// O envio carrega prazo limitado
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)

			return invoice, nil
		})

	carts := cartServiceWithRepo(ctrl)
	service := NewService(testConfig(), mockIntegrator, carts)

	assert.NoError(t, carts.AddProduct(operadorID, produto("10")))
	assert.NoError(t, carts.Increment(operadorID, "10"))
	carts.SelectCustomer(operadorID, &domain.Customer{ID: "1", Name: "Maria"})
	carts.SelectBranch(operadorID, &domain.Branch{ID: "3", Name: "Filial Centro"})

	got, err := service.Submit(context.Background(), operadorID)
	assert.NoError(t, err)
	assert.Equal(t, invoice, got)

	// Razão e cliente zerados, filial preservada
	cart, _ := carts.GetCart(operadorID)
	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.Customer)
	assert.NotNil(t, cart.Branch)

	status := service.Status(operadorID)
	assert.Equal(t, StateSuccess, status.State)
	assert.Equal(t, invoice, status.Invoice)

	service.Rearm(operadorID)
	status = service.Status(operadorID)
	assert.Equal(t, StateIdle, status.State)
	assert.Nil(t, status.Invoice)
}

func TestSubmit_InsufficientStockRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().
		SubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &retdomain.APIError{StatusCode: http.StatusUnprocessableEntity})

	carts := cartServiceWithRepo(ctrl)
	service := NewService(testConfig(), mockIntegrator, carts)

	assert.NoError(t, carts.AddProduct(operadorID, produto("10")))
	carts.SelectCustomer(operadorID, &domain.Customer{ID: "1"})
	carts.SelectBranch(operadorID, &domain.Branch{ID: "3"})

	_, err := service.Submit(context.Background(), operadorID)

	var rejection *RejectionError
	assert.ErrorAs(t, err, &rejection)
	assert.True(t, rejection.IsInsufficientStock())
	assert.Equal(t, "Estoque insuficiente para concluir a venda", rejection.UserMessage())

	// Falha preserva razão e seleções para nova tentativa
	cart, _ := carts.GetCart(operadorID)
	assert.Len(t, cart.Items, 1)
	assert.NotNil(t, cart.Customer)
	assert.NotNil(t, cart.Branch)

	status := service.Status(operadorID)
	assert.Equal(t, StateFailed, status.State)
	assert.Equal(t, "Estoque insuficiente para concluir a venda", status.ErrorMessage)
}

func TestSubmit_RejectionMessageFromBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().
		SubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &retdomain.APIError{
			StatusCode: http.StatusBadRequest,
			Message:    "Cliente com cadastro bloqueado",
		})

	carts := cartServiceWithRepo(ctrl)
	service := NewService(testConfig(), mockIntegrator, carts)

	assert.NoError(t, carts.AddProduct(operadorID, produto("10")))
	carts.SelectCustomer(operadorID, &domain.Customer{ID: "1"})
	carts.SelectBranch(operadorID, &domain.Branch{ID: "3"})

	_, err := service.Submit(context.Background(), operadorID)

	// A mensagem do corpo prevalece sobre a enlatada por status
	var rejection *RejectionError
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Cliente com cadastro bloqueado", rejection.UserMessage())
}

func TestSubmit_TimeoutIsNetworkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().
		SubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	carts := cartServiceWithRepo(ctrl)
	service := NewService(testConfig(), mockIntegrator, carts)

	assert.NoError(t, carts.AddProduct(operadorID, produto("10")))
	carts.SelectCustomer(operadorID, &domain.Customer{ID: "1"})
	carts.SelectBranch(operadorID, &domain.Branch{ID: "3"})

	_, err := service.Submit(context.Background(), operadorID)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cart, _ := carts.GetCart(operadorID)
	assert.Len(t, cart.Items, 1)
}

func TestSubmit_SecondSubmissionBlockedWhileInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entered := make(chan struct{})
	release := make(chan struct{})

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().
		SubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, retdomain.CreateOrderRequest, string) (*domain.Invoice, error) {
			close(entered)
			<-release
			return &domain.Invoice{Number: "1"}, nil
		})

	carts := cartServiceWithRepo(ctrl)
	service := NewService(testConfig(), mockIntegrator, carts)

	assert.NoError(t, carts.AddProduct(operadorID, produto("10")))
	carts.SelectCustomer(operadorID, &domain.Customer{ID: "1"})
	carts.SelectBranch(operadorID, &domain.Branch{ID: "3"})

	done := make(chan error, 1)
	go func() {
		_, err := service.Submit(context.Background(), operadorID)
		done <- err
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("primeiro envio não chegou à retaguarda")
	}

	_, err := service.Submit(context.Background(), operadorID)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	assert.NoError(t, <-done)
}
