// Package checkout orquestra a conclusão da venda: valida as pré-condições do
// carrinho, monta o pedido, envia à retaguarda com timeout limitado e aplica o
// desfecho — limpando o razão no sucesso e preservando tudo na falha.
package checkout

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda"
	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/carting"
	"github.com/GstJus133718/barateira-pos-api/pkg/utils"
)

// State é o estado do fluxo de checkout de um operador
type State string

const (
	StateIdle       State = "ocioso"
	StateValidating State = "validando"
	StateSubmitting State = "enviando"
	StateSuccess    State = "sucesso"
	StateFailed     State = "falha"
)

// Result é a fotografia do checkout exposta na API: estado corrente, a nota
// fiscal no sucesso e a mensagem de erro na falha
type Result struct {
	State        State           `json:"estado"`
	Invoice      *domain.Invoice `json:"nota_fiscal,omitempty"`
	ErrorMessage string          `json:"erro,omitempty"`
}

type CheckoutService interface {
	Submit(ctx context.Context, userID int) (*domain.Invoice, error)
	Status(userID int) Result
	Rearm(userID int)
}

type session struct {
	state   State
	invoice *domain.Invoice
	lastErr string
}

type Service struct {
	cfg        *config.Config
	integrator retaguarda.Integrator
	carts      carting.CartService

	mu       sync.Mutex
	sessions map[int]*session
}

func NewService(cfg *config.Config, integrator retaguarda.Integrator, carts carting.CartService) CheckoutService {
	return &Service{
		cfg:        cfg,
		integrator: integrator,
		carts:      carts,
		sessions:   make(map[int]*session),
	}
}

// Submit executa o fluxo completo da venda do operador. Pré-condições falham
// na ordem fixa carrinho → cliente → filial, cada uma com seu próprio erro e
// sem emitir requisição. No sucesso o carrinho e o cliente são limpos e a
// filial mantida; em qualquer falha nada é alterado.
func (s *Service) Submit(ctx context.Context, userID int) (*domain.Invoice, error) {
	sess, err := s.begin(userID)
	if err != nil {
		return nil, err
	}

	cart, _ := s.carts.GetCart(userID)

	// Falha de validação volta direto a ocioso: nenhuma requisição foi
	// emitida e não há desfecho a rearmar
	if err := validatePreconditions(cart); err != nil {
		s.transition(sess, StateIdle)
		return nil, err
	}

	req, err := buildOrderRequest(cart)
	if err != nil {
		s.transition(sess, StateIdle)
		return nil, err
	}

	s.transition(sess, StateSubmitting)

	key, err := utils.GenerateIdempotencyKey()
	if err != nil {
		s.finishFailed(sess, err)
		return nil, err
	}

	timeout := time.Duration(s.cfg.Checkout.TimeoutSeconds) * time.Second
	submitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	invoice, err := s.integrator.SubmitOrder(submitCtx, req, key)
	if err != nil {
		classified := classify(err)
		s.finishFailed(sess, classified)

		logrus.WithError(err).WithField("user_id", userID).
			Warn("Envio da venda recusado ou interrompido")
		return nil, classified
	}

	// Desfecho feliz: zera razão e cliente, mantém a filial para a próxima
	// venda do mesmo caixa
	s.carts.FinishSale(userID)
	s.finishSuccess(sess, invoice)

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"nota":    invoice.Number,
	}).Info("Venda concluída na retaguarda")

	return invoice, nil
}

// Status devolve a fotografia corrente do checkout do operador
func (s *Service) Status(userID int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Result{State: StateIdle}
	}

	return Result{
		State:        sess.state,
		Invoice:      sess.invoice,
		ErrorMessage: sess.lastErr,
	}
}

// Rearm devolve um checkout concluído (sucesso ou falha) ao estado ocioso,
// liberando um novo envio. Sem efeito nos demais estados.
func (s *Service) Rearm(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return
	}

	if sess.state == StateSuccess || sess.state == StateFailed {
		sess.state = StateIdle
		sess.invoice = nil
		sess.lastErr = ""
	}
}

// begin abre a transição para Validating; apenas um envio por operador fica
// em voo por vez. Um novo acionamento explícito sobre sucesso/falha rearma o
// fluxo implicitamente.
func (s *Service) begin(userID int) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{state: StateIdle}
		s.sessions[userID] = sess
	}

	if sess.state == StateSubmitting || sess.state == StateValidating {
		return nil, ErrSubmissionInFlight
	}

	sess.state = StateValidating
	sess.invoice = nil
	sess.lastErr = ""

	return sess, nil
}

func (s *Service) transition(sess *session, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.state = state
}

func (s *Service) finishFailed(sess *session, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.state = StateFailed
	sess.lastErr = userMessage(err)
}

func (s *Service) finishSuccess(sess *session, invoice *domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.state = StateSuccess
	sess.invoice = invoice
}

// validatePreconditions confere as condições na ordem fixa exigida pelo
// fluxo de caixa; a primeira falha interrompe
func validatePreconditions(cart *domain.Cart) error {
	if cart.IsEmpty() {
		return ErrEmptyCart
	}
	if cart.Customer == nil {
		return ErrNoCustomerSelected
	}
	if cart.Branch == nil {
		return ErrNoBranchSelected
	}
	return nil
}

// buildOrderRequest monta o pedido no formato da retaguarda, que exige
// identificadores numéricos
func buildOrderRequest(cart *domain.Cart) (retdomain.CreateOrderRequest, error) {
	customerID, err := strconv.Atoi(cart.Customer.ID)
	if err != nil {
		return retdomain.CreateOrderRequest{}, &InvalidIDError{Field: "cliente", Value: cart.Customer.ID}
	}

	branchID, err := strconv.Atoi(cart.Branch.ID)
	if err != nil {
		return retdomain.CreateOrderRequest{}, &InvalidIDError{Field: "filial", Value: cart.Branch.ID}
	}

	items := make([]retdomain.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		productID, err := strconv.Atoi(item.Product.ID)
		if err != nil {
			return retdomain.CreateOrderRequest{}, &InvalidIDError{Field: "produto", Value: item.Product.ID}
		}

		items = append(items, retdomain.OrderItem{
			ProdutoID:  productID,
			Quantidade: item.Quantity,
		})
	}

	return retdomain.CreateOrderRequest{
		CustomerID: customerID,
		BranchID:   branchID,
		Items:      items,
	}, nil
}

// classify traduz o erro bruto do envio na taxonomia do fluxo: recusa da
// retaguarda ou falha de rede (timeout incluso)
func classify(err error) error {
	var apiErr *retdomain.APIError
	if errors.As(err, &apiErr) {
		return &RejectionError{APIErr: apiErr}
	}

	return &NetworkError{Err: err}
}

func userMessage(err error) string {
	type messenger interface {
		UserMessage() string
	}

	var m messenger
	if errors.As(err, &m) {
		return m.UserMessage()
	}

	return err.Error()
}
