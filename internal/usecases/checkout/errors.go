package checkout

import (
	"errors"
	"fmt"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
)

// Erros de pré-condição, verificados nesta ordem antes de qualquer requisição
var (
	ErrEmptyCart          = errors.New("o carrinho está vazio")
	ErrNoCustomerSelected = errors.New("nenhum cliente selecionado para a venda")
	ErrNoBranchSelected   = errors.New("nenhuma filial selecionada para a venda")

	// ErrSubmissionInFlight bloqueia um segundo envio enquanto o primeiro
	// ainda aguarda resposta
	ErrSubmissionInFlight = errors.New("já existe um envio de venda em andamento")
)

// InvalidIDError indica um identificador que não pôde ser convertido para o
// formato numérico exigido pelo pedido de venda
type InvalidIDError struct {
	Field string
	Value string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("identificador inválido em %s: %q", e.Field, e.Value)
}

// NetworkError classifica timeout ou falha de conectividade no envio da
// venda; o carrinho permanece intacto para nova tentativa
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("falha de comunicação com a retaguarda: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) UserMessage() string {
	return "Falha de conexão com o servidor, verifique a rede e tente novamente"
}

// RejectionError classifica uma recusa (4xx/5xx) da retaguarda ao pedido de
// venda
type RejectionError struct {
	APIErr *retdomain.APIError
}

func (e *RejectionError) Error() string {
	return e.APIErr.Error()
}

func (e *RejectionError) Unwrap() error {
	return e.APIErr
}

func (e *RejectionError) UserMessage() string {
	return e.APIErr.UserMessage()
}

// IsInsufficientStock indica a recusa específica por falta de estoque
func (e *RejectionError) IsInsufficientStock() bool {
	return e.APIErr.IsInsufficientStock()
}
