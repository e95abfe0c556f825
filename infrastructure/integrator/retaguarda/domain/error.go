package domain

import (
	"fmt"
	"net/http"
)

// APIError é uma rejeição (4xx/5xx) da retaguarda. Carrega o status HTTP e a
// mensagem do corpo quando ela existe.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("retaguarda retornou %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("retaguarda retornou %d", e.StatusCode)
}

// UserMessage devolve a mensagem para o usuário: o texto do corpo quando
// presente, senão a mensagem enlatada por status
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}

	switch {
	case e.StatusCode == http.StatusBadRequest:
		return "Dados inválidos"
	case e.StatusCode == http.StatusNotFound:
		return "Registro não encontrado"
	case e.StatusCode == http.StatusUnprocessableEntity:
		return "Estoque insuficiente para concluir a venda"
	case e.StatusCode >= 500:
		return "Erro temporário no servidor, tente novamente"
	default:
		return "Não foi possível concluir a operação"
	}
}

// IsInsufficientStock indica a rejeição específica de estoque (422)
func (e *APIError) IsInsufficientStock() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

// IsNotFound indica rejeição por registro inexistente
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
