package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/internal/usecases/checkout"
	"github.com/GstJus133718/barateira-pos-api/pkg/apiErrors"
)

// SubmitCheckout conclui a venda do operador: valida, envia à retaguarda e
// devolve a nota fiscal emitida
func SubmitCheckout(service checkout.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SubmitCheckout")

		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		invoice, err := service.Submit(r.Context(), userID)
		if err != nil {
			handleCheckoutError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(invoice); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// CheckoutStatus devolve a fotografia corrente do checkout do operador
func CheckoutStatus(service checkout.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(service.Status(userID)); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// RearmCheckout devolve o checkout concluído ao estado ocioso, liberando um
// novo envio
func RearmCheckout(service checkout.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		service.Rearm(userID)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(service.Status(userID)); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// handleCheckoutError traduz a taxonomia do checkout para a resposta da API
func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		apiErrors.WriteError(w, apiErrors.ErrEmptyCart, "O carrinho está vazio", nil)
		return

	case errors.Is(err, checkout.ErrNoCustomerSelected):
		apiErrors.WriteError(w, apiErrors.ErrNoCustomerSelected, "Selecione um cliente para a venda", nil)
		return

	case errors.Is(err, checkout.ErrNoBranchSelected):
		apiErrors.WriteError(w, apiErrors.ErrNoBranchSelected, "Selecione uma filial para a venda", nil)
		return

	case errors.Is(err, checkout.ErrSubmissionInFlight):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Já existe um envio de venda em andamento", nil)
		return
	}

	var invalidID *checkout.InvalidIDError
	if errors.As(err, &invalidID) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, invalidID.Error(), nil)
		return
	}

	var rejection *checkout.RejectionError
	if errors.As(err, &rejection) {
		code := apiErrors.ErrCheckoutRejected
		if rejection.IsInsufficientStock() {
			code = apiErrors.ErrInsufficientStock
		}

		apiErrors.WriteError(w, code, rejection.UserMessage(), map[string]any{
			"status_retaguarda": rejection.APIErr.StatusCode,
		})
		return
	}

	var netErr *checkout.NetworkError
	if errors.As(err, &netErr) {
		apiErrors.WriteError(w, apiErrors.ErrCheckoutNetwork, netErr.UserMessage(), nil)
		return
	}

	logrus.Error(err)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao concluir a venda", nil)
}
