package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	retdomain "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/domain"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/retaguardaclient"
	"github.com/GstJus133718/barateira-pos-api/pkg/apiErrors"
)

// Handlers do back-office: repassam os cadastros (produtos, clientes,
// filiais, promoções e estoque) direto à retaguarda.

func CreateProduct(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input retdomain.ProductInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar o produto", nil)
			return
		}

		product, err := client.CreateProduct(r.Context(), input)
		if err != nil {
			handleRetaguardaError(w, err, "Erro ao criar o produto")
			return
		}

		writeJSON(w, http.StatusCreated, product)
	}
}

func UpdateProduct(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var input retdomain.ProductInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar o produto", nil)
			return
		}

		product, err := client.UpdateProduct(r.Context(), id, input)
		if err != nil {
			handleRetaguardaError(w, err, "Erro ao atualizar o produto")
			return
		}

		writeJSON(w, http.StatusOK, product)
	}
}

func DeleteProduct(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := client.DeleteProduct(r.Context(), id); err != nil {
			handleRetaguardaError(w, err, "Erro ao excluir o produto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func CreateCustomer(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input retdomain.CustomerInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar o cliente", nil)
			return
		}

		customer, err := client.CreateCustomer(r.Context(), input)
		if err != nil {
			handleRetaguardaError(w, err, "Erro ao criar o cliente")
			return
		}

		writeJSON(w, http.StatusCreated, customer)
	}
}

func UpdateCustomer(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var input retdomain.CustomerInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar o cliente", nil)
			return
		}

		customer, err := client.UpdateCustomer(r.Context(), id, input)
		if err != nil {
			handleRetaguardaError(w, err, "Erro ao atualizar o cliente")
			return
		}

		writeJSON(w, http.StatusOK, customer)
	}
}

func DeleteCustomer(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := client.DeleteCustomer(r.Context(), id); err != nil {
			handleRetaguardaError(w, err, "Erro ao excluir o cliente")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func CreateBranch(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input retdomain.BranchInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar a filial", nil)
			return
		}

		branch, err := client.CreateBranch(r.Context(), input)
		if err != nil {
			handleRetaguardaError(w, err, "Erro ao criar a filial")
			return
		}

		writeJSON(w, http.StatusCreated, branch)
	}
}

func UpdateBranch(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var input retdomain.BranchInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar a filial", nil)
			return
		}

		branch, err := client.UpdateBranch(r.Context(), id, input)
		if err != nil {
			handleRetaguardaError(w, err, "Erro ao atualizar a filial")
			return
		}

		writeJSON(w, http.StatusOK, branch)
	}
}

func DeleteBranch(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := client.DeleteBranch(r.Context(), id); err != nil {
			handleRetaguardaError(w, err, "Erro ao excluir a filial")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListPromotions(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promotions, err := client.ListPromotions(r.Context())
		if err != nil {
			handleRetaguardaError(w, err, "Erro ao listar as promoções")
			return
		}

		writeJSON(w, http.StatusOK, promotions)
	}
}

func CreatePromotion(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input retdomain.PromotionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar a promoção", nil)
			return
		}

		if err := client.CreatePromotion(r.Context(), input); err != nil {
			handleRetaguardaError(w, err, "Erro ao criar a promoção")
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}

func DeletePromotion(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := client.DeletePromotion(r.Context(), id); err != nil {
			handleRetaguardaError(w, err, "Erro ao excluir a promoção")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListStock lista a posição de estoque, opcionalmente filtrada por filial
func ListStock(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID := r.URL.Query().Get("filial_id")

		stock, err := client.ListStock(r.Context(), branchID)
		if err != nil {
			handleRetaguardaError(w, err, "Erro ao listar o estoque")
			return
		}

		writeJSON(w, http.StatusOK, stock)
	}
}

func AdjustStock(client retaguardaclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var adjustment retdomain.StockAdjustment
		if err := json.NewDecoder(r.Body).Decode(&adjustment); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar o ajuste de estoque", nil)
			return
		}

		if err := client.AdjustStock(r.Context(), adjustment); err != nil {
			handleRetaguardaError(w, err, "Erro ao ajustar o estoque")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Error(err)
	}
}

// handleRetaguardaError repassa a mensagem da retaguarda quando ela existe
func handleRetaguardaError(w http.ResponseWriter, err error, fallback string) {
	logrus.Error(err)

	var apiErr *retdomain.APIError
	if errors.As(err, &apiErr) {
		code := apiErrors.ErrExternalService
		switch {
		case apiErr.StatusCode == http.StatusBadRequest:
			code = apiErrors.ErrInvalidRequest
		case apiErr.IsNotFound():
			code = apiErrors.ErrEntityNotFound
		}

		apiErrors.WriteError(w, code, apiErr.UserMessage(), map[string]any{
			"status_retaguarda": apiErr.StatusCode,
		})
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrCommunication, fallback, nil)
}
