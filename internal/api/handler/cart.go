package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/internal/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/carting"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/pricing"
	"github.com/GstJus133718/barateira-pos-api/pkg/apiErrors"
	"github.com/GstJus133718/barateira-pos-api/pkg/middleware"
)

// CartResponse devolve o carrinho do operador com o resumo financeiro sempre
// recalculado
type CartResponse struct {
	Cart    *domain.Cart    `json:"carrinho"`
	Summary pricing.Summary `json:"resumo"`
}

// operatorID extrai o funcionário autenticado do contexto
func operatorID(r *http.Request) (int, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		return 0, false
	}
	return userClaims.UserID, true
}

func writeCart(w http.ResponseWriter, service carting.CartService, userID int) {
	cart, summary := service.GetCart(userID)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(CartResponse{Cart: cart, Summary: summary}); err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
	}
}

// GetCart devolve o carrinho corrente do operador
func GetCart(service carting.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		writeCart(w, service, userID)
	}
}

// AddCartItem adiciona um produto do catálogo ao carrinho; produto já
// presente tem a quantidade incrementada
func AddCartItem(service carting.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar o produto", nil)
			return
		}

		product.Normalize()

		if err := service.AddProduct(userID, product); err != nil {
			if errors.Is(err, carting.ErrInvalidProduct) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Produto sem identificador", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao adicionar o produto", nil)
			return
		}

		writeCart(w, service, userID)
	}
}

// IncrementCartItem aumenta em 1 a quantidade da linha
func IncrementCartItem(service carting.CartService) http.HandlerFunc {
	return cartQuantityHandler(service, service.Increment)
}

// DecrementCartItem reduz em 1 a quantidade da linha, sem descer de 1
func DecrementCartItem(service carting.CartService) http.HandlerFunc {
	return cartQuantityHandler(service, service.Decrement)
}

func cartQuantityHandler(service carting.CartService, mutate func(userID int, productID string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		if err := mutate(userID, productID); err != nil {
			if errors.Is(err, carting.ErrItemNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Produto não está no carrinho", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao atualizar o carrinho", nil)
			return
		}

		writeCart(w, service, userID)
	}
}

// RemoveCartItem apaga a linha do carrinho; produto ausente não é erro
func RemoveCartItem(service carting.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		if err := service.RemoveProduct(userID, productID); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao remover o produto", nil)
			return
		}

		writeCart(w, service, userID)
	}
}

// SelectCartCustomer define o cliente da venda em andamento
func SelectCartCustomer(service carting.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var customer *domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar o cliente", nil)
			return
		}

		service.SelectCustomer(userID, customer)
		writeCart(w, service, userID)
	}
}

// SelectCartBranch define a filial da venda em andamento
func SelectCartBranch(service carting.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := operatorID(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var branch *domain.Branch
		if err := json.NewDecoder(r.Body).Decode(&branch); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar a filial", nil)
			return
		}

		service.SelectBranch(userID, branch)
		writeCart(w, service, userID)
	}
}
