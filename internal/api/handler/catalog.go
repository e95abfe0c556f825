package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/carting"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/searching"
	"github.com/GstJus133718/barateira-pos-api/pkg/apiErrors"
)

// SearchProducts busca produtos no catálogo pelo termo livre em `q`
func SearchProducts(service searching.Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")

		products, err := service.SearchProducts(r.Context(), term)
		if err != nil {
			// Consulta substituída por um termo mais novo: este resultado não
			// deve ser aplicado pela tela
			if errors.Is(err, searching.ErrSuperseded) {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			logrus.WithError(err).Error("Erro ao buscar produtos")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao buscar produtos no catálogo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(products); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// SearchCustomers busca clientes por nome ou CPF pelo termo em `q`
func SearchCustomers(service searching.Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")

		customers, err := service.SearchCustomers(r.Context(), term)
		if err != nil {
			if errors.Is(err, searching.ErrSuperseded) {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			logrus.WithError(err).Error("Erro ao buscar clientes")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao buscar clientes", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(customers); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ListBranches lista as filiais da rede. A primeira filial listada vira a
// filial padrão da sessão do operador enquanto ele não escolher outra.
func ListBranches(integrator retaguarda.Integrator, carts carting.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branches, err := integrator.ListBranches(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar filiais")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao listar filiais", nil)
			return
		}

		if userID, ok := operatorID(r); ok && len(branches) > 0 {
			carts.DefaultBranch(userID, &branches[0])
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(branches); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
