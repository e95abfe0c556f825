package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/retaguardaclient"
	"github.com/GstJus133718/barateira-pos-api/internal/api/handler/router"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/authenticating"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/carting"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/checkout"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/searching"
	"github.com/GstJus133718/barateira-pos-api/pkg/middleware"
)

// Toda a serialização dos handlers passa pelo jsoniter compatível com a
// biblioteca padrão
var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

// Catalog agrupa a busca de catálogo do PDV e a listagem de filiais
func Catalog(searcher searching.Searcher, integrator retaguarda.Integrator, carts carting.CartService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/catalogo/produtos",
			Method:      http.MethodGet,
			Handler:     SearchProducts(searcher),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/catalogo/clientes",
			Method:      http.MethodGet,
			Handler:     SearchCustomers(searcher),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/filiais",
			Method:      http.MethodGet,
			Handler:     ListBranches(integrator, carts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Cart agrupa as mutações do carrinho do operador
func Cart(service carting.CartService) []router.Route {
	allRoles := []func(http.Handler) http.Handler{middleware.AllRoles()}

	return []router.Route{
		{
			Path:        "/v1/carrinho",
			Method:      http.MethodGet,
			Handler:     GetCart(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/carrinho/itens",
			Method:      http.MethodPost,
			Handler:     AddCartItem(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/carrinho/itens/:id/incrementar",
			Method:      http.MethodPost,
			Handler:     IncrementCartItem(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/carrinho/itens/:id/decrementar",
			Method:      http.MethodPost,
			Handler:     DecrementCartItem(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/carrinho/itens/:id",
			Method:      http.MethodDelete,
			Handler:     RemoveCartItem(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/carrinho/cliente",
			Method:      http.MethodPut,
			Handler:     SelectCartCustomer(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/carrinho/filial",
			Method:      http.MethodPut,
			Handler:     SelectCartBranch(service),
			Middlewares: allRoles,
		},
	}
}

// Checkout agrupa a conclusão da venda
func Checkout(service checkout.CheckoutService) []router.Route {
	allRoles := []func(http.Handler) http.Handler{middleware.AllRoles()}

	return []router.Route{
		{
			Path:        "/v1/checkout",
			Method:      http.MethodPost,
			Handler:     SubmitCheckout(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/checkout/status",
			Method:      http.MethodGet,
			Handler:     CheckoutStatus(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/checkout/rearmar",
			Method:      http.MethodPost,
			Handler:     RearmCheckout(service),
			Middlewares: allRoles,
		},
	}
}

// Admin agrupa os cadastros do back-office, restritos a administradores e
// gerentes
func Admin(client retaguardaclient.Client) []router.Route {
	managers := []func(http.Handler) http.Handler{middleware.AdminOrManager()}

	return []router.Route{
		{Path: "/v1/admin/produtos", Method: http.MethodPost, Handler: CreateProduct(client), Middlewares: managers},
		{Path: "/v1/admin/produtos/:id", Method: http.MethodPatch, Handler: UpdateProduct(client), Middlewares: managers},
		{Path: "/v1/admin/produtos/:id", Method: http.MethodDelete, Handler: DeleteProduct(client), Middlewares: managers},

		{Path: "/v1/admin/clientes", Method: http.MethodPost, Handler: CreateCustomer(client), Middlewares: managers},
		{Path: "/v1/admin/clientes/:id", Method: http.MethodPatch, Handler: UpdateCustomer(client), Middlewares: managers},
		{Path: "/v1/admin/clientes/:id", Method: http.MethodDelete, Handler: DeleteCustomer(client), Middlewares: managers},

		{Path: "/v1/admin/filiais", Method: http.MethodPost, Handler: CreateBranch(client), Middlewares: managers},
		{Path: "/v1/admin/filiais/:id", Method: http.MethodPatch, Handler: UpdateBranch(client), Middlewares: managers},
		{Path: "/v1/admin/filiais/:id", Method: http.MethodDelete, Handler: DeleteBranch(client), Middlewares: managers},

		{Path: "/v1/admin/promocoes", Method: http.MethodGet, Handler: ListPromotions(client), Middlewares: managers},
		{Path: "/v1/admin/promocoes", Method: http.MethodPost, Handler: CreatePromotion(client), Middlewares: managers},
		{Path: "/v1/admin/promocoes/:id", Method: http.MethodDelete, Handler: DeletePromotion(client), Middlewares: managers},

		{Path: "/v1/admin/estoque", Method: http.MethodGet, Handler: ListStock(client), Middlewares: managers},
		{Path: "/v1/admin/estoque", Method: http.MethodPatch, Handler: AdjustStock(client), Middlewares: managers},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}
