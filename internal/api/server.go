package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/retaguardaclient"
	"github.com/GstJus133718/barateira-pos-api/internal/api/handler"
	"github.com/GstJus133718/barateira-pos-api/internal/api/handler/router"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
	"github.com/GstJus133718/barateira-pos-api/internal/scheduler"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/authenticating"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/carting"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/checkout"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/searching"
	"github.com/GstJus133718/barateira-pos-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	authenticator authenticating.Authenticator,
	searcher searching.Searcher,
	cartService carting.CartService,
	checkoutService checkout.CheckoutService,
	integrator retaguarda.Integrator,
	retaguardaClient retaguardaclient.Client,
	catalogSyncService *scheduler.CatalogSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		CatalogSyncService: catalogSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Catalog(searcher, integrator, cartService)...),
		router.WithRoutes(handler.Cart(cartService)...),
		router.WithRoutes(handler.Checkout(checkoutService)...),
		router.WithRoutes(handler.Admin(retaguardaClient)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
