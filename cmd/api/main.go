package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/database/postgres"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/retaguardaclient"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/repository"
	"github.com/GstJus133718/barateira-pos-api/internal/api"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
	"github.com/GstJus133718/barateira-pos-api/internal/scheduler"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/authenticating"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/carting"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/checkout"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/searching"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	cartRepo := repository.NewCartRepository(pgConn)
	catalogCacheRepo := repository.NewCatalogCacheRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	retaguardaClient := retaguardaclient.NewClient(cfg)
	integrator := retaguarda.New(cfg, retaguardaClient)

	// Busca de catálogo com debounce e contingência pelo cache local
	debounce := time.Duration(cfg.Search.DebounceMillis) * time.Millisecond
	searcher := searching.NewService(integrator, debounce).WithCache(catalogCacheRepo)

	cartService := carting.NewService(cartRepo)
	checkoutService := checkout.NewService(cfg, integrator, cartService)

	catalogSyncService := scheduler.NewCatalogSyncService(retaguardaClient, catalogCacheRepo, cfg)

	if err := catalogSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização do catálogo")
	} else {
		logrus.Info("Agendador de sincronização do catálogo iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		searcher,
		cartService,
		checkoutService,
		integrator,
		retaguardaClient,
		catalogSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
