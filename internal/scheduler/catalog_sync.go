// Package scheduler agrupa as rotinas agendadas do PDV. Hoje há uma única:
// a sincronização periódica do catálogo de produtos da retaguarda para o
// cache local usado como contingência.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/retaguardaclient"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/repository"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
)

// CatalogSyncConfig representa a configuração do agendador de sincronização
// do catálogo
type CatalogSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// CatalogSyncService gerencia o agendamento e execução da sincronização do
// catálogo de produtos
type CatalogSyncService struct {
	scheduler           *gocron.Scheduler
	config              CatalogSyncConfig
	client              retaguardaclient.Client
	catalogRepo         repository.CatalogCacheRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncCount       int
}

// NewCatalogSyncService cria uma nova instância do serviço de sincronização
// do catálogo
func NewCatalogSyncService(
	client retaguardaclient.Client,
	catalogRepo repository.CatalogCacheRepository,
	appConfig *config.Config,
) *CatalogSyncService {
	syncConfig := CatalogSyncConfig{
		CronSchedule: appConfig.CatalogSync.CronSchedule,
		SyncEnabled:  appConfig.CatalogSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização do catálogo carregada")

	return &CatalogSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      syncConfig,
		client:      client,
		catalogRepo: catalogRepo,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *CatalogSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização do catálogo desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização do catálogo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncCatalog(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do catálogo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização do catálogo")
		s.scheduler.Stop()
	}()

	return nil
}

// syncCatalog baixa o catálogo completo da retaguarda e troca o cache local
// em uma única transação
func (s *CatalogSyncService) syncCatalog(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do catálogo já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startedAt := time.Now()
	s.lastSyncStartedAt = startedAt
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização do catálogo de produtos")

	products, err := s.client.ListProducts(ctx, "")
	if err != nil {
		logrus.WithError(err).Error("Erro ao baixar o catálogo da retaguarda")
		return
	}

	if len(products) == 0 {
		// Catálogo vazio costuma ser sintoma de falha na retaguarda; o cache
		// anterior vale mais do que nada
		logrus.Warn("Retaguarda devolveu catálogo vazio, mantendo o cache atual")
		return
	}

	if err := s.catalogRepo.ReplaceAll(ctx, products); err != nil {
		logrus.WithError(err).Error("Erro ao gravar o cache local de catálogo")
		return
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncCount = len(products)
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"produtos": len(products),
		"duracao":  time.Since(startedAt).String(),
	}).Info("Catálogo sincronizado com sucesso")
}

// TriggerManualSync inicia manualmente uma sincronização do catálogo
func (s *CatalogSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do catálogo já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do catálogo")
	go s.syncCatalog(context.Background())
}

// GetStatus retorna o status atual do agendador. A leitura é protegida pelo
// mesmo mutex da sincronização, que roda em outra goroutine.
func (s *CatalogSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_count":        s.lastSyncCount,
	}
}
