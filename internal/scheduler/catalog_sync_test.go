package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	clientmocks "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/retaguardaclient/mocks"
	repomocks "github.com/GstJus133718/barateira-pos-api/infrastructure/repository/mocks"
	"github.com/GstJus133718/barateira-pos-api/internal/config"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

func syncTestConfig() *config.Config {
	return &config.Config{
		CatalogSync: config.CatalogSync{
			CronSchedule: "0 */6 * * *",
			Enabled:      false,
		},
	}
}

func TestTriggerManualSync_StatusReadableDuringSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := clientmocks.NewMockClient(ctrl)
	mockClient.EXPECT().
		ListProducts(gomock.Any(), "").
		Return([]domain.Product{{ID: "1"}, {ID: "2"}}, nil)

	mockRepo := repomocks.NewMockCatalogCacheRepository(ctrl)
	mockRepo.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(nil)

	service := NewCatalogSyncService(mockClient, mockRepo, syncTestConfig())
	service.TriggerManualSync()

	// O status é consultado enquanto a sincronização roda em outra goroutine
	assert.Eventually(t, func() bool {
		status := service.GetStatus()
		return status["sync_running"] == false && status["last_sync_count"] == 2
	}, time.Second, 10*time.Millisecond)

	status := service.GetStatus()
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestSyncCatalog_EmptyCatalogKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// A sincronização roda em outra goroutine e não altera o status no caso de
	// catálogo vazio; o canal garante que o teste espere a chamada acontecer
	listCalled := make(chan struct{})
	mockClient := clientmocks.NewMockClient(ctrl)
	mockClient.EXPECT().
		ListProducts(gomock.Any(), "").
		Do(func(context.Context, string) { close(listCalled) }).
		Return([]domain.Product{}, nil)

	// Nenhuma expectativa de ReplaceAll: catálogo vazio não troca o cache
	mockRepo := repomocks.NewMockCatalogCacheRepository(ctrl)

	service := NewCatalogSyncService(mockClient, mockRepo, syncTestConfig())
	service.TriggerManualSync()

	select {
	case <-listCalled:
	case <-time.After(time.Second):
		t.Fatal("ListProducts não foi chamado pela sincronização manual")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, service.GetStatus()["last_sync_count"])
}
