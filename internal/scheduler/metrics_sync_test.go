package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	syncmocks "github.com/vfg2006/marketing-ops-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestMetricsSyncService(ctrl *gomock.Controller) (*MetricsSyncService, *mocks.MockCredentialRepository, *mocks.MockAccountRepository, *syncmocks.MockSyncService) {
	credentialRepo := mocks.NewMockCredentialRepository(ctrl)
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	syncService := syncmocks.NewMockSyncService(ctrl)

	service := NewMetricsSyncService(credentialRepo, accountRepo, syncService, &config.Config{
		MetricsSync: config.MetricsSync{
			CronSchedule:      "0 3 * * *",
			LookbackDays:      7,
			MaxConcurrentJobs: 2,
			Enabled:           true,
		},
	})

	return service, credentialRepo, accountRepo, syncService
}

// TestMetricsSyncService_SyncAllUsers testa os cenários do disparo agendado
func TestMetricsSyncService_SyncAllUsers(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*mocks.MockCredentialRepository, *mocks.MockAccountRepository, *syncmocks.MockSyncService)
	}{
		{
			name: "Dispara um job por conta de cada credencial válida",
			setup: func(credentialRepo *mocks.MockCredentialRepository, accountRepo *mocks.MockAccountRepository, syncService *syncmocks.MockSyncService) {
				credentialRepo.EXPECT().
					ListByProvider(domain.ProviderMeta).
					Return([]*domain.Credential{
						{UserID: "user_1", Provider: domain.ProviderMeta, AccessToken: "token_1", ExpiresAt: time.Now().Add(24 * time.Hour)},
					}, nil)

				accountRepo.EXPECT().
					ListByUserID("user_1").
					Return([]*domain.AdAccount{
						{ID: "acc_1", UserID: "user_1"},
						{ID: "acc_2", UserID: "user_1"},
					}, nil)

				syncService.EXPECT().SyncAllMetrics("user_1", "acc_1", "token_1").Return("job_1", nil)
				syncService.EXPECT().SyncAllMetrics("user_1", "acc_2", "token_1").Return("job_2", nil)
			},
		},
		{
			name: "Credencial expirada é pulada sem consultar contas",
			setup: func(credentialRepo *mocks.MockCredentialRepository, accountRepo *mocks.MockAccountRepository, syncService *syncmocks.MockSyncService) {
				credentialRepo.EXPECT().
					ListByProvider(domain.ProviderMeta).
					Return([]*domain.Credential{
						{UserID: "user_1", Provider: domain.ProviderMeta, AccessToken: "token_1", ExpiresAt: time.Now().Add(-time.Hour)},
						{UserID: "user_2", Provider: domain.ProviderMeta, AccessToken: "token_2", ExpiresAt: time.Now().Add(24 * time.Hour)},
					}, nil)

				accountRepo.EXPECT().
					ListByUserID("user_2").
					Return([]*domain.AdAccount{{ID: "acc_9", UserID: "user_2"}}, nil)

				syncService.EXPECT().SyncAllMetrics("user_2", "acc_9", "token_2").Return("job_9", nil)
			},
		},
		{
			name: "Falha ao disparar uma conta não interrompe as demais",
			setup: func(credentialRepo *mocks.MockCredentialRepository, accountRepo *mocks.MockAccountRepository, syncService *syncmocks.MockSyncService) {
				credentialRepo.EXPECT().
					ListByProvider(domain.ProviderMeta).
					Return([]*domain.Credential{
						{UserID: "user_1", Provider: domain.ProviderMeta, AccessToken: "token_1", ExpiresAt: time.Now().Add(24 * time.Hour)},
					}, nil)

				accountRepo.EXPECT().
					ListByUserID("user_1").
					Return([]*domain.AdAccount{
						{ID: "acc_1", UserID: "user_1"},
						{ID: "acc_2", UserID: "user_1"},
					}, nil)

				syncService.EXPECT().SyncAllMetrics("user_1", "acc_1", "token_1").Return("", assert.AnError)
				syncService.EXPECT().SyncAllMetrics("user_1", "acc_2", "token_1").Return("job_2", nil)
			},
		},
		{
			name: "Nenhuma credencial conectada encerra sem disparos",
			setup: func(credentialRepo *mocks.MockCredentialRepository, accountRepo *mocks.MockAccountRepository, syncService *syncmocks.MockSyncService) {
				credentialRepo.EXPECT().
					ListByProvider(domain.ProviderMeta).
					Return([]*domain.Credential{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, credentialRepo, accountRepo, syncService := newTestMetricsSyncService(ctrl)
			tt.setup(credentialRepo, accountRepo, syncService)

			service.syncAllUsers()

			assert.False(t, service.syncRunning)
			assert.False(t, service.lastSyncStartedAt.IsZero())
		})
	}
}

func TestMetricsSyncService_GetStatusDuranteExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, credentialRepo, _, _ := newTestMetricsSyncService(ctrl)

	credentialRepo.EXPECT().
		ListByProvider(domain.ProviderMeta).
		Return([]*domain.Credential{}, nil)

	done := make(chan struct{})
	go func() {
		service.syncAllUsers()
		close(done)
	}()

	// Leituras concorrentes com a execução; o detector de corrida cobre o resto
	for {
		select {
		case <-done:
			status := service.GetStatus()
			assert.Contains(t, status, "last_sync_started_at")
			return
		default:
			service.GetStatus()
		}
	}
}

func TestMetricsSyncService_TriggerManualSync_AlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _ := newTestMetricsSyncService(ctrl)
	service.syncRunning = true

	err := service.TriggerManualSync()

	assert.Error(t, err)
}

func TestMetricsSyncService_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _ := newTestMetricsSyncService(ctrl)
	service.lastSyncStartedAt = time.Date(2026, 1, 10, 3, 0, 0, 0, time.UTC)

	status := service.GetStatus()

	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 3 * * *", status["cron_schedule"])
	assert.Equal(t, false, status["running"])
	assert.Equal(t, "2026-01-10T03:00:00Z", status["last_sync_started_at"])
	assert.NotContains(t, status, "last_sync_completed_at")
}
