package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/syncing"
)

// MetricsSyncConfig representa a configuração do agendador de métricas
type MetricsSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// MetricsSyncService gerencia o agendamento da sincronização diária de
// métricas para todas as credenciais conectadas
type MetricsSyncService struct {
	scheduler           *gocron.Scheduler
	config              MetricsSyncConfig
	appConfig           *config.Config
	credentialRepo      repository.CredentialRepository
	accountRepo         repository.AccountRepository
	syncService         syncing.SyncService
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewMetricsSyncService(
	credentialRepo repository.CredentialRepository,
	accountRepo repository.AccountRepository,
	syncService syncing.SyncService,
	appConfig *config.Config,
) *MetricsSyncService {
	syncConfig := MetricsSyncConfig{
		CronSchedule:      appConfig.MetricsSync.CronSchedule,
		LookbackDays:      appConfig.MetricsSync.LookbackDays,
		MaxConcurrentJobs: appConfig.MetricsSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.MetricsSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de métricas carregada")

	return &MetricsSyncService{
		scheduler:      scheduler,
		config:         syncConfig,
		appConfig:      appConfig,
		credentialRepo: credentialRepo,
		accountRepo:    accountRepo,
		syncService:    syncService,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *MetricsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllUsers()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara a sincronização fora do horário agendado.
// Retorna erro se já houver uma execução em andamento.
func (s *MetricsSyncService) TriggerManualSync() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return fmt.Errorf("sincronização de métricas já em andamento")
	}
	s.syncMutex.Unlock()

	go s.syncAllUsers()
	return nil
}

// GetStatus retorna o estado atual do agendador
func (s *MetricsSyncService) GetStatus() map[string]interface{} {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]interface{}{
		"enabled":       s.config.SyncEnabled,
		"cron_schedule": s.config.CronSchedule,
		"running":       s.syncRunning,
	}

	if !s.lastSyncStartedAt.IsZero() {
		status["last_sync_started_at"] = s.lastSyncStartedAt.Format(time.RFC3339)
	}
	if !s.lastSyncCompletedAt.IsZero() {
		status["last_sync_completed_at"] = s.lastSyncCompletedAt.Format(time.RFC3339)
	}

	return status
}

// syncAllUsers percorre todas as credenciais conectadas e dispara a
// sincronização de cada conta de anúncios do usuário. Credenciais expiradas
// são puladas; o usuário precisa reconectar.
func (s *MetricsSyncService) syncAllUsers() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de métricas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização agendada de métricas para todas as credenciais")

	credentials, err := s.credentialRepo.ListByProvider(domain.ProviderMeta)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar credenciais para sincronização de métricas")
		return
	}

	if len(credentials) == 0 {
		logrus.Info("Nenhuma credencial conectada para sincronização de métricas")
		return
	}

	var jobsFired, skipped int

	for _, credential := range credentials {
		if credential.IsExpired(time.Now()) {
			logrus.WithField("user_id", credential.UserID).Warn("Credencial expirada. Pulando sincronização do usuário")
			skipped++
			continue
		}

		accounts, err := s.accountRepo.ListByUserID(credential.UserID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": credential.UserID,
				"error":   err,
			}).Error("Erro ao listar contas do usuário para sincronização")
			continue
		}

		for _, account := range accounts {
			jobID, err := s.syncService.SyncAllMetrics(credential.UserID, account.ID, credential.AccessToken)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id":    credential.UserID,
					"account_id": account.ID,
					"error":      err,
				}).Error("Erro ao disparar sincronização da conta")
				continue
			}

			logrus.WithFields(logrus.Fields{
				"user_id":    credential.UserID,
				"account_id": account.ID,
				"job_id":     jobID,
			}).Info("Sincronização da conta disparada")
			jobsFired++
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":    duration.String(),
		"credentials": len(credentials),
		"jobs_fired":  jobsFired,
		"skipped":     skipped,
	}).Info("Disparo da sincronização agendada concluído")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}
