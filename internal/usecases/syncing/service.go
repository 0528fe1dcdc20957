package syncing

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

// syncTimeout limita a caminhada completa de uma conta. Contas grandes com
// paginação lenta encerram como failed em vez de segurar a goroutine.
const syncTimeout = 15 * time.Minute

type SyncService interface {
	SyncAllMetrics(userID, accountID, token string) (string, error)
	GetSyncJob(userID, jobID string) (*domain.SyncJob, error)
	GetEntityMetrics(userID string, level domain.EntityLevel, entityID string, days int) ([]*domain.MetricRow, error)
}

type Service struct {
	accountRepository  repository.AccountRepository
	campaignRepository repository.CampaignRepository
	adSetRepository    repository.AdSetRepository
	adRepository       repository.AdRepository
	metricRepository   repository.MetricRepository
	syncJobRepository  repository.SyncJobRepository
	metaService        meta.Integrator
	cfg                *config.Config
}

func NewService(
	accountRepository repository.AccountRepository,
	campaignRepository repository.CampaignRepository,
	adSetRepository repository.AdSetRepository,
	adRepository repository.AdRepository,
	metricRepository repository.MetricRepository,
	syncJobRepository repository.SyncJobRepository,
	metaService meta.Integrator,
	cfg *config.Config,
) SyncService {
	return &Service{
		accountRepository:  accountRepository,
		campaignRepository: campaignRepository,
		adSetRepository:    adSetRepository,
		adRepository:       adRepository,
		metricRepository:   metricRepository,
		syncJobRepository:  syncJobRepository,
		metaService:        metaService,
		cfg:                cfg,
	}
}

// SyncAllMetrics registra o job e dispara a caminhada em background. O
// chamador recebe o id imediatamente e acompanha o progresso por polling.
func (s *Service) SyncAllMetrics(userID, accountID, token string) (string, error) {
	account, err := s.accountRepository.GetByID(accountID)
	if err != nil {
		return "", NewSyncError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar a conta de anúncios")
	}
	if account == nil || account.UserID != userID {
		return "", NewSyncError(ErrAccountNotFound, apiErrors.ErrNotFound, "Conta de anúncios não encontrada para o usuário")
	}

	job, err := s.syncJobRepository.Create(&domain.SyncJob{
		UserID:      userID,
		AdAccountID: accountID,
	})
	if err != nil {
		return "", NewSyncError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao registrar o job de sincronização")
	}

	go s.runSync(job, account, token)

	return job.ID, nil
}

func (s *Service) GetSyncJob(userID, jobID string) (*domain.SyncJob, error) {
	job, err := s.syncJobRepository.GetByID(jobID)
	if err != nil {
		return nil, NewSyncError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o job de sincronização")
	}
	if job == nil || job.UserID != userID {
		return nil, NewSyncError(ErrJobNotFound, apiErrors.ErrNotFound, "Job de sincronização não encontrado")
	}

	return job, nil
}

// GetEntityMetrics lê as linhas diárias armazenadas de uma entidade nos
// últimos dias. Nunca consulta o provedor: leitura é sempre local.
func (s *Service) GetEntityMetrics(userID string, level domain.EntityLevel, entityID string, days int) ([]*domain.MetricRow, error) {
	owned, err := s.entityBelongsToUser(level, entityID, userID)
	if err != nil {
		return nil, NewSyncError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao resolver a entidade")
	}
	if !owned {
		return nil, NewSyncError(ErrAccountNotFound, apiErrors.ErrNotFound, "Entidade não encontrada para o usuário")
	}

	end := utils.TruncateToDay(time.Now().UTC())
	start := end.AddDate(0, 0, -days)

	rows, err := s.metricRepository.GetByEntityAndRange(level, entityID, start, end)
	if err != nil {
		return nil, NewSyncError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar métricas")
	}

	return rows, nil
}

// issueCollector acumula falhas isoladas da caminhada com segurança para
// uso pelas goroutines do fan-out.
type issueCollector struct {
	mu     sync.Mutex
	issues []domain.SyncIssue
}

func (c *issueCollector) add(level domain.EntityLevel, entityID string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issues = append(c.issues, domain.SyncIssue{
		Level:    level.String(),
		EntityID: entityID,
		Message:  err.Error(),
	})
}

// runSync executa a caminhada completa da hierarquia. Falha na listagem de
// campanhas da conta derruba o job; qualquer falha abaixo disso vira
// pendência e o job encerra como completed.
func (s *Service) runSync(job *domain.SyncJob, account *domain.AdAccount, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	logger := logrus.WithFields(logrus.Fields{
		"job_id":     job.ID,
		"account_id": account.ID,
	})
	logger.Info("Iniciando sincronização de métricas")

	if err := s.syncJobRepository.MarkRunning(job.ID); err != nil {
		logger.WithField("error", err).Error("Falha ao marcar job como running")
		// Sem estado terminal o chamador ficaria em polling para sempre
		if failErr := s.syncJobRepository.Fail(job.ID, "falha ao iniciar a sincronização"); failErr != nil {
			logger.WithField("error", failErr).Error("Falha ao marcar job como failed")
		}
		return
	}

	until := utils.TruncateToDay(time.Now().UTC())
	since := until.AddDate(0, 0, -s.cfg.MetricsSync.LookbackDays)

	collector := &issueCollector{}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.cfg.MetricsSync.MaxConcurrentJobs)

	campaignEntities, err := s.metaService.ListChildren(ctx, domain.LevelCampaign, account.ExternalID, token)
	if err != nil {
		logger.WithField("error", err).Error("Falha ao listar campanhas da conta")
		if failErr := s.syncJobRepository.Fail(job.ID, err.Error()); failErr != nil {
			logger.WithField("error", failErr).Error("Falha ao marcar job como failed")
		}
		return
	}

	for i := range campaignEntities {
		entity := campaignEntities[i]

		campaign, err := s.campaignRepository.SaveOrUpdate(&domain.Campaign{
			AdAccountID:    account.ID,
			ExternalID:     entity.ID,
			Name:           entity.Name,
			Status:         domain.EntityStatus(entity.Status),
			Objective:      entity.Objective,
			DailyBudget:    parseBudget(entity.DailyBudget),
			LifetimeBudget: parseBudget(entity.LifetimeBudget),
		})
		if err != nil {
			collector.add(domain.LevelCampaign, entity.ID, err)
			continue
		}

		s.collectMetrics(ctx, domain.LevelCampaign, campaign.ID, entity.ID, token, since, until, collector, &wg, semaphore)
		s.walkAdSets(ctx, campaign, entity.ID, token, since, until, collector, &wg, semaphore)
	}

	wg.Wait()

	if err := s.syncJobRepository.Complete(job.ID, collector.issues); err != nil {
		logger.WithField("error", err).Error("Falha ao marcar job como completed")
		return
	}

	logger.WithField("issues", len(collector.issues)).Info("Sincronização de métricas concluída")
}

func (s *Service) walkAdSets(
	ctx context.Context,
	campaign *domain.Campaign,
	campaignExternalID, token string,
	since, until time.Time,
	collector *issueCollector,
	wg *sync.WaitGroup,
	semaphore chan struct{},
) {
	entities, err := s.metaService.ListChildren(ctx, domain.LevelAdSet, campaignExternalID, token)
	if err != nil {
		collector.add(domain.LevelAdSet, campaignExternalID, err)
		return
	}

	for i := range entities {
		entity := entities[i]

		adSet, err := s.adSetRepository.SaveOrUpdate(&domain.AdSet{
			CampaignID:     campaign.ID,
			ExternalID:     entity.ID,
			Name:           entity.Name,
			Status:         domain.EntityStatus(entity.Status),
			DailyBudget:    parseBudget(entity.DailyBudget),
			LifetimeBudget: parseBudget(entity.LifetimeBudget),
		})
		if err != nil {
			collector.add(domain.LevelAdSet, entity.ID, err)
			continue
		}

		s.collectMetrics(ctx, domain.LevelAdSet, adSet.ID, entity.ID, token, since, until, collector, wg, semaphore)
		s.walkAds(ctx, adSet, entity.ID, token, since, until, collector, wg, semaphore)
	}
}

func (s *Service) walkAds(
	ctx context.Context,
	adSet *domain.AdSet,
	adSetExternalID, token string,
	since, until time.Time,
	collector *issueCollector,
	wg *sync.WaitGroup,
	semaphore chan struct{},
) {
	entities, err := s.metaService.ListChildren(ctx, domain.LevelAd, adSetExternalID, token)
	if err != nil {
		collector.add(domain.LevelAd, adSetExternalID, err)
		return
	}

	for i := range entities {
		entity := entities[i]

		ad, err := s.adRepository.SaveOrUpdate(&domain.Ad{
			AdSetID:    adSet.ID,
			ExternalID: entity.ID,
			Name:       entity.Name,
			Status:     domain.EntityStatus(entity.Status),
		})
		if err != nil {
			collector.add(domain.LevelAd, entity.ID, err)
			continue
		}

		s.collectMetrics(ctx, domain.LevelAd, ad.ID, entity.ID, token, since, until, collector, wg, semaphore)
	}
}

// collectMetrics busca e grava as métricas de uma entidade. O semáforo
// limita o número de buscas simultâneas no provedor.
func (s *Service) collectMetrics(
	ctx context.Context,
	level domain.EntityLevel,
	localID, externalID, token string,
	since, until time.Time,
	collector *issueCollector,
	wg *sync.WaitGroup,
	semaphore chan struct{},
) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		semaphore <- struct{}{}
		defer func() { <-semaphore }()

		rows, err := s.metaService.GetEntityMetrics(ctx, externalID, token, since, until)
		if err != nil {
			collector.add(level, externalID, err)
			return
		}

		for _, row := range rows {
			row.EntityID = localID
			if err := s.metricRepository.SaveOrUpdate(level, row); err != nil {
				collector.add(level, externalID, err)
				return
			}
		}
	}()
}

// entityBelongsToUser sobe a hierarquia até a conta para confirmar que a
// entidade pertence ao usuário. Entidade de outro usuário é indistinguível
// de inexistente.
func (s *Service) entityBelongsToUser(level domain.EntityLevel, entityID, userID string) (bool, error) {
	var campaignID string

	switch level {
	case domain.LevelAd:
		ad, err := s.adRepository.GetByID(entityID)
		if err != nil {
			return false, err
		}
		if ad == nil {
			return false, nil
		}

		adSet, err := s.adSetRepository.GetByID(ad.AdSetID)
		if err != nil {
			return false, err
		}
		if adSet == nil {
			return false, nil
		}
		campaignID = adSet.CampaignID

	case domain.LevelAdSet:
		adSet, err := s.adSetRepository.GetByID(entityID)
		if err != nil {
			return false, err
		}
		if adSet == nil {
			return false, nil
		}
		campaignID = adSet.CampaignID

	case domain.LevelCampaign:
		campaignID = entityID
	}

	campaign, err := s.campaignRepository.GetByID(campaignID)
	if err != nil {
		return false, err
	}
	if campaign == nil {
		return false, nil
	}

	account, err := s.accountRepository.GetByID(campaign.AdAccountID)
	if err != nil {
		return false, err
	}

	return account != nil && account.UserID == userID, nil
}

func parseBudget(value string) *int64 {
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}

	return &parsed
}
