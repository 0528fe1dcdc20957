package reporting

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/syncing"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

// Janela padrão do documento de contexto servido ao chat.
const aiContextWindowDays = 30

// ReportingService agrega as métricas armazenadas de uma entidade. As taxas
// derivadas (CTR, CPC, CPM, taxa de conversão, frequência média) são sempre
// calculadas na leitura a partir dos contadores brutos.
type ReportingService interface {
	Summarize(userID string, level domain.EntityLevel, entityID string, windowDays int) (*domain.MetricsSummary, error)
	BuildAIContext(userID string) (*domain.AIContext, error)
}

type Service struct {
	syncService        syncing.SyncService
	accountRepository  repository.AccountRepository
	campaignRepository repository.CampaignRepository
}

func NewService(
	syncService syncing.SyncService,
	accountRepository repository.AccountRepository,
	campaignRepository repository.CampaignRepository,
) ReportingService {
	return &Service{
		syncService:        syncService,
		accountRepository:  accountRepository,
		campaignRepository: campaignRepository,
	}
}

func (s *Service) Summarize(userID string, level domain.EntityLevel, entityID string, windowDays int) (*domain.MetricsSummary, error) {
	rows, err := s.syncService.GetEntityMetrics(userID, level, entityID, windowDays)
	if err != nil {
		return nil, err
	}

	summary := &domain.MetricsSummary{
		EntityID:   entityID,
		Level:      level.String(),
		WindowDays: windowDays,
	}

	var spend, frequencySum float64
	var frequencyCount int64

	for _, row := range rows {
		summary.Impressions += row.Impressions
		summary.Clicks += row.Clicks
		summary.Reach += row.Reach
		summary.Conversions += row.Conversions
		spend += row.Spend

		frequencySum += row.Frequency
		frequencyCount++
	}

	summary.Spend = fmt.Sprintf("%.2f", spend)

	impressions := float64(summary.Impressions)
	clicks := float64(summary.Clicks)

	// Divisões protegidas: janelas sem impressões ou cliques produzem zero,
	// nunca NaN ou infinito
	summary.CTR = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(clicks, impressions) * 100)
	summary.CPC = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(spend, clicks))
	summary.CPM = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(spend, impressions) * 1000)
	summary.ConversionRate = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(float64(summary.Conversions), clicks) * 100)
	summary.AvgFrequency = utils.RoundWithTwoDecimalPlace(utils.SafeRatio(frequencySum, float64(frequencyCount)))

	return summary, nil
}

// BuildAIContext monta o documento de contexto consumido pelo colaborador
// de chat: contas do usuário com o resumo recente de cada campanha.
// Campanhas cujo resumo falha são omitidas com aviso, sem derrubar o
// documento inteiro.
func (s *Service) BuildAIContext(userID string) (*domain.AIContext, error) {
	accounts, err := s.accountRepository.ListByUserID(userID)
	if err != nil {
		return nil, err
	}

	context := &domain.AIContext{
		GeneratedAt: time.Now().UTC(),
		WindowDays:  aiContextWindowDays,
		Accounts:    make([]*domain.AIContextAccount, 0, len(accounts)),
	}

	for _, account := range accounts {
		contextAccount := &domain.AIContextAccount{
			ID:        account.ID,
			Name:      account.Name,
			Currency:  account.Currency,
			Campaigns: make([]*domain.AIContextCampaign, 0),
		}

		campaigns, err := s.campaignRepository.ListByAccountID(account.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": account.ID,
				"error":      err,
			}).Warn("Falha ao listar campanhas para o contexto de chat")
			context.Accounts = append(context.Accounts, contextAccount)
			continue
		}

		for _, campaign := range campaigns {
			summary, err := s.Summarize(userID, domain.LevelCampaign, campaign.ID, aiContextWindowDays)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"campaign_id": campaign.ID,
					"error":       err,
				}).Warn("Falha ao resumir campanha para o contexto de chat")
				continue
			}

			contextAccount.Campaigns = append(contextAccount.Campaigns, &domain.AIContextCampaign{
				ID:      campaign.ID,
				Name:    campaign.Name,
				Status:  campaign.Status,
				Summary: summary,
			})
		}

		context.Accounts = append(context.Accounts, contextAccount)
	}

	return context, nil
}
