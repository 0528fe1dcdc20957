package syncing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type syncMocks struct {
	accountRepo  *mocks.MockAccountRepository
	campaignRepo *mocks.MockCampaignRepository
	adSetRepo    *mocks.MockAdSetRepository
	adRepo       *mocks.MockAdRepository
	metricRepo   *mocks.MockMetricRepository
	syncJobRepo  *mocks.MockSyncJobRepository
	metaService  *metamocks.MockIntegrator
}

func newSyncService(ctrl *gomock.Controller) (*Service, *syncMocks) {
	m := &syncMocks{
		accountRepo:  mocks.NewMockAccountRepository(ctrl),
		campaignRepo: mocks.NewMockCampaignRepository(ctrl),
		adSetRepo:    mocks.NewMockAdSetRepository(ctrl),
		adRepo:       mocks.NewMockAdRepository(ctrl),
		metricRepo:   mocks.NewMockMetricRepository(ctrl),
		syncJobRepo:  mocks.NewMockSyncJobRepository(ctrl),
		metaService:  metamocks.NewMockIntegrator(ctrl),
	}

	service := &Service{
		accountRepository:  m.accountRepo,
		campaignRepository: m.campaignRepo,
		adSetRepository:    m.adSetRepo,
		adRepository:       m.adRepo,
		metricRepository:   m.metricRepo,
		syncJobRepository:  m.syncJobRepo,
		metaService:        m.metaService,
		cfg: &config.Config{
			MetricsSync: config.MetricsSync{
				LookbackDays:      7,
				MaxConcurrentJobs: 2,
			},
		},
	}

	return service, m
}

func TestService_GetSyncJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)

	t.Run("Job de outro usuário é indistinguível de inexistente", func(t *testing.T) {
		m.syncJobRepo.EXPECT().
			GetByID("job_1").
			Return(&domain.SyncJob{ID: "job_1", UserID: "outro"}, nil)

		job, err := service.GetSyncJob("user_1", "job_1")

		assert.Nil(t, job)
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("Job inexistente", func(t *testing.T) {
		m.syncJobRepo.EXPECT().
			GetByID("job_x").
			Return(nil, nil)

		job, err := service.GetSyncJob("user_1", "job_x")

		assert.Nil(t, job)
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("Job do próprio usuário é retornado", func(t *testing.T) {
		expected := &domain.SyncJob{ID: "job_1", UserID: "user_1", Status: domain.SyncJobCompleted}

		m.syncJobRepo.EXPECT().
			GetByID("job_1").
			Return(expected, nil)

		job, err := service.GetSyncJob("user_1", "job_1")

		assert.NoError(t, err)
		assert.Equal(t, expected, job)
	})
}

func TestService_GetEntityMetrics_Ownership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)

	t.Run("Anúncio sobe a hierarquia completa até a conta", func(t *testing.T) {
		m.adRepo.EXPECT().GetByID("ad_1").Return(&domain.Ad{ID: "ad_1", AdSetID: "as_1"}, nil)
		m.adSetRepo.EXPECT().GetByID("as_1").Return(&domain.AdSet{ID: "as_1", CampaignID: "cmp_1"}, nil)
		m.campaignRepo.EXPECT().GetByID("cmp_1").Return(&domain.Campaign{ID: "cmp_1", AdAccountID: "acc_1"}, nil)
		m.accountRepo.EXPECT().GetByID("acc_1").Return(&domain.AdAccount{ID: "acc_1", UserID: "user_1"}, nil)

		m.metricRepo.EXPECT().
			GetByEntityAndRange(domain.LevelAd, "ad_1", gomock.Any(), gomock.Any()).
			Return([]*domain.MetricRow{{EntityID: "ad_1", Impressions: 10}}, nil)

		rows, err := service.GetEntityMetrics("user_1", domain.LevelAd, "ad_1", 7)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("Entidade de outro usuário não é encontrada", func(t *testing.T) {
		m.campaignRepo.EXPECT().GetByID("cmp_1").Return(&domain.Campaign{ID: "cmp_1", AdAccountID: "acc_1"}, nil)
		m.accountRepo.EXPECT().GetByID("acc_1").Return(&domain.AdAccount{ID: "acc_1", UserID: "outro"}, nil)

		rows, err := service.GetEntityMetrics("user_1", domain.LevelCampaign, "cmp_1", 7)

		assert.Nil(t, rows)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("Entidade inexistente não consulta métricas", func(t *testing.T) {
		m.adSetRepo.EXPECT().GetByID("as_x").Return(nil, nil)

		rows, err := service.GetEntityMetrics("user_1", domain.LevelAdSet, "as_x", 7)

		assert.Nil(t, rows)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestService_RunSync(t *testing.T) {
	t.Run("Caminhada completa grava métricas com os ids locais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newSyncService(ctrl)

		job := &domain.SyncJob{ID: "job_1", UserID: "user_1", AdAccountID: "acc_1"}
		account := &domain.AdAccount{ID: "acc_1", UserID: "user_1", ExternalID: "act_999"}

		m.syncJobRepo.EXPECT().MarkRunning("job_1").Return(nil)

		m.metaService.EXPECT().
			ListChildren(gomock.Any(), domain.LevelCampaign, "act_999", "token").
			Return([]metadomain.Entity{
				{ID: "cmp_ext_1", Name: "Campanha", Status: "ACTIVE", DailyBudget: "1000"},
			}, nil)

		m.campaignRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				assert.Equal(t, "acc_1", c.AdAccountID)
				assert.Equal(t, "cmp_ext_1", c.ExternalID)
				assert.Equal(t, int64(1000), *c.DailyBudget)
				c.ID = "cmp_local_1"
				return c, nil
			})

		m.metaService.EXPECT().
			ListChildren(gomock.Any(), domain.LevelAdSet, "cmp_ext_1", "token").
			Return([]metadomain.Entity{
				{ID: "as_ext_1", Name: "Conjunto", Status: "ACTIVE"},
			}, nil)

		m.adSetRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(a *domain.AdSet) (*domain.AdSet, error) {
				assert.Equal(t, "cmp_local_1", a.CampaignID)
				a.ID = "as_local_1"
				return a, nil
			})

		m.metaService.EXPECT().
			ListChildren(gomock.Any(), domain.LevelAd, "as_ext_1", "token").
			Return([]metadomain.Entity{}, nil)

		// Métricas da campanha e do conjunto, gravadas com o id local
		m.metaService.EXPECT().
			GetEntityMetrics(gomock.Any(), "cmp_ext_1", "token", gomock.Any(), gomock.Any()).
			Return([]*domain.MetricRow{{Impressions: 100}}, nil)
		m.metaService.EXPECT().
			GetEntityMetrics(gomock.Any(), "as_ext_1", "token", gomock.Any(), gomock.Any()).
			Return([]*domain.MetricRow{{Impressions: 40}}, nil)

		m.metricRepo.EXPECT().
			SaveOrUpdate(domain.LevelCampaign, gomock.Any()).
			DoAndReturn(func(_ domain.EntityLevel, row *domain.MetricRow) error {
				assert.Equal(t, "cmp_local_1", row.EntityID)
				return nil
			})
		m.metricRepo.EXPECT().
			SaveOrUpdate(domain.LevelAdSet, gomock.Any()).
			DoAndReturn(func(_ domain.EntityLevel, row *domain.MetricRow) error {
				assert.Equal(t, "as_local_1", row.EntityID)
				return nil
			})

		m.syncJobRepo.EXPECT().
			Complete("job_1", gomock.Any()).
			DoAndReturn(func(_ string, issues []domain.SyncIssue) error {
				assert.Empty(t, issues)
				return nil
			})

		service.runSync(job, account, "token")
	})

	t.Run("Falha ao marcar running ainda leva o job ao estado terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newSyncService(ctrl)

		job := &domain.SyncJob{ID: "job_1", UserID: "user_1", AdAccountID: "acc_1"}
		account := &domain.AdAccount{ID: "acc_1", UserID: "user_1", ExternalID: "act_999"}

		m.syncJobRepo.EXPECT().MarkRunning("job_1").Return(assert.AnError)
		m.syncJobRepo.EXPECT().Fail("job_1", "falha ao iniciar a sincronização").Return(nil)

		service.runSync(job, account, "token")
	})

	t.Run("Falha na listagem de campanhas derruba o job", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newSyncService(ctrl)

		job := &domain.SyncJob{ID: "job_1", UserID: "user_1", AdAccountID: "acc_1"}
		account := &domain.AdAccount{ID: "acc_1", UserID: "user_1", ExternalID: "act_999"}

		m.syncJobRepo.EXPECT().MarkRunning("job_1").Return(nil)

		m.metaService.EXPECT().
			ListChildren(gomock.Any(), domain.LevelCampaign, "act_999", "token").
			Return(nil, errors.New("rate limit atingido"))

		m.syncJobRepo.EXPECT().Fail("job_1", "rate limit atingido").Return(nil)

		service.runSync(job, account, "token")
	})

	t.Run("Falha abaixo da conta vira pendência e o job completa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newSyncService(ctrl)

		job := &domain.SyncJob{ID: "job_1", UserID: "user_1", AdAccountID: "acc_1"}
		account := &domain.AdAccount{ID: "acc_1", UserID: "user_1", ExternalID: "act_999"}

		m.syncJobRepo.EXPECT().MarkRunning("job_1").Return(nil)

		m.metaService.EXPECT().
			ListChildren(gomock.Any(), domain.LevelCampaign, "act_999", "token").
			Return([]metadomain.Entity{
				{ID: "cmp_ext_1", Name: "Campanha", Status: "ACTIVE"},
			}, nil)

		m.campaignRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				c.ID = "cmp_local_1"
				return c, nil
			})

		// A listagem de conjuntos falha; métricas da campanha seguem normais
		m.metaService.EXPECT().
			ListChildren(gomock.Any(), domain.LevelAdSet, "cmp_ext_1", "token").
			Return(nil, errors.New("expansão indisponível"))

		m.metaService.EXPECT().
			GetEntityMetrics(gomock.Any(), "cmp_ext_1", "token", gomock.Any(), gomock.Any()).
			Return([]*domain.MetricRow{{Impressions: 10}}, nil)

		m.metricRepo.EXPECT().
			SaveOrUpdate(domain.LevelCampaign, gomock.Any()).
			Return(nil)

		m.syncJobRepo.EXPECT().
			Complete("job_1", gomock.Any()).
			DoAndReturn(func(_ string, issues []domain.SyncIssue) error {
				assert.Len(t, issues, 1)
				assert.Equal(t, "adset", issues[0].Level)
				assert.Equal(t, "cmp_ext_1", issues[0].EntityID)
				return nil
			})

		service.runSync(job, account, "token")
	})
}

func TestService_SyncAllMetrics_AccountOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newSyncService(ctrl)

	m.accountRepo.EXPECT().
		GetByID("acc_1").
		Return(&domain.AdAccount{ID: "acc_1", UserID: "outro"}, nil)

	jobID, err := service.SyncAllMetrics("user_1", "acc_1", "token")

	assert.Empty(t, jobID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestParseBudget(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *int64
	}{
		{name: "Valor numérico é convertido", input: "1500", expected: func() *int64 { v := int64(1500); return &v }()},
		{name: "Vazio vira nil", input: "", expected: nil},
		{name: "Não numérico vira nil", input: "abc", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseBudget(tt.input)

			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				assert.Equal(t, *tt.expected, *result)
			}
		})
	}
}
