package connecting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	metamocks "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/mocks"
	tavusmocks "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus/mocks"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	credentialRepo *mocks.MockCredentialRepository
	accountRepo    *mocks.MockAccountRepository
	campaignRepo   *mocks.MockCampaignRepository
	adSetRepo      *mocks.MockAdSetRepository
	adRepo         *mocks.MockAdRepository
	metricRepo     *mocks.MockMetricRepository
	syncJobRepo    *mocks.MockSyncJobRepository
	avatarRepo     *mocks.MockAvatarRepository
	metaService    *metamocks.MockIntegrator
	tavusService   *tavusmocks.MockIntegrator
}

func newServiceWithMocks(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		credentialRepo: mocks.NewMockCredentialRepository(ctrl),
		accountRepo:    mocks.NewMockAccountRepository(ctrl),
		campaignRepo:   mocks.NewMockCampaignRepository(ctrl),
		adSetRepo:      mocks.NewMockAdSetRepository(ctrl),
		adRepo:         mocks.NewMockAdRepository(ctrl),
		metricRepo:     mocks.NewMockMetricRepository(ctrl),
		syncJobRepo:    mocks.NewMockSyncJobRepository(ctrl),
		avatarRepo:     mocks.NewMockAvatarRepository(ctrl),
		metaService:    metamocks.NewMockIntegrator(ctrl),
		tavusService:   tavusmocks.NewMockIntegrator(ctrl),
	}

	service := &Service{
		credentialRepository: m.credentialRepo,
		accountRepository:    m.accountRepo,
		campaignRepository:   m.campaignRepo,
		adSetRepository:      m.adSetRepo,
		adRepository:         m.adRepo,
		metricRepository:     m.metricRepo,
		syncJobRepository:    m.syncJobRepo,
		avatarRepository:     m.avatarRepo,
		metaService:          m.metaService,
		tavusService:         m.tavusService,
		cache:                newCredentialCache(),
	}

	return service, m
}

func TestService_ConnectMeta(t *testing.T) {
	t.Run("Código ausente é rejeitado sem chamada ao provedor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newServiceWithMocks(ctrl)

		response, err := service.ConnectMeta(context.Background(), "user_1", "")

		assert.Nil(t, response)
		assert.ErrorIs(t, err, ErrCodeRequired)
	})

	t.Run("Conexão com sucesso persiste a credencial com a expiração informada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		m.metaService.EXPECT().
			ExchangeCode(gomock.Any(), "auth_code").
			Return("long_lived_token", int64(3600), nil)

		m.metaService.EXPECT().
			VerifyAdPermissions(gomock.Any(), "long_lived_token").
			Return(true, nil)

		m.credentialRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(cred *domain.Credential) error {
				assert.Equal(t, "user_1", cred.UserID)
				assert.Equal(t, domain.ProviderMeta, cred.Provider)
				assert.Equal(t, "long_lived_token", cred.AccessToken)
				assert.True(t, cred.HasAdPermissions)
				return nil
			})

		response, err := service.ConnectMeta(context.Background(), "user_1", "auth_code")

		assert.NoError(t, err)
		assert.True(t, response.Connected)
		assert.True(t, response.HasAdPermissions)
		assert.Empty(t, response.Warning)
	})

	t.Run("Falha na sonda de permissões não bloqueia a conexão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		m.metaService.EXPECT().
			ExchangeCode(gomock.Any(), "auth_code").
			Return("token", int64(0), nil)

		m.metaService.EXPECT().
			VerifyAdPermissions(gomock.Any(), "token").
			Return(false, errors.New("timeout"))

		m.credentialRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(cred *domain.Credential) error {
				assert.False(t, cred.HasAdPermissions)
				// expires_in ausente recebe o TTL mínimo de uma hora
				assert.WithinDuration(t, time.Now().UTC().Add(fallbackTokenTTL), cred.ExpiresAt, time.Minute)
				return nil
			})

		response, err := service.ConnectMeta(context.Background(), "user_1", "auth_code")

		assert.NoError(t, err)
		assert.True(t, response.Connected)
		assert.False(t, response.HasAdPermissions)
		assert.NotEmpty(t, response.Warning)
	})

	t.Run("Expiração do token a partir de expires_in", func(t *testing.T) {
		tests := []struct {
			name      string
			expiresIn int64
			expected  time.Duration
		}{
			{name: "Valor positivo é respeitado", expiresIn: 5183944, expected: 5183944 * time.Second},
			{name: "Zero recebe o TTL mínimo", expiresIn: 0, expected: fallbackTokenTTL},
			{name: "Negativo recebe o TTL mínimo", expiresIn: -300, expected: fallbackTokenTTL},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				service, m := newServiceWithMocks(ctrl)

				m.metaService.EXPECT().
					ExchangeCode(gomock.Any(), "auth_code").
					Return("token", tt.expiresIn, nil)

				m.metaService.EXPECT().
					VerifyAdPermissions(gomock.Any(), "token").
					Return(true, nil)

				m.credentialRepo.EXPECT().
					SaveOrUpdate(gomock.Any()).
					DoAndReturn(func(cred *domain.Credential) error {
						assert.WithinDuration(t, time.Now().UTC().Add(tt.expected), cred.ExpiresAt, time.Minute)
						return nil
					})

				response, err := service.ConnectMeta(context.Background(), "user_1", "auth_code")

				assert.NoError(t, err)
				assert.True(t, response.Connected)
			})
		}
	})

	t.Run("Troca de código recusada propaga falha do provedor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		m.metaService.EXPECT().
			ExchangeCode(gomock.Any(), "bad_code").
			Return("", int64(0), errors.New("invalid code"))

		response, err := service.ConnectMeta(context.Background(), "user_1", "bad_code")

		assert.Nil(t, response)
		assert.ErrorIs(t, err, ErrTokenExchange)
	})
}

func TestService_ResolveCredential(t *testing.T) {
	t.Run("Credencial ausente exige conexão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		m.credentialRepo.EXPECT().
			GetByUserID("user_1", domain.ProviderMeta).
			Return(nil, nil)

		credential, err := service.ResolveCredential("user_1", domain.ProviderMeta)

		assert.Nil(t, credential)
		assert.ErrorIs(t, err, ErrCredentialMissing)
	})

	t.Run("Credencial expirada exige reconexão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		m.credentialRepo.EXPECT().
			GetByUserID("user_1", domain.ProviderMeta).
			Return(&domain.Credential{
				UserID:    "user_1",
				Provider:  domain.ProviderMeta,
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil)

		credential, err := service.ResolveCredential("user_1", domain.ProviderMeta)

		assert.Nil(t, credential)
		assert.ErrorIs(t, err, ErrCredentialExpired)

		var connErr *ConnectionError
		assert.ErrorAs(t, err, &connErr)
		assert.Equal(t, apiErrors.ErrCredentialExpired, connErr.APICode())
	})

	t.Run("Segunda resolução vem do cache sem ida ao banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		valid := &domain.Credential{
			UserID:      "user_1",
			Provider:    domain.ProviderMeta,
			AccessToken: "token",
			ExpiresAt:   time.Now().Add(time.Hour),
		}

		// Apenas uma consulta esperada, mesmo com duas resoluções
		m.credentialRepo.EXPECT().
			GetByUserID("user_1", domain.ProviderMeta).
			Return(valid, nil).
			Times(1)

		first, err := service.ResolveCredential("user_1", domain.ProviderMeta)
		assert.NoError(t, err)

		second, err := service.ResolveCredential("user_1", domain.ProviderMeta)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestService_Disconnect_Meta(t *testing.T) {
	t.Run("Cascata completa na ordem folha para raiz", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		gomock.InOrder(
			m.metricRepo.EXPECT().DeleteByUserID(domain.LevelAd, "user_1").Return(nil),
			m.adRepo.EXPECT().DeleteByUserID("user_1").Return(nil),
			m.metricRepo.EXPECT().DeleteByUserID(domain.LevelAdSet, "user_1").Return(nil),
			m.adSetRepo.EXPECT().DeleteByUserID("user_1").Return(nil),
			m.metricRepo.EXPECT().DeleteByUserID(domain.LevelCampaign, "user_1").Return(nil),
			m.campaignRepo.EXPECT().DeleteByUserID("user_1").Return(nil),
			m.accountRepo.EXPECT().DeleteByUserID("user_1").Return(nil),
			m.syncJobRepo.EXPECT().DeleteByUserID("user_1").Return(nil),
			m.credentialRepo.EXPECT().Delete("user_1", domain.ProviderMeta).Return(nil),
		)

		outcome, err := service.Disconnect("user_1", domain.ProviderMeta)

		assert.NoError(t, err)
		assert.True(t, outcome.Disconnected)
		assert.Len(t, outcome.Steps, 9)
		for _, step := range outcome.Steps {
			assert.True(t, step.Success, "etapa %s deveria ter sucesso", step.Name)
		}
	})

	t.Run("Falha em etapa intermediária não interrompe a cascata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		m.metricRepo.EXPECT().DeleteByUserID(domain.LevelAd, "user_1").Return(nil)
		m.adRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.metricRepo.EXPECT().DeleteByUserID(domain.LevelAdSet, "user_1").Return(nil)
		m.adSetRepo.EXPECT().DeleteByUserID("user_1").Return(errors.New("deadlock detectado"))
		m.metricRepo.EXPECT().DeleteByUserID(domain.LevelCampaign, "user_1").Return(nil)
		m.campaignRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.accountRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.syncJobRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.credentialRepo.EXPECT().Delete("user_1", domain.ProviderMeta).Return(nil)

		outcome, err := service.Disconnect("user_1", domain.ProviderMeta)

		// A credencial caiu, então a desconexão vale mesmo com resíduo
		assert.NoError(t, err)
		assert.True(t, outcome.Disconnected)

		var failed []string
		for _, step := range outcome.Steps {
			if !step.Success {
				failed = append(failed, step.Name)
			}
		}
		assert.Equal(t, []string{"ad_sets"}, failed)
	})

	t.Run("Falha ao remover a credencial marca a desconexão como falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newServiceWithMocks(ctrl)

		m.metricRepo.EXPECT().DeleteByUserID(gomock.Any(), "user_1").Return(nil).Times(3)
		m.adRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.adSetRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.campaignRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.accountRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.syncJobRepo.EXPECT().DeleteByUserID("user_1").Return(nil)
		m.credentialRepo.EXPECT().Delete("user_1", domain.ProviderMeta).Return(errors.New("conexão perdida"))

		outcome, err := service.Disconnect("user_1", domain.ProviderMeta)

		assert.Error(t, err)
		assert.False(t, outcome.Disconnected)
	})
}

func TestService_Disconnect_Tavus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	gomock.InOrder(
		m.avatarRepo.EXPECT().DeleteVideosByUserID("user_1").Return(nil),
		m.credentialRepo.EXPECT().Delete("user_1", domain.ProviderTavus).Return(nil),
	)

	outcome, err := service.Disconnect("user_1", domain.ProviderTavus)

	assert.NoError(t, err)
	assert.True(t, outcome.Disconnected)
	assert.Len(t, outcome.Steps, 2)
}

func TestService_Disconnect_InvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newServiceWithMocks(ctrl)

	valid := &domain.Credential{
		UserID:      "user_1",
		Provider:    domain.ProviderTavus,
		AccessToken: "key",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	service.cache.put(valid)

	m.avatarRepo.EXPECT().DeleteVideosByUserID("user_1").Return(nil)
	m.credentialRepo.EXPECT().Delete("user_1", domain.ProviderTavus).Return(nil)

	_, err := service.Disconnect("user_1", domain.ProviderTavus)
	assert.NoError(t, err)

	// Após desconectar, a resolução volta ao banco e encontra nada
	m.credentialRepo.EXPECT().
		GetByUserID("user_1", domain.ProviderTavus).
		Return(nil, nil)

	credential, err := service.ResolveCredential("user_1", domain.ProviderTavus)
	assert.Nil(t, credential)
	assert.ErrorIs(t, err, ErrCredentialMissing)
}
