package mutating

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	metamocks "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func newTestService(ctrl *gomock.Controller) (*Service, *mocks.MockAccountRepository, *mocks.MockCampaignRepository, *mocks.MockAdSetRepository, *mocks.MockAdRepository, *metamocks.MockIntegrator) {
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	adSetRepo := mocks.NewMockAdSetRepository(ctrl)
	adRepo := mocks.NewMockAdRepository(ctrl)
	integrator := metamocks.NewMockIntegrator(ctrl)

	service := &Service{
		accountRepository:  accountRepo,
		campaignRepository: campaignRepo,
		adSetRepository:    adSetRepo,
		adRepository:       adRepo,
		metaService:        integrator,
		validate:           validator.New(),
	}

	return service, accountRepo, campaignRepo, adSetRepo, adRepo, integrator
}

func TestService_CreateCampaign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, accountRepo, campaignRepo, _, _, integrator := newTestService(ctrl)

	account := &domain.AdAccount{ID: "acc_1", UserID: "user_1", ExternalID: "act_999"}

	t.Run("Campos obrigatórios ausentes não devem chamar o provedor", func(t *testing.T) {
		request := &domain.CreateCampaignRequest{
			AdAccountID: "acc_1",
			// Name e Objective ausentes
		}

		campaign, err := service.CreateCampaign(context.Background(), "user_1", request, "token")

		assert.Nil(t, campaign)
		var mutationErr *MutationError
		assert.ErrorAs(t, err, &mutationErr)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, mutationErr.APICode())
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Orçamentos mutuamente exclusivos", func(t *testing.T) {
		request := &domain.CreateCampaignRequest{
			AdAccountID:    "acc_1",
			Name:           "Campanha",
			Objective:      "OUTCOME_TRAFFIC",
			DailyBudget:    int64Ptr(1000),
			LifetimeBudget: int64Ptr(50000),
		}

		campaign, err := service.CreateCampaign(context.Background(), "user_1", request, "token")

		assert.Nil(t, campaign)
		var mutationErr *MutationError
		assert.ErrorAs(t, err, &mutationErr)
		assert.Equal(t, apiErrors.ErrValidationFailed, mutationErr.APICode())
	})

	t.Run("Conta de outro usuário é indistinguível de inexistente", func(t *testing.T) {
		accountRepo.EXPECT().
			GetByID("acc_1").
			Return(&domain.AdAccount{ID: "acc_1", UserID: "outro"}, nil)

		request := &domain.CreateCampaignRequest{
			AdAccountID: "acc_1",
			Name:        "Campanha",
			Objective:   "OUTCOME_TRAFFIC",
		}

		campaign, err := service.CreateCampaign(context.Background(), "user_1", request, "token")

		assert.Nil(t, campaign)
		assert.ErrorIs(t, err, ErrParentNotFound)
	})

	t.Run("Criação com sucesso espelha a campanha com status padrão PAUSED", func(t *testing.T) {
		accountRepo.EXPECT().GetByID("acc_1").Return(account, nil)

		request := &domain.CreateCampaignRequest{
			AdAccountID: "acc_1",
			Name:        "Campanha Nova",
			Objective:   "OUTCOME_TRAFFIC",
			DailyBudget: int64Ptr(2000),
		}

		integrator.EXPECT().
			CreateCampaign(gomock.Any(), "act_999", request, "token").
			Return("cmp_ext_1", nil)

		campaignRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				assert.Equal(t, "acc_1", c.AdAccountID)
				assert.Equal(t, "cmp_ext_1", c.ExternalID)
				assert.Equal(t, domain.StatusPaused, c.Status)
				c.ID = "cmp_1"
				return c, nil
			})

		campaign, err := service.CreateCampaign(context.Background(), "user_1", request, "token")

		assert.NoError(t, err)
		assert.Equal(t, "cmp_1", campaign.ID)
	})

	t.Run("Falha no espelho local não desfaz a criação no provedor", func(t *testing.T) {
		accountRepo.EXPECT().GetByID("acc_1").Return(account, nil)

		request := &domain.CreateCampaignRequest{
			AdAccountID: "acc_1",
			Name:        "Campanha",
			Objective:   "OUTCOME_TRAFFIC",
		}

		integrator.EXPECT().
			CreateCampaign(gomock.Any(), "act_999", request, "token").
			Return("cmp_ext_2", nil)

		campaignRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			Return(nil, errors.New("db indisponível"))

		campaign, err := service.CreateCampaign(context.Background(), "user_1", request, "token")

		assert.NoError(t, err)
		assert.Equal(t, "cmp_ext_2", campaign.ExternalID)
		assert.Empty(t, campaign.ID)
	})
}

func TestService_CreateAdSet_ValidationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, accountRepo, campaignRepo, _, _, _ := newTestService(ctrl)

	account := &domain.AdAccount{ID: "acc_1", UserID: "user_1", ExternalID: "act_999"}
	cboCampaign := &domain.Campaign{ID: "cmp_1", AdAccountID: "acc_1", ExternalID: "cmp_ext_1", DailyBudget: int64Ptr(5000)}
	aboCampaign := &domain.Campaign{ID: "cmp_2", AdAccountID: "acc_1", ExternalID: "cmp_ext_2"}

	tests := []struct {
		name    string
		request *domain.CreateAdSetRequest
		setup   func()
	}{
		{
			name: "Campanha com CBO rejeita orçamento no conjunto",
			request: &domain.CreateAdSetRequest{
				CampaignID:       "cmp_1",
				Name:             "Conjunto",
				OptimizationGoal: "LINK_CLICKS",
				BillingEvent:     "IMPRESSIONS",
				DailyBudget:      int64Ptr(1000),
			},
			setup: func() {
				campaignRepo.EXPECT().GetByID("cmp_1").Return(cboCampaign, nil)
				accountRepo.EXPECT().GetByID("acc_1").Return(account, nil)
			},
		},
		{
			name: "Campanha sem CBO exige orçamento no conjunto",
			request: &domain.CreateAdSetRequest{
				CampaignID:       "cmp_2",
				Name:             "Conjunto",
				OptimizationGoal: "LINK_CLICKS",
				BillingEvent:     "IMPRESSIONS",
			},
			setup: func() {
				campaignRepo.EXPECT().GetByID("cmp_2").Return(aboCampaign, nil)
				accountRepo.EXPECT().GetByID("acc_1").Return(account, nil)
			},
		},
		{
			name: "Par de otimização e cobrança incompatível",
			request: &domain.CreateAdSetRequest{
				CampaignID:       "cmp_2",
				Name:             "Conjunto",
				OptimizationGoal: "REACH",
				BillingEvent:     "LINK_CLICKS",
				DailyBudget:      int64Ptr(1000),
			},
			setup: func() {
				campaignRepo.EXPECT().GetByID("cmp_2").Return(aboCampaign, nil)
				accountRepo.EXPECT().GetByID("acc_1").Return(account, nil)
			},
		},
		{
			name: "Estratégia com teto manual exige bid_amount",
			request: &domain.CreateAdSetRequest{
				CampaignID:       "cmp_2",
				Name:             "Conjunto",
				OptimizationGoal: "LINK_CLICKS",
				BillingEvent:     "IMPRESSIONS",
				BidStrategy:      "LOWEST_COST_WITH_BID_CAP",
				DailyBudget:      int64Ptr(1000),
			},
			setup: func() {
				campaignRepo.EXPECT().GetByID("cmp_2").Return(aboCampaign, nil)
				accountRepo.EXPECT().GetByID("acc_1").Return(account, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			// Nenhum EXPECT no integrator: a validação deve barrar a
			// requisição antes de qualquer chamada de rede
			adSet, err := service.CreateAdSet(context.Background(), "user_1", tt.request, "token")

			assert.Nil(t, adSet)
			var mutationErr *MutationError
			assert.ErrorAs(t, err, &mutationErr)
			assert.Equal(t, apiErrors.ErrValidationFailed, mutationErr.APICode())
		})
	}
}

func TestService_CreateAdSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, accountRepo, campaignRepo, adSetRepo, _, integrator := newTestService(ctrl)

	account := &domain.AdAccount{ID: "acc_1", UserID: "user_1", ExternalID: "act_999"}
	campaign := &domain.Campaign{ID: "cmp_1", AdAccountID: "acc_1", ExternalID: "cmp_ext_1", DailyBudget: int64Ptr(5000)}

	campaignRepo.EXPECT().GetByID("cmp_1").Return(campaign, nil)
	accountRepo.EXPECT().GetByID("acc_1").Return(account, nil)

	request := &domain.CreateAdSetRequest{
		CampaignID:       "cmp_1",
		Name:             "Conjunto Ativo",
		Status:           "ACTIVE",
		OptimizationGoal: "LINK_CLICKS",
		BillingEvent:     "LINK_CLICKS",
		BidStrategy:      "COST_CAP",
		BidAmount:        int64Ptr(150),
	}

	integrator.EXPECT().
		CreateAdSet(gomock.Any(), "cmp_ext_1", request, "token").
		Return("as_ext_1", nil)

	adSetRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(a *domain.AdSet) (*domain.AdSet, error) {
			assert.Equal(t, "cmp_1", a.CampaignID)
			assert.Equal(t, domain.StatusActive, a.Status)
			a.ID = "as_1"
			return a, nil
		})

	adSet, err := service.CreateAdSet(context.Background(), "user_1", request, "token")

	assert.NoError(t, err)
	assert.Equal(t, "as_1", adSet.ID)
	assert.Equal(t, "as_ext_1", adSet.ExternalID)
}

func TestService_CreateAd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, accountRepo, campaignRepo, adSetRepo, adRepo, integrator := newTestService(ctrl)

	t.Run("Criativo sem mídia referenciada é rejeitado", func(t *testing.T) {
		request := &domain.CreateAdRequest{
			AdSetID:  "as_1",
			Name:     "Anúncio",
			Creative: &domain.Creative{},
		}

		ad, err := service.CreateAd(context.Background(), "user_1", request, "token")

		assert.Nil(t, ad)
		var mutationErr *MutationError
		assert.ErrorAs(t, err, &mutationErr)
		assert.Equal(t, apiErrors.ErrValidationFailed, mutationErr.APICode())
	})

	t.Run("Criação com sucesso sobe a hierarquia para verificar o dono", func(t *testing.T) {
		adSetRepo.EXPECT().
			GetByID("as_1").
			Return(&domain.AdSet{ID: "as_1", CampaignID: "cmp_1", ExternalID: "as_ext_1"}, nil)
		campaignRepo.EXPECT().
			GetByID("cmp_1").
			Return(&domain.Campaign{ID: "cmp_1", AdAccountID: "acc_1"}, nil)
		accountRepo.EXPECT().
			GetByID("acc_1").
			Return(&domain.AdAccount{ID: "acc_1", UserID: "user_1"}, nil)

		request := &domain.CreateAdRequest{
			AdSetID: "as_1",
			Name:    "Anúncio",
			Creative: &domain.Creative{
				ImageHash: "abc123",
			},
		}

		integrator.EXPECT().
			CreateAd(gomock.Any(), "as_ext_1", request, "token").
			Return("ad_ext_1", nil)

		adRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(a *domain.Ad) (*domain.Ad, error) {
				a.ID = "ad_1"
				return a, nil
			})

		ad, err := service.CreateAd(context.Background(), "user_1", request, "token")

		assert.NoError(t, err)
		assert.Equal(t, "ad_1", ad.ID)
	})
}

func TestService_UploadMedia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, accountRepo, _, _, _, integrator := newTestService(ctrl)

	tests := []struct {
		name    string
		request *domain.UploadMediaRequest
		wantErr bool
	}{
		{
			name: "Imagem com MIME não suportado",
			request: &domain.UploadMediaRequest{
				AdAccountID: "acc_1",
				MediaType:   domain.MediaTypeImage,
				ContentType: "image/tiff",
				Content:     []byte("dados"),
			},
			wantErr: true,
		},
		{
			name: "Imagem acima de 10MB",
			request: &domain.UploadMediaRequest{
				AdAccountID: "acc_1",
				MediaType:   domain.MediaTypeImage,
				ContentType: "image/png",
				Content:     make([]byte, maxImageSizeBytes+1),
			},
			wantErr: true,
		},
		{
			name: "Tipo de mídia desconhecido",
			request: &domain.UploadMediaRequest{
				AdAccountID: "acc_1",
				MediaType:   "audio",
				ContentType: "audio/mpeg",
				Content:     []byte("dados"),
			},
			wantErr: true,
		},
		{
			name: "Arquivo vazio",
			request: &domain.UploadMediaRequest{
				AdAccountID: "acc_1",
				MediaType:   domain.MediaTypeVideo,
				ContentType: "video/mp4",
				Content:     nil,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := service.UploadMedia(context.Background(), "user_1", tt.request, "token")

			assert.Nil(t, response)
			assert.Error(t, err)
		})
	}

	t.Run("Upload válido devolve o identificador do provedor", func(t *testing.T) {
		accountRepo.EXPECT().
			GetByID("acc_1").
			Return(&domain.AdAccount{ID: "acc_1", UserID: "user_1", ExternalID: "act_999"}, nil)

		request := &domain.UploadMediaRequest{
			AdAccountID: "acc_1",
			MediaType:   domain.MediaTypeImage,
			ContentType: "image/jpeg",
			Content:     []byte("conteúdo da imagem"),
		}

		integrator.EXPECT().
			UploadMedia(gomock.Any(), "act_999", request, "token").
			Return("hash_abc", nil)

		response, err := service.UploadMedia(context.Background(), "user_1", request, "token")

		assert.NoError(t, err)
		assert.Equal(t, "hash_abc", response.MediaID)
		assert.Equal(t, domain.MediaTypeImage, response.MediaType)
	})
}
