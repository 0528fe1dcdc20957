package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newAccountService(ctrl *gomock.Controller) (*Service, *mocks.MockAccountRepository, *metamocks.MockIntegrator) {
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	metaService := metamocks.NewMockIntegrator(ctrl)

	service := &Service{
		accountRepository: accountRepo,
		metaService:       metaService,
		cfg:               &config.Config{},
	}

	return service, accountRepo, metaService
}

func TestService_ListProviderAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, metaService := newAccountService(ctrl)
	ctx := context.Background()

	t.Run("Contas do provedor são repassadas", func(t *testing.T) {
		expected := []*domain.AdAccount{
			{ExternalID: "act_1", Name: "Conta A", Currency: "BRL"},
		}

		metaService.EXPECT().ListAdAccounts(ctx, "token").Return(expected, nil)

		accounts, err := service.ListProviderAccounts(ctx, "token")

		assert.NoError(t, err)
		assert.Equal(t, expected, accounts)
	})

	tests := []struct {
		name         string
		providerErr  error
		expectedCode string
	}{
		{
			name:         "Limite de requisições vira SRV_001",
			providerErr:  &metadomain.APIError{Kind: metadomain.KindRateLimited},
			expectedCode: apiErrors.ErrRateLimited,
		},
		{
			name:         "Token expirado vira AUTH_003",
			providerErr:  &metadomain.APIError{Kind: metadomain.KindAuthExpired},
			expectedCode: apiErrors.ErrCredentialExpired,
		},
		{
			name:         "Permissão negada vira AUTH_004",
			providerErr:  &metadomain.APIError{Kind: metadomain.KindPermissionDenied},
			expectedCode: apiErrors.ErrPermissionDenied,
		},
		{
			name:         "Falha opaca vira SRV_002",
			providerErr:  errors.New("boom"),
			expectedCode: apiErrors.ErrProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metaService.EXPECT().ListAdAccounts(ctx, "token").Return(nil, tt.providerErr)

			accounts, err := service.ListProviderAccounts(ctx, "token")

			assert.Nil(t, accounts)

			var accountErr *AccountError
			assert.True(t, errors.As(err, &accountErr))
			assert.Equal(t, tt.expectedCode, accountErr.APICode())
		})
	}
}

func TestService_ConnectAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, accountRepo, _ := newAccountService(ctrl)

	request := &domain.ConnectAccountRequest{
		ExternalID:    "act_1",
		Name:          "Conta A",
		Currency:      "BRL",
		AccountStatus: 1,
	}

	t.Run("Conta escolhida é registrada para o usuário", func(t *testing.T) {
		accountRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(account *domain.AdAccount) (*domain.AdAccount, error) {
				assert.Equal(t, "user_1", account.UserID)
				assert.Equal(t, "act_1", account.ExternalID)
				account.ID = "acc_local_1"
				return account, nil
			})

		account, err := service.ConnectAccount("user_1", request)

		assert.NoError(t, err)
		assert.Equal(t, "acc_local_1", account.ID)
	})

	t.Run("Falha de banco vira SRV_003", func(t *testing.T) {
		accountRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			Return(nil, assert.AnError)

		account, err := service.ConnectAccount("user_1", request)

		assert.Nil(t, account)
		assert.ErrorIs(t, err, ErrDatabaseOperation)
	})
}

func TestService_ListConnectedAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, accountRepo, _ := newAccountService(ctrl)

	expected := []*domain.AdAccount{{ID: "acc_1", UserID: "user_1"}}

	accountRepo.EXPECT().ListByUserID("user_1").Return(expected, nil)

	accounts, err := service.ListConnectedAccounts("user_1")

	assert.NoError(t, err)
	assert.Equal(t, expected, accounts)
}
