package account

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
)

// AccountService lista as contas de anúncio disponíveis no provedor e
// registra as que o usuário escolheu acompanhar.
type AccountService interface {
	ListProviderAccounts(ctx context.Context, token string) ([]*domain.AdAccount, error)
	ConnectAccount(userID string, request *domain.ConnectAccountRequest) (*domain.AdAccount, error)
	ListConnectedAccounts(userID string) ([]*domain.AdAccount, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	metaService       meta.Integrator
	cfg               *config.Config
}

func NewService(
	accountRepository repository.AccountRepository,
	metaService meta.Integrator,
	cfg *config.Config,
) AccountService {
	return &Service{
		accountRepository: accountRepository,
		metaService:       metaService,
		cfg:               cfg,
	}
}

func (s *Service) ListProviderAccounts(ctx context.Context, token string) ([]*domain.AdAccount, error) {
	accounts, err := s.metaService.ListAdAccounts(ctx, token)
	if err != nil {
		logrus.WithField("error", err).Error("Falha ao listar contas de anúncio no provedor")

		if metadomain.IsKind(err, metadomain.KindRateLimited) {
			return nil, NewAccountError(ErrMetaIntegration, apiErrors.ErrRateLimited, "Limite de requisições do provedor atingido")
		}
		if metadomain.IsKind(err, metadomain.KindAuthExpired) {
			return nil, NewAccountError(ErrMetaIntegration, apiErrors.ErrCredentialExpired, "Credencial expirada no provedor")
		}
		if metadomain.IsKind(err, metadomain.KindPermissionDenied) {
			return nil, NewAccountError(ErrMetaIntegration, apiErrors.ErrPermissionDenied, "Provedor negou acesso às contas de anúncio")
		}
		return nil, NewAccountError(ErrMetaIntegration, apiErrors.ErrProviderFailure, "Falha ao obter contas do provedor")
	}

	return accounts, nil
}

// ConnectAccount registra a conta escolhida pelo usuário. A operação é
// idempotente: reconectar a mesma conta externa atualiza o registro.
func (s *Service) ConnectAccount(userID string, request *domain.ConnectAccountRequest) (*domain.AdAccount, error) {
	account, err := s.accountRepository.SaveOrUpdate(&domain.AdAccount{
		UserID:        userID,
		ExternalID:    request.ExternalID,
		Name:          request.Name,
		Currency:      request.Currency,
		AccountStatus: request.AccountStatus,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":     userID,
			"external_id": request.ExternalID,
			"error":       err,
		}).Error("Falha ao registrar conta de anúncios")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar a conta de anúncios")
	}

	return account, nil
}

func (s *Service) ListConnectedAccounts(userID string) ([]*domain.AdAccount, error) {
	accounts, err := s.accountRepository.ListByUserID(userID)
	if err != nil {
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	return accounts, nil
}
