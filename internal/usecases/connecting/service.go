package connecting

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
)

const (
	// Tokens sem expiração informada recebem o mínimo seguro de uma hora.
	fallbackTokenTTL = time.Hour

	// A chave do provedor de avatares não expira; usamos um horizonte longo
	// apenas para manter o modelo de credencial uniforme.
	tavusCredentialTTL = 365 * 24 * time.Hour
)

type ConnectionService interface {
	ConnectMeta(ctx context.Context, userID, code string) (*domain.ConnectResponse, error)
	ConnectTavus(ctx context.Context, userID, apiKey string) (*domain.ConnectResponse, error)
	GetStatus(userID string) ([]*domain.ConnectionStatus, error)
	ResolveCredential(userID string, provider domain.Provider) (*domain.Credential, error)
	Disconnect(userID string, provider domain.Provider) (*domain.DisconnectOutcome, error)
}

type Service struct {
	credentialRepository repository.CredentialRepository
	accountRepository    repository.AccountRepository
	campaignRepository   repository.CampaignRepository
	adSetRepository      repository.AdSetRepository
	adRepository         repository.AdRepository
	metricRepository     repository.MetricRepository
	syncJobRepository    repository.SyncJobRepository
	avatarRepository     repository.AvatarRepository
	metaService          meta.Integrator
	tavusService         tavus.Integrator
	cache                *credentialCache
	cfg                  *config.Config
}

func NewService(
	credentialRepository repository.CredentialRepository,
	accountRepository repository.AccountRepository,
	campaignRepository repository.CampaignRepository,
	adSetRepository repository.AdSetRepository,
	adRepository repository.AdRepository,
	metricRepository repository.MetricRepository,
	syncJobRepository repository.SyncJobRepository,
	avatarRepository repository.AvatarRepository,
	metaService meta.Integrator,
	tavusService tavus.Integrator,
	cfg *config.Config,
) ConnectionService {
	return &Service{
		credentialRepository: credentialRepository,
		accountRepository:    accountRepository,
		campaignRepository:   campaignRepository,
		adSetRepository:      adSetRepository,
		adRepository:         adRepository,
		metricRepository:     metricRepository,
		syncJobRepository:    syncJobRepository,
		avatarRepository:     avatarRepository,
		metaService:          metaService,
		tavusService:         tavusService,
		cache:                newCredentialCache(),
		cfg:                  cfg,
	}
}

// ConnectMeta troca o código de autorização por um token de longa duração e
// persiste a credencial. A checagem de permissões de anúncio é best-effort:
// a falha da sonda não bloqueia a conexão, apenas registra o aviso.
func (s *Service) ConnectMeta(ctx context.Context, userID, code string) (*domain.ConnectResponse, error) {
	if code == "" {
		return nil, NewConnectionError(ErrCodeRequired, apiErrors.ErrMissingRequiredData, "Código de autorização ausente")
	}

	token, expiresIn, err := s.metaService.ExchangeCode(ctx, code)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Error("Falha ao trocar código de autorização")

		if metadomain.IsKind(err, metadomain.KindRateLimited) {
			return nil, NewConnectionError(ErrTokenExchange, apiErrors.ErrRateLimited, "Limite de requisições do provedor atingido")
		}
		return nil, NewConnectionError(ErrTokenExchange, apiErrors.ErrProviderFailure, "Provedor recusou o código de autorização")
	}

	if expiresIn <= 0 {
		expiresIn = int64(fallbackTokenTTL.Seconds())
	}
	expiresAt := time.Now().UTC().Add(time.Duration(expiresIn) * time.Second)

	response := &domain.ConnectResponse{
		Provider:  domain.ProviderMeta,
		Connected: true,
		ExpiresAt: expiresAt,
	}

	hasPerms, err := s.metaService.VerifyAdPermissions(ctx, token)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Warn("Sonda de permissões de anúncio falhou. Conexão segue sem a confirmação")
		hasPerms = false
		response.Warning = "Não foi possível confirmar as permissões de anúncio"
	} else if !hasPerms {
		response.Warning = "A conta conectada não tem permissões de anúncio"
	}
	response.HasAdPermissions = hasPerms

	credential := &domain.Credential{
		UserID:           userID,
		Provider:         domain.ProviderMeta,
		AccessToken:      token,
		ExpiresAt:        expiresAt,
		HasAdPermissions: hasPerms,
	}

	if err := s.credentialRepository.SaveOrUpdate(credential); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Error("Falha ao persistir credencial")
		return nil, NewConnectionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar a credencial")
	}

	s.cache.invalidate(userID, domain.ProviderMeta)
	s.cache.put(credential)

	return response, nil
}

// ConnectTavus valida a chave de API do provedor de avatares e a registra
// como credencial do usuário.
func (s *Service) ConnectTavus(ctx context.Context, userID, apiKey string) (*domain.ConnectResponse, error) {
	if apiKey == "" {
		return nil, NewConnectionError(ErrCodeRequired, apiErrors.ErrMissingRequiredData, "Chave de API ausente")
	}

	ok, err := s.tavusService.CheckConnection(ctx, apiKey)
	if err != nil || !ok {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err,
		}).Error("Falha ao validar chave do provedor de avatares")
		return nil, NewConnectionError(ErrProviderCheck, apiErrors.ErrProviderFailure, "Chave de API recusada pelo provedor de avatares")
	}

	expiresAt := time.Now().UTC().Add(tavusCredentialTTL)

	credential := &domain.Credential{
		UserID:      userID,
		Provider:    domain.ProviderTavus,
		AccessToken: apiKey,
		ExpiresAt:   expiresAt,
	}

	if err := s.credentialRepository.SaveOrUpdate(credential); err != nil {
		return nil, NewConnectionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar a credencial")
	}

	s.cache.invalidate(userID, domain.ProviderTavus)
	s.cache.put(credential)

	return &domain.ConnectResponse{
		Provider:  domain.ProviderTavus,
		Connected: true,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) GetStatus(userID string) ([]*domain.ConnectionStatus, error) {
	providers := []domain.Provider{domain.ProviderMeta, domain.ProviderTavus}
	statuses := make([]*domain.ConnectionStatus, 0, len(providers))

	for _, provider := range providers {
		credential, err := s.credentialRepository.GetByUserID(userID, provider)
		if err != nil {
			return nil, NewConnectionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar credenciais")
		}

		status := &domain.ConnectionStatus{Provider: provider}
		if credential != nil {
			expired := credential.IsExpired(time.Now())
			status.Connected = !expired
			status.Expired = expired
			status.HasAdPermissions = credential.HasAdPermissions
			status.ExpiresAt = &credential.ExpiresAt
		}

		statuses = append(statuses, status)
	}

	return statuses, nil
}

// ResolveCredential devolve a credencial válida do usuário ou o erro que o
// handler traduz em "reconecte". Credencial expirada nunca é retornada.
func (s *Service) ResolveCredential(userID string, provider domain.Provider) (*domain.Credential, error) {
	credential, ok := s.cache.get(userID, provider)
	if !ok {
		var err error
		credential, err = s.credentialRepository.GetByUserID(userID, provider)
		if err != nil {
			return nil, NewConnectionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar a credencial")
		}
		if credential != nil {
			s.cache.put(credential)
		}
	}

	if credential == nil {
		return nil, NewConnectionError(ErrCredentialMissing, apiErrors.ErrCredentialMissing, "Usuário não conectou o provedor")
	}

	if credential.IsExpired(time.Now()) {
		return nil, NewConnectionError(ErrCredentialExpired, apiErrors.ErrCredentialExpired, "Credencial expirada. Reconexão necessária")
	}

	return credential, nil
}

// Disconnect remove a credencial e todos os dados sincronizados do usuário.
// A limpeza é best-effort na ordem folha -> raiz; o resultado da operação é
// definido apenas pela remoção da credencial.
func (s *Service) Disconnect(userID string, provider domain.Provider) (*domain.DisconnectOutcome, error) {
	outcome := &domain.DisconnectOutcome{
		Steps: make([]domain.DisconnectStep, 0, 9),
	}

	runStep := func(name string, fn func() error) {
		step := domain.DisconnectStep{Name: name, Success: true}
		if err := fn(); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"step":    name,
				"error":   err,
			}).Error("Etapa de limpeza falhou durante a desconexão")
			step.Success = false
			step.Error = err.Error()
		}
		outcome.Steps = append(outcome.Steps, step)
	}

	if provider == domain.ProviderMeta {
		runStep("ad_metrics", func() error { return s.metricRepository.DeleteByUserID(domain.LevelAd, userID) })
		runStep("ads", func() error { return s.adRepository.DeleteByUserID(userID) })
		runStep("ad_set_metrics", func() error { return s.metricRepository.DeleteByUserID(domain.LevelAdSet, userID) })
		runStep("ad_sets", func() error { return s.adSetRepository.DeleteByUserID(userID) })
		runStep("campaign_metrics", func() error { return s.metricRepository.DeleteByUserID(domain.LevelCampaign, userID) })
		runStep("campaigns", func() error { return s.campaignRepository.DeleteByUserID(userID) })
		runStep("ad_accounts", func() error { return s.accountRepository.DeleteByUserID(userID) })
		runStep("sync_jobs", func() error { return s.syncJobRepository.DeleteByUserID(userID) })
	} else {
		runStep("avatar_videos", func() error { return s.avatarRepository.DeleteVideosByUserID(userID) })
	}

	runStep("credential", func() error { return s.credentialRepository.Delete(userID, provider) })

	s.cache.invalidate(userID, provider)

	last := outcome.Steps[len(outcome.Steps)-1]
	outcome.Disconnected = last.Success

	if !outcome.Disconnected {
		return outcome, NewConnectionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover a credencial")
	}

	return outcome, nil
}
