package mutating

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
)

// MutationService valida e submete operações de criação ao provedor.
// Toda validação de regra de negócio acontece localmente, antes de
// qualquer chamada de rede; o espelho local é best-effort.
type MutationService interface {
	CreateCampaign(ctx context.Context, userID string, request *domain.CreateCampaignRequest, token string) (*domain.Campaign, error)
	CreateAdSet(ctx context.Context, userID string, request *domain.CreateAdSetRequest, token string) (*domain.AdSet, error)
	CreateAd(ctx context.Context, userID string, request *domain.CreateAdRequest, token string) (*domain.Ad, error)
	UploadMedia(ctx context.Context, userID string, request *domain.UploadMediaRequest, token string) (*domain.UploadMediaResponse, error)
}

type Service struct {
	accountRepository  repository.AccountRepository
	campaignRepository repository.CampaignRepository
	adSetRepository    repository.AdSetRepository
	adRepository       repository.AdRepository
	metaService        meta.Integrator
	validate           *validator.Validate
	cfg                *config.Config
}

func NewService(
	accountRepository repository.AccountRepository,
	campaignRepository repository.CampaignRepository,
	adSetRepository repository.AdSetRepository,
	adRepository repository.AdRepository,
	metaService meta.Integrator,
	cfg *config.Config,
) MutationService {
	return &Service{
		accountRepository:  accountRepository,
		campaignRepository: campaignRepository,
		adSetRepository:    adSetRepository,
		adRepository:       adRepository,
		metaService:        metaService,
		validate:           validator.New(),
		cfg:                cfg,
	}
}

func (s *Service) CreateCampaign(ctx context.Context, userID string, request *domain.CreateCampaignRequest, token string) (*domain.Campaign, error) {
	if err := s.validate.Struct(request); err != nil {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrMissingRequiredData, err.Error())
	}

	if request.DailyBudget != nil && request.LifetimeBudget != nil {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed, "daily_budget e lifetime_budget são mutuamente exclusivos")
	}

	account, err := s.ownedAccount(userID, request.AdAccountID)
	if err != nil {
		return nil, err
	}

	externalID, err := s.metaService.CreateCampaign(ctx, account.ExternalID, request, token)
	if err != nil {
		return nil, s.providerError(err, "Falha ao criar campanha no provedor")
	}

	campaign := &domain.Campaign{
		AdAccountID:         account.ID,
		ExternalID:          externalID,
		Name:                request.Name,
		Status:              statusOrPaused(request.Status),
		Objective:           request.Objective,
		DailyBudget:         request.DailyBudget,
		LifetimeBudget:      request.LifetimeBudget,
		SpecialAdCategories: request.SpecialAdCategories,
		BuyingType:          request.BuyingType,
	}

	// Espelho best-effort: a entidade já existe no provedor; falha de
	// persistência local não desfaz a operação
	mirrored, err := s.campaignRepository.SaveOrUpdate(campaign)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"external_id": externalID,
			"error":       err,
		}).Error("Campanha criada no provedor mas não espelhada localmente")
		return campaign, nil
	}

	return mirrored, nil
}

// CreateAdSet aplica a ordem de validação: campos obrigatórios, orçamento
// versus CBO da campanha pai, tabela de compatibilidade e exigência de
// bid_amount para estratégias de teto manual.
func (s *Service) CreateAdSet(ctx context.Context, userID string, request *domain.CreateAdSetRequest, token string) (*domain.AdSet, error) {
	if err := s.validate.Struct(request); err != nil {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrMissingRequiredData, err.Error())
	}

	campaign, err := s.ownedCampaign(userID, request.CampaignID)
	if err != nil {
		return nil, err
	}

	if campaign.HasCBO() && request.HasOwnBudget() {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
			"A campanha usa CBO; o conjunto de anúncios não pode ter orçamento próprio")
	}
	if !campaign.HasCBO() && !request.HasOwnBudget() {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
			"A campanha não usa CBO; o conjunto de anúncios precisa de daily_budget ou lifetime_budget")
	}
	if request.DailyBudget != nil && request.LifetimeBudget != nil {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
			"daily_budget e lifetime_budget são mutuamente exclusivos")
	}

	if !isValidOptimizationBillingCombination(request.OptimizationGoal, request.BillingEvent) {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
			fmt.Sprintf("Par incompatível: optimization_goal=%s billing_event=%s", request.OptimizationGoal, request.BillingEvent))
	}

	if bidStrategiesRequiringCap[request.BidStrategy] && request.BidAmount == nil {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
			fmt.Sprintf("bid_amount é obrigatório para a estratégia %s", request.BidStrategy))
	}

	externalID, err := s.metaService.CreateAdSet(ctx, campaign.ExternalID, request, token)
	if err != nil {
		return nil, s.providerError(err, "Falha ao criar conjunto de anúncios no provedor")
	}

	adSet := &domain.AdSet{
		CampaignID:       campaign.ID,
		ExternalID:       externalID,
		Name:             request.Name,
		Status:           statusOrPaused(request.Status),
		OptimizationGoal: request.OptimizationGoal,
		BillingEvent:     request.BillingEvent,
		BidStrategy:      request.BidStrategy,
		BidAmount:        request.BidAmount,
		DailyBudget:      request.DailyBudget,
		LifetimeBudget:   request.LifetimeBudget,
		Targeting:        request.Targeting,
	}

	mirrored, err := s.adSetRepository.SaveOrUpdate(adSet)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"external_id": externalID,
			"error":       err,
		}).Error("Conjunto de anúncios criado no provedor mas não espelhado localmente")
		return adSet, nil
	}

	return mirrored, nil
}

func (s *Service) CreateAd(ctx context.Context, userID string, request *domain.CreateAdRequest, token string) (*domain.Ad, error) {
	if err := s.validate.Struct(request); err != nil {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrMissingRequiredData, err.Error())
	}

	if request.Creative.ImageHash == "" && request.Creative.VideoID == "" {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
			"O criativo precisa referenciar uma mídia já enviada (image_hash ou video_id)")
	}

	adSet, err := s.ownedAdSet(userID, request.AdSetID)
	if err != nil {
		return nil, err
	}

	externalID, err := s.metaService.CreateAd(ctx, adSet.ExternalID, request, token)
	if err != nil {
		return nil, s.providerError(err, "Falha ao criar anúncio no provedor")
	}

	ad := &domain.Ad{
		AdSetID:    adSet.ID,
		ExternalID: externalID,
		Name:       request.Name,
		Status:     statusOrPaused(request.Status),
		Creative:   request.Creative,
	}

	mirrored, err := s.adRepository.SaveOrUpdate(ad)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"external_id": externalID,
			"error":       err,
		}).Error("Anúncio criado no provedor mas não espelhado localmente")
		return ad, nil
	}

	return mirrored, nil
}

// UploadMedia valida tipo e tamanho antes de qualquer contato com o
// provedor e devolve o identificador emitido por ele.
func (s *Service) UploadMedia(ctx context.Context, userID string, request *domain.UploadMediaRequest, token string) (*domain.UploadMediaResponse, error) {
	switch request.MediaType {
	case domain.MediaTypeImage:
		if !allowedImageMIMETypes[request.ContentType] {
			return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
				fmt.Sprintf("Tipo de imagem não suportado: %s", request.ContentType))
		}
		if len(request.Content) > maxImageSizeBytes {
			return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed, "Imagem excede o tamanho máximo de 10MB")
		}
	case domain.MediaTypeVideo:
		if !allowedVideoMIMETypes[request.ContentType] {
			return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
				fmt.Sprintf("Tipo de vídeo não suportado: %s", request.ContentType))
		}
		if len(request.Content) > maxVideoSizeBytes {
			return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed, "Vídeo excede o tamanho máximo de 100MB")
		}
	default:
		return nil, NewMutationError(ErrValidation, apiErrors.ErrValidationFailed,
			fmt.Sprintf("Tipo de mídia inválido: %s", request.MediaType))
	}

	if len(request.Content) == 0 {
		return nil, NewMutationError(ErrValidation, apiErrors.ErrMissingRequiredData, "Arquivo de mídia vazio")
	}

	account, err := s.ownedAccount(userID, request.AdAccountID)
	if err != nil {
		return nil, err
	}

	mediaID, err := s.metaService.UploadMedia(ctx, account.ExternalID, request, token)
	if err != nil {
		return nil, s.providerError(err, "Falha ao enviar mídia ao provedor")
	}

	return &domain.UploadMediaResponse{
		MediaID:   mediaID,
		MediaType: request.MediaType,
	}, nil
}

func (s *Service) ownedAccount(userID, accountID string) (*domain.AdAccount, error) {
	account, err := s.accountRepository.GetByID(accountID)
	if err != nil {
		return nil, NewMutationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar a conta de anúncios")
	}
	if account == nil || account.UserID != userID {
		return nil, NewMutationError(ErrParentNotFound, apiErrors.ErrNotFound, "Conta de anúncios não encontrada para o usuário")
	}

	return account, nil
}

func (s *Service) ownedCampaign(userID, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepository.GetByID(campaignID)
	if err != nil {
		return nil, NewMutationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar a campanha")
	}
	if campaign == nil {
		return nil, NewMutationError(ErrParentNotFound, apiErrors.ErrNotFound, "Campanha não encontrada para o usuário")
	}

	if _, err := s.ownedAccount(userID, campaign.AdAccountID); err != nil {
		return nil, err
	}

	return campaign, nil
}

func (s *Service) ownedAdSet(userID, adSetID string) (*domain.AdSet, error) {
	adSet, err := s.adSetRepository.GetByID(adSetID)
	if err != nil {
		return nil, NewMutationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o conjunto de anúncios")
	}
	if adSet == nil {
		return nil, NewMutationError(ErrParentNotFound, apiErrors.ErrNotFound, "Conjunto de anúncios não encontrado para o usuário")
	}

	if _, err := s.ownedCampaign(userID, adSet.CampaignID); err != nil {
		return nil, err
	}

	return adSet, nil
}

func (s *Service) providerError(err error, details string) error {
	logrus.WithField("error", err).Error(details)

	switch {
	case metadomain.IsKind(err, metadomain.KindAuthExpired):
		return NewMutationError(ErrProviderCreate, apiErrors.ErrCredentialExpired, details)
	case metadomain.IsKind(err, metadomain.KindPermissionDenied):
		return NewMutationError(ErrProviderCreate, apiErrors.ErrPermissionDenied, details)
	case metadomain.IsKind(err, metadomain.KindRateLimited):
		return NewMutationError(ErrProviderCreate, apiErrors.ErrRateLimited, details)
	case metadomain.IsKind(err, metadomain.KindNotFound):
		return NewMutationError(ErrProviderCreate, apiErrors.ErrNotFound, details)
	default:
		return NewMutationError(ErrProviderCreate, apiErrors.ErrProviderFailure, details)
	}
}

func statusOrPaused(status string) domain.EntityStatus {
	if status == "" {
		return domain.StatusPaused
	}
	return domain.EntityStatus(status)
}
