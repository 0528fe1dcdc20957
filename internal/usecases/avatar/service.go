package avatar

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus"
	tavusdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus/domain"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
)

// AvatarService expõe réplicas, personas e vídeos do provedor de avatares.
// Réplicas e personas são sempre lidas ao vivo; apenas vídeos renderizados
// ganham espelho local, para listagem sem custo de provedor.
type AvatarService interface {
	ListReplicas(ctx context.Context, userID, apiKey string) ([]*domain.Replica, bool, error)
	DeleteReplica(ctx context.Context, replicaID, apiKey string) error
	ListPersonas(ctx context.Context, userID, apiKey string) ([]*domain.Persona, error)
	CreatePersona(ctx context.Context, userID, name, systemPrompt, apiKey string) (*domain.Persona, error)
	DeletePersona(ctx context.Context, personaID, apiKey string) error
	RenderVideo(ctx context.Context, userID string, request *domain.RenderVideoRequest, apiKey string) (*domain.AvatarVideo, error)
	GetVideo(ctx context.Context, userID, videoID, apiKey string) (*domain.AvatarVideo, error)
	ListVideos(userID string) ([]*domain.AvatarVideo, error)
	DeleteVideo(ctx context.Context, userID, videoID, apiKey string) error
}

type Service struct {
	avatarRepository repository.AvatarRepository
	tavusService     tavus.Integrator
	cfg              *config.Config
}

func NewService(
	avatarRepository repository.AvatarRepository,
	tavusService tavus.Integrator,
	cfg *config.Config,
) AvatarService {
	return &Service{
		avatarRepository: avatarRepository,
		tavusService:     tavusService,
		cfg:              cfg,
	}
}

// ListReplicas devolve as réplicas e uma flag indicando se o catálogo de
// reserva foi usado por indisponibilidade do provedor.
func (s *Service) ListReplicas(ctx context.Context, userID, apiKey string) ([]*domain.Replica, bool, error) {
	replicas, stock, err := s.tavusService.ListReplicas(ctx, apiKey)
	if err != nil {
		return nil, false, NewAvatarError(ErrProviderFailure, apiErrors.ErrProviderFailure, "Falha ao listar réplicas no provedor")
	}

	result := make([]*domain.Replica, 0, len(replicas))
	for _, replica := range replicas {
		result = append(result, &domain.Replica{
			UserID:     userID,
			ExternalID: replica.ReplicaID,
			Name:       replica.ReplicaName,
			Status:     replica.Status,
			Stock:      stock,
		})
	}

	return result, stock, nil
}

func (s *Service) DeleteReplica(ctx context.Context, replicaID, apiKey string) error {
	if err := s.tavusService.DeleteReplica(ctx, replicaID, apiKey); err != nil {
		return NewAvatarError(ErrProviderFailure, apiErrors.ErrProviderFailure, "Falha ao remover réplica no provedor")
	}
	return nil
}

func (s *Service) ListPersonas(ctx context.Context, userID, apiKey string) ([]*domain.Persona, error) {
	personas, err := s.tavusService.ListPersonas(ctx, apiKey)
	if err != nil {
		return nil, NewAvatarError(ErrProviderFailure, apiErrors.ErrProviderFailure, "Falha ao listar personas no provedor")
	}

	result := make([]*domain.Persona, 0, len(personas))
	for _, persona := range personas {
		result = append(result, &domain.Persona{
			UserID:       userID,
			ExternalID:   persona.PersonaID,
			Name:         persona.PersonaName,
			SystemPrompt: persona.SystemPrompt,
		})
	}

	return result, nil
}

func (s *Service) CreatePersona(ctx context.Context, userID, name, systemPrompt, apiKey string) (*domain.Persona, error) {
	created, err := s.tavusService.CreatePersona(ctx, &tavusdomain.CreatePersonaRequest{
		PersonaName:  name,
		SystemPrompt: systemPrompt,
	}, apiKey)
	if err != nil {
		return nil, NewAvatarError(ErrProviderFailure, apiErrors.ErrProviderFailure, "Falha ao criar persona no provedor")
	}

	return &domain.Persona{
		UserID:       userID,
		ExternalID:   created.PersonaID,
		Name:         created.PersonaName,
		SystemPrompt: created.SystemPrompt,
	}, nil
}

func (s *Service) DeletePersona(ctx context.Context, personaID, apiKey string) error {
	if err := s.tavusService.DeletePersona(ctx, personaID, apiKey); err != nil {
		return NewAvatarError(ErrProviderFailure, apiErrors.ErrProviderFailure, "Falha ao remover persona no provedor")
	}
	return nil
}

// RenderVideo dispara a renderização no provedor e espelha o vídeo para
// acompanhamento local do status.
func (s *Service) RenderVideo(ctx context.Context, userID string, request *domain.RenderVideoRequest, apiKey string) (*domain.AvatarVideo, error) {
	rendered, err := s.tavusService.RenderVideo(ctx, &tavusdomain.RenderVideoRequest{
		ReplicaID: request.ReplicaID,
		Script:    request.Script,
		VideoName: request.Name,
	}, apiKey)
	if err != nil {
		return nil, NewAvatarError(ErrProviderFailure, apiErrors.ErrProviderFailure, "Falha ao renderizar vídeo no provedor")
	}

	video := &domain.AvatarVideo{
		UserID:     userID,
		ExternalID: rendered.VideoID,
		ReplicaID:  request.ReplicaID,
		Script:     request.Script,
		Status:     rendered.Status,
		HostedURL:  rendered.HostedURL,
	}

	saved, err := s.avatarRepository.SaveVideo(video)
	if err != nil {
		// O vídeo já está renderizando no provedor; o espelho é best-effort
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"video_id": rendered.VideoID,
			"error":    err,
		}).Error("Vídeo renderizado no provedor mas não espelhado localmente")
		return video, nil
	}

	return saved, nil
}

// GetVideo consulta o espelho local e atualiza o status a partir do
// provedor quando a renderização ainda não terminou.
func (s *Service) GetVideo(ctx context.Context, userID, videoID, apiKey string) (*domain.AvatarVideo, error) {
	video, err := s.avatarRepository.GetVideoByID(videoID)
	if err != nil {
		return nil, NewAvatarError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o vídeo")
	}
	if video == nil || video.UserID != userID {
		return nil, NewAvatarError(ErrVideoNotFound, apiErrors.ErrNotFound, "Vídeo não encontrado para o usuário")
	}

	if video.Status == "ready" {
		return video, nil
	}

	remote, err := s.tavusService.GetVideo(ctx, video.ExternalID, apiKey)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"video_id": videoID,
			"error":    err,
		}).Warn("Falha ao atualizar status do vídeo no provedor. Servindo o estado local")
		return video, nil
	}

	if remote.Status != video.Status || remote.HostedURL != video.HostedURL {
		video.Status = remote.Status
		video.HostedURL = remote.HostedURL
		if err := s.avatarRepository.UpdateVideoStatus(video.ID, remote.Status, remote.HostedURL); err != nil {
			logrus.WithFields(logrus.Fields{
				"video_id": videoID,
				"error":    err,
			}).Error("Falha ao atualizar status do vídeo no espelho local")
		}
	}

	return video, nil
}

func (s *Service) ListVideos(userID string) ([]*domain.AvatarVideo, error) {
	videos, err := s.avatarRepository.ListVideosByUserID(userID)
	if err != nil {
		return nil, NewAvatarError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar vídeos")
	}

	return videos, nil
}

// DeleteVideo remove o vídeo no provedor e no espelho local. A remoção
// local acontece mesmo se o provedor falhar com não-encontrado.
func (s *Service) DeleteVideo(ctx context.Context, userID, videoID, apiKey string) error {
	video, err := s.avatarRepository.GetVideoByID(videoID)
	if err != nil {
		return NewAvatarError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o vídeo")
	}
	if video == nil || video.UserID != userID {
		return NewAvatarError(ErrVideoNotFound, apiErrors.ErrNotFound, "Vídeo não encontrado para o usuário")
	}

	if err := s.tavusService.DeleteVideo(ctx, video.ExternalID, apiKey); err != nil {
		logrus.WithFields(logrus.Fields{
			"video_id": videoID,
			"error":    err,
		}).Warn("Falha ao remover vídeo no provedor. Removendo apenas o espelho local")
	}

	if err := s.avatarRepository.UpdateVideoStatus(video.ID, "deleted", ""); err != nil {
		return NewAvatarError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar o vídeo removido")
	}

	return nil
}
