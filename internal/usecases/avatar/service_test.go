package avatar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	tavusdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus/domain"
	tavusmocks "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus/mocks"
	"github.com/vfg2006/marketing-ops-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newAvatarService(ctrl *gomock.Controller) (*Service, *mocks.MockAvatarRepository, *tavusmocks.MockIntegrator) {
	avatarRepo := mocks.NewMockAvatarRepository(ctrl)
	tavusService := tavusmocks.NewMockIntegrator(ctrl)

	service := &Service{
		avatarRepository: avatarRepo,
		tavusService:     tavusService,
		cfg:              &config.Config{},
	}

	return service, avatarRepo, tavusService
}

func TestService_ListReplicas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, tavusService := newAvatarService(ctrl)
	ctx := context.Background()

	t.Run("Catálogo ao vivo traduz os campos do provedor", func(t *testing.T) {
		tavusService.EXPECT().
			ListReplicas(ctx, "key").
			Return([]tavusdomain.Replica{
				{ReplicaID: "r1", ReplicaName: "Apresentadora", Status: "completed"},
			}, false, nil)

		replicas, stock, err := service.ListReplicas(ctx, "user_1", "key")

		assert.NoError(t, err)
		assert.False(t, stock)
		assert.Len(t, replicas, 1)
		assert.Equal(t, "r1", replicas[0].ExternalID)
		assert.Equal(t, "Apresentadora", replicas[0].Name)
		assert.Equal(t, "user_1", replicas[0].UserID)
	})

	t.Run("Catálogo de reserva propaga a flag de estoque", func(t *testing.T) {
		tavusService.EXPECT().
			ListReplicas(ctx, "key").
			Return([]tavusdomain.Replica{
				{ReplicaID: "stock_1", ReplicaName: "Reserva", Status: "completed"},
			}, true, nil)

		replicas, stock, err := service.ListReplicas(ctx, "user_1", "key")

		assert.NoError(t, err)
		assert.True(t, stock)
		assert.True(t, replicas[0].Stock)
	})

	t.Run("Falha no provedor retorna erro tipado", func(t *testing.T) {
		tavusService.EXPECT().
			ListReplicas(ctx, "key").
			Return(nil, false, assert.AnError)

		replicas, _, err := service.ListReplicas(ctx, "user_1", "key")

		assert.Nil(t, replicas)
		assert.ErrorIs(t, err, ErrProviderFailure)
	})
}

func TestService_CreatePersona(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, tavusService := newAvatarService(ctrl)
	ctx := context.Background()

	tavusService.EXPECT().
		CreatePersona(ctx, &tavusdomain.CreatePersonaRequest{
			PersonaName:  "Vendedora",
			SystemPrompt: "Você apresenta produtos",
		}, "key").
		Return(&tavusdomain.Persona{
			PersonaID:    "p1",
			PersonaName:  "Vendedora",
			SystemPrompt: "Você apresenta produtos",
		}, nil)

	persona, err := service.CreatePersona(ctx, "user_1", "Vendedora", "Você apresenta produtos", "key")

	assert.NoError(t, err)
	assert.Equal(t, "p1", persona.ExternalID)
	assert.Equal(t, "user_1", persona.UserID)
}

func TestService_RenderVideo(t *testing.T) {
	ctx := context.Background()
	request := &domain.RenderVideoRequest{ReplicaID: "r1", Script: "Olá!", Name: "Promo"}

	t.Run("Renderização é espelhada localmente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, avatarRepo, tavusService := newAvatarService(ctrl)

		tavusService.EXPECT().
			RenderVideo(ctx, &tavusdomain.RenderVideoRequest{ReplicaID: "r1", Script: "Olá!", VideoName: "Promo"}, "key").
			Return(&tavusdomain.Video{VideoID: "v_ext_1", Status: "queued"}, nil)

		avatarRepo.EXPECT().
			SaveVideo(gomock.Any()).
			DoAndReturn(func(video *domain.AvatarVideo) (*domain.AvatarVideo, error) {
				assert.Equal(t, "v_ext_1", video.ExternalID)
				assert.Equal(t, "user_1", video.UserID)
				video.ID = "vid_local_1"
				return video, nil
			})

		video, err := service.RenderVideo(ctx, "user_1", request, "key")

		assert.NoError(t, err)
		assert.Equal(t, "vid_local_1", video.ID)
		assert.Equal(t, "queued", video.Status)
	})

	t.Run("Falha no espelho não perde o vídeo já renderizando", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, avatarRepo, tavusService := newAvatarService(ctrl)

		tavusService.EXPECT().
			RenderVideo(ctx, gomock.Any(), "key").
			Return(&tavusdomain.Video{VideoID: "v_ext_1", Status: "queued"}, nil)

		avatarRepo.EXPECT().
			SaveVideo(gomock.Any()).
			Return(nil, assert.AnError)

		video, err := service.RenderVideo(ctx, "user_1", request, "key")

		assert.NoError(t, err)
		assert.Equal(t, "v_ext_1", video.ExternalID)
		assert.Empty(t, video.ID)
	})

	t.Run("Falha no provedor não toca o espelho", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _, tavusService := newAvatarService(ctrl)

		tavusService.EXPECT().
			RenderVideo(ctx, gomock.Any(), "key").
			Return(nil, assert.AnError)

		video, err := service.RenderVideo(ctx, "user_1", request, "key")

		assert.Nil(t, video)
		assert.ErrorIs(t, err, ErrProviderFailure)
	})
}

func TestService_GetVideo(t *testing.T) {
	ctx := context.Background()

	t.Run("Vídeo pronto não consulta o provedor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, avatarRepo, _ := newAvatarService(ctrl)

		avatarRepo.EXPECT().
			GetVideoByID("vid_1").
			Return(&domain.AvatarVideo{ID: "vid_1", UserID: "user_1", Status: "ready", HostedURL: "https://cdn/v.mp4"}, nil)

		video, err := service.GetVideo(ctx, "user_1", "vid_1", "key")

		assert.NoError(t, err)
		assert.Equal(t, "ready", video.Status)
	})

	t.Run("Vídeo em renderização atualiza o status a partir do provedor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, avatarRepo, tavusService := newAvatarService(ctrl)

		avatarRepo.EXPECT().
			GetVideoByID("vid_1").
			Return(&domain.AvatarVideo{ID: "vid_1", UserID: "user_1", ExternalID: "v_ext_1", Status: "queued"}, nil)

		tavusService.EXPECT().
			GetVideo(ctx, "v_ext_1", "key").
			Return(&tavusdomain.Video{VideoID: "v_ext_1", Status: "ready", HostedURL: "https://cdn/v.mp4"}, nil)

		avatarRepo.EXPECT().
			UpdateVideoStatus("vid_1", "ready", "https://cdn/v.mp4").
			Return(nil)

		video, err := service.GetVideo(ctx, "user_1", "vid_1", "key")

		assert.NoError(t, err)
		assert.Equal(t, "ready", video.Status)
		assert.Equal(t, "https://cdn/v.mp4", video.HostedURL)
	})

	t.Run("Provedor indisponível serve o estado local", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, avatarRepo, tavusService := newAvatarService(ctrl)

		avatarRepo.EXPECT().
			GetVideoByID("vid_1").
			Return(&domain.AvatarVideo{ID: "vid_1", UserID: "user_1", ExternalID: "v_ext_1", Status: "queued"}, nil)

		tavusService.EXPECT().
			GetVideo(ctx, "v_ext_1", "key").
			Return(nil, errors.New("timeout"))

		video, err := service.GetVideo(ctx, "user_1", "vid_1", "key")

		assert.NoError(t, err)
		assert.Equal(t, "queued", video.Status)
	})

	t.Run("Vídeo de outro usuário é indistinguível de inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, avatarRepo, _ := newAvatarService(ctrl)

		avatarRepo.EXPECT().
			GetVideoByID("vid_1").
			Return(&domain.AvatarVideo{ID: "vid_1", UserID: "outro"}, nil)

		video, err := service.GetVideo(ctx, "user_1", "vid_1", "key")

		assert.Nil(t, video)
		assert.ErrorIs(t, err, ErrVideoNotFound)

		var avatarErr *AvatarError
		assert.True(t, errors.As(err, &avatarErr))
		assert.Equal(t, apiErrors.ErrNotFound, avatarErr.APICode())
	})
}

func TestService_DeleteVideo(t *testing.T) {
	ctx := context.Background()

	t.Run("Remoção no provedor e no espelho", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, avatarRepo, tavusService := newAvatarService(ctrl)

		avatarRepo.EXPECT().
			GetVideoByID("vid_1").
			Return(&domain.AvatarVideo{ID: "vid_1", UserID: "user_1", ExternalID: "v_ext_1"}, nil)

		tavusService.EXPECT().DeleteVideo(ctx, "v_ext_1", "key").Return(nil)
		avatarRepo.EXPECT().UpdateVideoStatus("vid_1", "deleted", "").Return(nil)

		err := service.DeleteVideo(ctx, "user_1", "vid_1", "key")

		assert.NoError(t, err)
	})

	t.Run("Falha no provedor ainda remove o espelho local", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, avatarRepo, tavusService := newAvatarService(ctrl)

		avatarRepo.EXPECT().
			GetVideoByID("vid_1").
			Return(&domain.AvatarVideo{ID: "vid_1", UserID: "user_1", ExternalID: "v_ext_1"}, nil)

		tavusService.EXPECT().DeleteVideo(ctx, "v_ext_1", "key").Return(assert.AnError)
		avatarRepo.EXPECT().UpdateVideoStatus("vid_1", "deleted", "").Return(nil)

		err := service.DeleteVideo(ctx, "user_1", "vid_1", "key")

		assert.NoError(t, err)
	})
}
