package tavus

import (
	"context"

	"github.com/sirupsen/logrus"
	tavusdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus/domain"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus/tavusclient"
	"github.com/vfg2006/marketing-ops-api/internal/config"
)

// Integrator expõe o provedor de avatares para os casos de uso.
type Integrator interface {
	CheckConnection(ctx context.Context, apiKey string) (bool, error)
	ListReplicas(ctx context.Context, apiKey string) ([]tavusdomain.Replica, bool, error)
	DeleteReplica(ctx context.Context, replicaID, apiKey string) error
	ListPersonas(ctx context.Context, apiKey string) ([]tavusdomain.Persona, error)
	CreatePersona(ctx context.Context, req *tavusdomain.CreatePersonaRequest, apiKey string) (*tavusdomain.Persona, error)
	DeletePersona(ctx context.Context, personaID, apiKey string) error
	RenderVideo(ctx context.Context, req *tavusdomain.RenderVideoRequest, apiKey string) (*tavusdomain.Video, error)
	GetVideo(ctx context.Context, videoID, apiKey string) (*tavusdomain.Video, error)
	DeleteVideo(ctx context.Context, videoID, apiKey string) error
}

// stockReplicas é o catálogo fixo usado como degradação quando a listagem
// do provedor falha. O fallback nunca é tratado como resposta normal: o
// chamador recebe a flag indicando que está vendo o catálogo de reserva.
var stockReplicas = []tavusdomain.Replica{
	{ReplicaID: "r-stock-anna", ReplicaName: "Anna", Status: "ready"},
	{ReplicaID: "r-stock-lucas", ReplicaName: "Lucas", Status: "ready"},
	{ReplicaID: "r-stock-maya", ReplicaName: "Maya", Status: "ready"},
}

type TavusService struct {
	cfg    *config.Config
	Client tavusclient.Client
}

func New(cfg *config.Config, client tavusclient.Client) Integrator {
	return &TavusService{
		cfg:    cfg,
		Client: client,
	}
}

// CheckConnection valida a chave de API com uma listagem leve.
func (s *TavusService) CheckConnection(ctx context.Context, apiKey string) (bool, error) {
	_, err := s.Client.ListReplicas(ctx, apiKey)
	if err != nil {
		return false, err
	}

	return true, nil
}

// ListReplicas retorna as réplicas do provedor. Em caso de falha, devolve
// o catálogo de reserva com stock=true e loga o aviso; a indisponibilidade
// não é mascarada como sucesso.
func (s *TavusService) ListReplicas(ctx context.Context, apiKey string) ([]tavusdomain.Replica, bool, error) {
	replicas, err := s.Client.ListReplicas(ctx, apiKey)
	if err != nil {
		logrus.WithError(err).Warn("Falha ao listar réplicas no provedor de avatares. Usando catálogo de reserva")
		return stockReplicas, true, nil
	}

	return replicas, false, nil
}

func (s *TavusService) DeleteReplica(ctx context.Context, replicaID, apiKey string) error {
	return s.Client.DeleteReplica(ctx, replicaID, apiKey)
}

func (s *TavusService) ListPersonas(ctx context.Context, apiKey string) ([]tavusdomain.Persona, error) {
	return s.Client.ListPersonas(ctx, apiKey)
}

func (s *TavusService) CreatePersona(ctx context.Context, req *tavusdomain.CreatePersonaRequest, apiKey string) (*tavusdomain.Persona, error) {
	return s.Client.CreatePersona(ctx, req, apiKey)
}

func (s *TavusService) DeletePersona(ctx context.Context, personaID, apiKey string) error {
	return s.Client.DeletePersona(ctx, personaID, apiKey)
}

func (s *TavusService) RenderVideo(ctx context.Context, req *tavusdomain.RenderVideoRequest, apiKey string) (*tavusdomain.Video, error) {
	return s.Client.RenderVideo(ctx, req, apiKey)
}

func (s *TavusService) GetVideo(ctx context.Context, videoID, apiKey string) (*tavusdomain.Video, error) {
	return s.Client.GetVideo(ctx, videoID, apiKey)
}

func (s *TavusService) DeleteVideo(ctx context.Context, videoID, apiKey string) error {
	return s.Client.DeleteVideo(ctx, videoID, apiKey)
}
