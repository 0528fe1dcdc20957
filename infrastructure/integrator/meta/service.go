package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

// Integrator é a fachada da API de marketing consumida pelos casos de uso.
// Converte as formas da API Graph para os tipos internos de domínio.
type Integrator interface {
	ExchangeCode(ctx context.Context, code string) (accessToken string, expiresIn int64, err error)
	VerifyAdPermissions(ctx context.Context, token string) (bool, error)
	ListAdAccounts(ctx context.Context, token string) ([]*domain.AdAccount, error)
	ListChildren(ctx context.Context, level domain.EntityLevel, parentExternalID, token string) ([]metadomain.Entity, error)
	GetEntityMetrics(ctx context.Context, externalID, token string, since, until time.Time) ([]*domain.MetricRow, error)
	CreateCampaign(ctx context.Context, accountExternalID string, req *domain.CreateCampaignRequest, token string) (string, error)
	CreateAdSet(ctx context.Context, campaignExternalID string, req *domain.CreateAdSetRequest, token string) (string, error)
	CreateAd(ctx context.Context, adSetExternalID string, req *domain.CreateAdRequest, token string) (string, error)
	UploadMedia(ctx context.Context, accountExternalID string, req *domain.UploadMediaRequest, token string) (string, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) Integrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// ExchangeCode troca o código de autorização por um token. Caminho
// interativo: sem retry para não deixar o usuário esperando backoff.
func (s *MetaIntegrator) ExchangeCode(ctx context.Context, code string) (string, int64, error) {
	resp, err := s.Client.WithoutRetries().ExchangeCode(ctx, code)
	if err != nil {
		return "", 0, err
	}

	// expires_in não numérico ou ausente já chega como zero; o fallback
	// para o mínimo seguro é decidido pelo gerenciador de conexão
	return resp.AccessToken, int64(resp.ExpiresIn), nil
}

func (s *MetaIntegrator) VerifyAdPermissions(ctx context.Context, token string) (bool, error) {
	return s.Client.WithoutRetries().VerifyAdPermissions(ctx, token)
}

func (s *MetaIntegrator) ListAdAccounts(ctx context.Context, token string) ([]*domain.AdAccount, error) {
	accounts, err := s.Client.ListAdAccounts(ctx, token)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.AdAccount, 0, len(accounts))
	for _, acc := range accounts {
		result = append(result, &domain.AdAccount{
			ExternalID:    acc.ID,
			Name:          acc.Name,
			Currency:      acc.Currency,
			AccountStatus: acc.AccountStatus,
		})
	}

	return result, nil
}

// hierarchyFields são os campos pedidos por nível durante a caminhada.
var hierarchyFields = map[domain.EntityLevel][]string{
	domain.LevelCampaign: {"id", "name", "status", "objective", "daily_budget", "lifetime_budget"},
	domain.LevelAdSet:    {"id", "name", "status", "daily_budget", "lifetime_budget"},
	domain.LevelAd:       {"id", "name", "status"},
}

func (s *MetaIntegrator) ListChildren(
	ctx context.Context,
	level domain.EntityLevel,
	parentExternalID, token string,
) ([]metadomain.Entity, error) {
	return s.Client.ListHierarchy(ctx, level, parentExternalID, token, hierarchyFields[level])
}

func (s *MetaIntegrator) GetEntityMetrics(
	ctx context.Context,
	externalID, token string,
	since, until time.Time,
) ([]*domain.MetricRow, error) {
	insights, err := s.Client.GetInsights(ctx, externalID, token, since, until)
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.MetricRow, 0, len(insights))
	for i := range insights {
		insight := insights[i]

		date, err := insight.Date()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"entity_id":  externalID,
				"date_start": insight.DateStart,
			}).Warn("Linha de insight com data inválida. Ignorando")
			continue
		}

		rows = append(rows, &domain.MetricRow{
			EntityID:    externalID,
			Date:        date,
			Impressions: insight.ImpressionsInt(),
			Clicks:      insight.ClicksInt(),
			Reach:       insight.ReachInt(),
			Spend:       insight.SpendFloat(),
			Frequency:   insight.FrequencyFloat(),
			Conversions: insight.Conversions(),
		})
	}

	return rows, nil
}

func (s *MetaIntegrator) CreateCampaign(
	ctx context.Context,
	accountExternalID string,
	req *domain.CreateCampaignRequest,
	token string,
) (string, error) {
	payload := url.Values{}
	payload.Set("name", req.Name)
	payload.Set("objective", req.Objective)
	payload.Set("status", statusOrDefault(req.Status))
	payload.Set("special_ad_categories", marshalOrEmptyArray(req.SpecialAdCategories))

	if req.BuyingType != "" {
		payload.Set("buying_type", req.BuyingType)
	}
	if req.DailyBudget != nil {
		payload.Set("daily_budget", strconv.FormatInt(*req.DailyBudget, 10))
	}
	if req.LifetimeBudget != nil {
		payload.Set("lifetime_budget", strconv.FormatInt(*req.LifetimeBudget, 10))
	}

	resp, err := s.Client.CreateEntity(ctx, domain.LevelCampaign, accountExternalID, payload, token)
	if err != nil {
		return "", err
	}

	return resp.ID, nil
}

func (s *MetaIntegrator) CreateAdSet(
	ctx context.Context,
	campaignExternalID string,
	req *domain.CreateAdSetRequest,
	token string,
) (string, error) {
	payload := url.Values{}
	payload.Set("name", req.Name)
	payload.Set("campaign_id", campaignExternalID)
	payload.Set("optimization_goal", req.OptimizationGoal)
	payload.Set("billing_event", req.BillingEvent)
	payload.Set("status", statusOrDefault(req.Status))

	if req.BidStrategy != "" {
		payload.Set("bid_strategy", req.BidStrategy)
	}
	if req.BidAmount != nil {
		payload.Set("bid_amount", strconv.FormatInt(*req.BidAmount, 10))
	}
	if req.DailyBudget != nil {
		payload.Set("daily_budget", strconv.FormatInt(*req.DailyBudget, 10))
	}
	if req.LifetimeBudget != nil {
		payload.Set("lifetime_budget", strconv.FormatInt(*req.LifetimeBudget, 10))
	}

	if req.Targeting != nil {
		targeting, err := buildTargetingSpec(req.Targeting)
		if err != nil {
			return "", err
		}
		payload.Set("targeting", targeting)
	}

	// A campanha é o dono do edge de criação, mas a conta é o caminho na
	// API Graph; o campaign_id no payload faz o vínculo
	resp, err := s.Client.CreateEntity(ctx, domain.LevelAdSet, campaignExternalID, payload, token)
	if err != nil {
		return "", err
	}

	return resp.ID, nil
}

func (s *MetaIntegrator) CreateAd(
	ctx context.Context,
	adSetExternalID string,
	req *domain.CreateAdRequest,
	token string,
) (string, error) {
	creative, err := buildCreativeSpec(req.Creative)
	if err != nil {
		return "", err
	}

	payload := url.Values{}
	payload.Set("name", req.Name)
	payload.Set("adset_id", adSetExternalID)
	payload.Set("status", statusOrDefault(req.Status))
	payload.Set("creative", creative)

	resp, err := s.Client.CreateEntity(ctx, domain.LevelAd, adSetExternalID, payload, token)
	if err != nil {
		return "", err
	}

	return resp.ID, nil
}

func (s *MetaIntegrator) UploadMedia(
	ctx context.Context,
	accountExternalID string,
	req *domain.UploadMediaRequest,
	token string,
) (string, error) {
	return s.Client.UploadMedia(ctx, accountExternalID, req, token)
}

func statusOrDefault(status string) string {
	if status == "" {
		// Entidades novas nascem pausadas para evitar gasto acidental
		return string(domain.StatusPaused)
	}
	return status
}

func marshalOrEmptyArray(values []string) string {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func buildTargetingSpec(t *domain.Targeting) (string, error) {
	spec := map[string]any{}

	if len(t.Countries) > 0 {
		spec["geo_locations"] = map[string]any{"countries": t.Countries}
	}
	if t.AgeMin > 0 {
		spec["age_min"] = t.AgeMin
	}
	if t.AgeMax > 0 {
		spec["age_max"] = t.AgeMax
	}
	if len(t.Platforms) > 0 {
		spec["publisher_platforms"] = t.Platforms
	}
	if len(t.Positions) > 0 {
		spec["facebook_positions"] = t.Positions
	}

	encoded, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar targeting: %w", err)
	}

	return string(encoded), nil
}

func buildCreativeSpec(c *domain.Creative) (string, error) {
	spec := map[string]any{}

	if c.Title != "" {
		spec["title"] = c.Title
	}
	if c.Body != "" {
		spec["body"] = c.Body
	}
	if c.LinkURL != "" {
		spec["link_url"] = c.LinkURL
	}
	if c.CallToAction != "" {
		spec["call_to_action_type"] = c.CallToAction
	}
	if c.ImageHash != "" {
		spec["image_hash"] = c.ImageHash
	}
	if c.VideoID != "" {
		spec["video_id"] = c.VideoID
	}

	encoded, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar criativo: %w", err)
	}

	return string(encoded), nil
}
