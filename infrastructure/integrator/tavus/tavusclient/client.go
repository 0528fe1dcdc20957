package tavusclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	tavusdomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/tavus/domain"
	"github.com/vfg2006/marketing-ops-api/internal/config"
)

// Client fala com a API do provedor de avatares, autenticada por uma
// chave estática no header x-api-key.
type Client interface {
	ListReplicas(ctx context.Context, apiKey string) ([]tavusdomain.Replica, error)
	DeleteReplica(ctx context.Context, replicaID, apiKey string) error
	ListPersonas(ctx context.Context, apiKey string) ([]tavusdomain.Persona, error)
	CreatePersona(ctx context.Context, req *tavusdomain.CreatePersonaRequest, apiKey string) (*tavusdomain.Persona, error)
	DeletePersona(ctx context.Context, personaID, apiKey string) error
	RenderVideo(ctx context.Context, req *tavusdomain.RenderVideoRequest, apiKey string) (*tavusdomain.Video, error)
	GetVideo(ctx context.Context, videoID, apiKey string) (*tavusdomain.Video, error)
	DeleteVideo(ctx context.Context, videoID, apiKey string) error
}

type TavusClient struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &TavusClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg,
	}
}

func (c *TavusClient) doRequest(ctx context.Context, method, path, apiKey string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestURL := c.cfg.Tavus.URL + path

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("x-api-key", apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &tavusdomain.APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("erro na API de avatares. Status: %d, Corpo: %s", resp.StatusCode, responseBody),
		}
	}

	return responseBody, nil
}

func (c *TavusClient) ListReplicas(ctx context.Context, apiKey string) ([]tavusdomain.Replica, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/replicas", apiKey, nil)
	if err != nil {
		return nil, err
	}

	var response tavusdomain.ListReplicasResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return response.Data, nil
}

func (c *TavusClient) DeleteReplica(ctx context.Context, replicaID, apiKey string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/replicas/"+replicaID, apiKey, nil)
	return err
}

func (c *TavusClient) ListPersonas(ctx context.Context, apiKey string) ([]tavusdomain.Persona, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/personas", apiKey, nil)
	if err != nil {
		return nil, err
	}

	var response tavusdomain.ListPersonasResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return response.Data, nil
}

func (c *TavusClient) CreatePersona(ctx context.Context, req *tavusdomain.CreatePersonaRequest, apiKey string) (*tavusdomain.Persona, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/personas", apiKey, req)
	if err != nil {
		return nil, err
	}

	var persona tavusdomain.Persona
	if err := json.Unmarshal(body, &persona); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return &persona, nil
}

func (c *TavusClient) DeletePersona(ctx context.Context, personaID, apiKey string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/personas/"+personaID, apiKey, nil)
	return err
}

func (c *TavusClient) RenderVideo(ctx context.Context, req *tavusdomain.RenderVideoRequest, apiKey string) (*tavusdomain.Video, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/videos", apiKey, req)
	if err != nil {
		return nil, err
	}

	var video tavusdomain.Video
	if err := json.Unmarshal(body, &video); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return &video, nil
}

func (c *TavusClient) GetVideo(ctx context.Context, videoID, apiKey string) (*tavusdomain.Video, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/videos/"+videoID, apiKey, nil)
	if err != nil {
		return nil, err
	}

	var video tavusdomain.Video
	if err := json.Unmarshal(body, &video); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return &video, nil
}

func (c *TavusClient) DeleteVideo(ctx context.Context, videoID, apiKey string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/videos/"+videoID, apiKey, nil)
	return err
}
