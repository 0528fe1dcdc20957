package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-ops-api/internal/config"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

// Client é o contrato de baixo nível com a API Graph de marketing.
// Todas as chamadas carregam timeout e normalizam erros para a taxonomia
// de metadomain. Chamadas interativas podem desabilitar o retry.
type Client interface {
	ExchangeCode(ctx context.Context, code string) (*metadomain.TokenResponse, error)
	VerifyAdPermissions(ctx context.Context, token string) (bool, error)
	ListAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error)
	ListHierarchy(ctx context.Context, level domain.EntityLevel, parentID, token string, fields []string) ([]metadomain.Entity, error)
	CreateEntity(ctx context.Context, level domain.EntityLevel, parentID string, payload url.Values, token string) (*metadomain.CreateResponse, error)
	UploadMedia(ctx context.Context, accountID string, media *domain.UploadMediaRequest, token string) (string, error)
	GetInsights(ctx context.Context, entityID, token string, since, until time.Time) ([]metadomain.InsightRow, error)
	WithoutRetries() Client
}

type MetaClient struct {
	cfg        *config.Config
	httpClient *http.Client
	maxRetries int
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Meta.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MetaClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: cfg.Meta.MaxRetries,
	}
}

// WithoutRetries devolve uma visão do cliente sem retry, para caminhos
// interativos onde o usuário está esperando a resposta.
func (c *MetaClient) WithoutRetries() Client {
	clone := *c
	clone.maxRetries = 0
	return &clone
}

// doRequest executa a requisição com retry exponencial limitado. Apenas
// erros RateLimited e timeouts de rede são elegíveis para retry;
// AuthExpired e PermissionDenied propagam imediatamente.
func (c *MetaClient) doRequest(ctx context.Context, method, requestURL string, body func() (io.Reader, string)) ([]byte, error) {
	backoff := time.Second

	var lastErr error
	for attempt := 0; ; attempt++ {
		reader, contentType := body()

		req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
		if err != nil {
			return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Timeout de rede é tratado como transiente, da mesma classe
			// que rate limit
			lastErr = &metadomain.APIError{
				Kind:    metadomain.KindRateLimited,
				Message: fmt.Sprintf("falha de rede: %v", err),
			}
		} else {
			payload, handleErr := c.handleResponse(resp)
			if handleErr == nil {
				return payload, nil
			}
			lastErr = handleErr

			if !metadomain.IsKind(handleErr, metadomain.KindRateLimited) {
				return nil, handleErr
			}
		}

		if attempt >= c.maxRetries {
			return nil, lastErr
		}

		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"backoff": backoff.String(),
			"url":     requestURL,
		}).Warn("Limite de requisições da API Meta atingido. Aguardando para tentar novamente")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// handleResponse lê o corpo e normaliza respostas de erro.
func (c *MetaClient) handleResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return payload, nil
	}

	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(payload, &errorResp); err != nil {
		return nil, metadomain.Normalize(resp.StatusCode, nil)
	}

	return nil, metadomain.Normalize(resp.StatusCode, &errorResp)
}

// get monta a URL com os parâmetros e executa um GET.
func (c *MetaClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/%s", c.cfg.Meta.URL, path)
	if len(params) > 0 {
		requestURL = requestURL + "?" + params.Encode()
	}

	return c.doRequest(ctx, http.MethodGet, requestURL, func() (io.Reader, string) {
		return nil, ""
	})
}

// getAbsolute executa um GET em uma URL completa (usado para seguir
// paging.next, que já vem montada pela API).
func (c *MetaClient) getAbsolute(ctx context.Context, requestURL string) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, requestURL, func() (io.Reader, string) {
		return nil, ""
	})
}
