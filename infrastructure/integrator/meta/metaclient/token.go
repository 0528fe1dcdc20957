package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
)

// ExchangeCode troca o código de autorização OAuth por um token de acesso.
func (c *MetaClient) ExchangeCode(ctx context.Context, code string) (*metadomain.TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("código de autorização não pode ser vazio")
	}

	params := url.Values{}
	params.Add("client_id", c.cfg.Meta.AppID)
	params.Add("client_secret", c.cfg.Meta.AppSecret)
	params.Add("redirect_uri", c.cfg.Meta.RedirectURI)
	params.Add("code", code)

	body, err := c.get(ctx, "oauth/access_token", params)
	if err != nil {
		return nil, err
	}

	var tokenResp metadomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta do token: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResp, nil
}

// VerifyAdPermissions confere se o token concede acesso de leitura às
// contas de anúncio fazendo uma chamada leve de sondagem. Erros com cara
// de permissão negada retornam false em vez de erro; as demais falhas
// propagam para o chamador decidir.
func (c *MetaClient) VerifyAdPermissions(ctx context.Context, token string) (bool, error) {
	params := url.Values{}
	params.Add("fields", "id")
	params.Add("limit", "1")
	params.Add("access_token", token)

	_, err := c.get(ctx, "me/adaccounts", params)
	if err != nil {
		if metadomain.IsKind(err, metadomain.KindPermissionDenied) {
			logrus.WithError(err).Warn("Sondagem de permissões de anúncio negada pelo provedor")
			return false, nil
		}
		return false, err
	}

	return true, nil
}
