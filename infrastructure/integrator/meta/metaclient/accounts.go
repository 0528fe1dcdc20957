package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
)

type responseAdAccounts struct {
	Data   []metadomain.AdAccount `json:"data"`
	Paging metadomain.Paging      `json:"paging"`
}

// ListAdAccounts lista as contas de anúncio visíveis para o token,
// seguindo a paginação até o limite de páginas configurado.
func (c *MetaClient) ListAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,name,currency,account_status")
	params.Add("access_token", token)

	accounts := make([]metadomain.AdAccount, 0)

	body, err := c.get(ctx, "me/adaccounts", params)
	for page := 0; ; page++ {
		if err != nil {
			return nil, err
		}

		var response responseAdAccounts
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		accounts = append(accounts, response.Data...)

		if response.Paging.Next == "" || page >= c.cfg.Meta.MaxPages {
			break
		}

		body, err = c.getAbsolute(ctx, response.Paging.Next)
	}

	return accounts, nil
}
