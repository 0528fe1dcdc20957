package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

type responseEntities struct {
	Data   []metadomain.Entity `json:"data"`
	Paging metadomain.Paging   `json:"paging"`
}

// ListHierarchy lista os filhos diretos de parentID no nível informado
// (campanhas de uma conta, conjuntos de uma campanha, anúncios de um
// conjunto), seguindo paging.next até esgotar ou atingir o limite de
// páginas de segurança.
func (c *MetaClient) ListHierarchy(
	ctx context.Context,
	level domain.EntityLevel,
	parentID, token string,
	fields []string,
) ([]metadomain.Entity, error) {
	if len(fields) == 0 {
		fields = []string{"id", "name", "status"}
	}

	params := url.Values{}
	params.Add("fields", strings.Join(fields, ","))
	params.Add("access_token", token)

	path := fmt.Sprintf("%s/%s", parentID, level.Descriptor().EdgeName)

	entities := make([]metadomain.Entity, 0)

	body, err := c.get(ctx, path, params)
	for page := 0; ; page++ {
		if err != nil {
			return nil, err
		}

		var response responseEntities
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		entities = append(entities, response.Data...)

		if response.Paging.Next == "" || page >= c.cfg.Meta.MaxPages {
			break
		}

		body, err = c.getAbsolute(ctx, response.Paging.Next)
	}

	return entities, nil
}

// CreateEntity submete uma criação no nível informado sob parentID e
// retorna o id emitido pelo provedor.
func (c *MetaClient) CreateEntity(
	ctx context.Context,
	level domain.EntityLevel,
	parentID string,
	payload url.Values,
	token string,
) (*metadomain.CreateResponse, error) {
	payload.Set("access_token", token)

	requestURL := fmt.Sprintf("%s/%s/%s", c.cfg.Meta.URL, parentID, level.Descriptor().EdgeName)
	encoded := payload.Encode()

	body, err := c.doRequest(ctx, http.MethodPost, requestURL, func() (io.Reader, string) {
		return strings.NewReader(encoded), "application/x-www-form-urlencoded"
	})
	if err != nil {
		return nil, err
	}

	var response metadomain.CreateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	if response.ID == "" {
		return nil, fmt.Errorf("provedor não retornou id para a entidade criada")
	}

	response.Raw = body
	return &response, nil
}
