package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
)

type responseInsights struct {
	Data   []metadomain.InsightRow `json:"data"`
	Paging metadomain.Paging       `json:"paging"`
}

// GetInsights busca as métricas diárias de uma entidade (qualquer nível)
// no intervalo informado. time_increment=1 quebra o resultado em uma
// linha por dia.
func (c *MetaClient) GetInsights(
	ctx context.Context,
	entityID, token string,
	since, until time.Time,
) ([]metadomain.InsightRow, error) {
	timeRange := fmt.Sprintf(
		"{\"since\":\"%s\",\"until\":\"%s\"}",
		since.Format(time.DateOnly),
		until.Format(time.DateOnly),
	)

	params := url.Values{}
	params.Add("fields", "impressions,clicks,reach,spend,frequency,actions")
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1")
	params.Add("access_token", token)

	path := fmt.Sprintf("%s/insights", entityID)

	rows := make([]metadomain.InsightRow, 0)

	body, err := c.get(ctx, path, params)
	for page := 0; ; page++ {
		if err != nil {
			return nil, err
		}

		var response responseInsights
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		rows = append(rows, response.Data...)

		if response.Paging.Next == "" || page >= c.cfg.Meta.MaxPages {
			break
		}

		body, err = c.getAbsolute(ctx, response.Paging.Next)
	}

	return rows, nil
}
