package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

func TestMetricUpsert_IdempotentePorEntidadeEDia(t *testing.T) {
	row := &domain.MetricRow{
		EntityID:    "cmp_1",
		Date:        time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		Impressions: 3000,
		Clicks:      80,
		Reach:       2400,
		Spend:       40.0,
		Frequency:   1.25,
		Conversions: 10,
	}

	tests := []struct {
		name  string
		level domain.EntityLevel
		table string
	}{
		{name: "campanha", level: domain.LevelCampaign, table: "campaign_metrics"},
		{name: "conjunto", level: domain.LevelAdSet, table: "ad_set_metrics"},
		{name: "anúncio", level: domain.LevelAd, table: "ad_metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlQuery, args, err := metricUpsert(tt.level.Descriptor().MetricsTable, row).ToSql()

			assert.NoError(t, err)
			assert.Contains(t, sqlQuery, "INSERT INTO "+tt.table)
			assert.Contains(t, sqlQuery, "ON CONFLICT (entity_id, date) DO UPDATE SET")

			// Conflito substitui todos os contadores, nunca soma
			for _, column := range []string{"impressions", "clicks", "reach", "spend", "frequency", "conversions"} {
				assert.Contains(t, sqlQuery, column+" = EXCLUDED."+column)
			}
			assert.Contains(t, sqlQuery, "updated_at = NOW()")

			assert.Equal(t, []interface{}{
				"cmp_1",
				row.Date,
				int64(3000),
				int64(80),
				int64(2400),
				40.0,
				1.25,
				int64(10),
			}, args)
		})
	}
}
