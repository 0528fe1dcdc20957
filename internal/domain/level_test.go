package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEntityLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected EntityLevel
		wantErr  bool
	}{
		{name: "campaign", input: "campaign", expected: LevelCampaign},
		{name: "adset", input: "adset", expected: LevelAdSet},
		{name: "ad", input: "ad", expected: LevelAd},
		{name: "nível desconhecido", input: "account", wantErr: true},
		{name: "vazio", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseEntityLevel(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestEntityLevel_Descriptor(t *testing.T) {
	d := LevelAdSet.Descriptor()

	assert.Equal(t, "adset", d.Name)
	assert.Equal(t, "ad_sets", d.StorageTable)
	assert.Equal(t, "campaign_id", d.ParentColumn)
	assert.Equal(t, "ad_set_metrics", d.MetricsTable)
	assert.Equal(t, "adsets", d.EdgeName)

	assert.Panics(t, func() {
		EntityLevel(99).Descriptor()
	})
}
