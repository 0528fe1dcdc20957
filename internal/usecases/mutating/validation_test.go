package mutating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOptimizationBillingCombination(t *testing.T) {
	tests := []struct {
		name             string
		optimizationGoal string
		billingEvent     string
		expected         bool
	}{
		{
			name:             "REACH cobra por impressões",
			optimizationGoal: "REACH",
			billingEvent:     "IMPRESSIONS",
			expected:         true,
		},
		{
			name:             "REACH não cobra por cliques",
			optimizationGoal: "REACH",
			billingEvent:     "LINK_CLICKS",
			expected:         false,
		},
		{
			name:             "LINK_CLICKS aceita cobrança por cliques",
			optimizationGoal: "LINK_CLICKS",
			billingEvent:     "LINK_CLICKS",
			expected:         true,
		},
		{
			name:             "LINK_CLICKS aceita cobrança por impressões",
			optimizationGoal: "LINK_CLICKS",
			billingEvent:     "IMPRESSIONS",
			expected:         true,
		},
		{
			name:             "THRUPLAY aceita cobrança por thruplay",
			optimizationGoal: "THRUPLAY",
			billingEvent:     "THRUPLAY",
			expected:         true,
		},
		{
			name:             "Conversões cobram apenas por impressões",
			optimizationGoal: "OFFSITE_CONVERSIONS",
			billingEvent:     "LINK_CLICKS",
			expected:         false,
		},
		{
			name:             "Meta desconhecida é rejeitada",
			optimizationGoal: "INVENTADO",
			billingEvent:     "IMPRESSIONS",
			expected:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isValidOptimizationBillingCombination(tt.optimizationGoal, tt.billingEvent)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestBidStrategiesRequiringCap(t *testing.T) {
	assert.True(t, bidStrategiesRequiringCap["LOWEST_COST_WITH_BID_CAP"])
	assert.True(t, bidStrategiesRequiringCap["COST_CAP"])
	assert.False(t, bidStrategiesRequiringCap["LOWEST_COST_WITHOUT_CAP"])
	assert.False(t, bidStrategiesRequiringCap[""])
}
