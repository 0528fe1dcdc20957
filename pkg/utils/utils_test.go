package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeRatio(t *testing.T) {
	assert.Equal(t, 2.5, SafeRatio(5, 2))
	assert.Equal(t, 0.0, SafeRatio(5, 0))
	assert.Equal(t, 0.0, SafeRatio(0, 0))
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 2.67, RoundWithTwoDecimalPlace(2.6666))
	assert.Equal(t, 13.33, RoundWithTwoDecimalPlace(13.3333))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestTruncateToDay(t *testing.T) {
	input := time.Date(2026, 8, 30, 17, 45, 12, 999, time.UTC)

	result := TruncateToDay(input)

	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), result)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()

	assert.NoError(t, err)
	assert.Len(t, id, 12)
}
