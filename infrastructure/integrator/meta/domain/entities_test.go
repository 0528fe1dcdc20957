package metadomain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenResponse_ExpiresInTolerante(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected int64
	}{
		{
			name:     "Número simples",
			payload:  `{"access_token":"t","expires_in":5183944}`,
			expected: 5183944,
		},
		{
			name:     "Número entre aspas",
			payload:  `{"access_token":"t","expires_in":"5183944"}`,
			expected: 5183944,
		},
		{
			name:     "Lixo não numérico vira zero sem falhar a troca",
			payload:  `{"access_token":"t","expires_in":"abc"}`,
			expected: 0,
		},
		{
			name:     "Null vira zero",
			payload:  `{"access_token":"t","expires_in":null}`,
			expected: 0,
		},
		{
			name:     "Campo ausente vira zero",
			payload:  `{"access_token":"t"}`,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp TokenResponse

			err := json.Unmarshal([]byte(tt.payload), &resp)

			assert.NoError(t, err)
			assert.Equal(t, "t", resp.AccessToken)
			assert.Equal(t, tt.expected, int64(resp.ExpiresIn))
		})
	}
}
