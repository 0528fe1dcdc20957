package connecting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

func TestCredentialCache(t *testing.T) {
	cache := newCredentialCache()

	credential := &domain.Credential{
		UserID:      "user_1",
		Provider:    domain.ProviderMeta,
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	t.Run("Cache vazio não encontra nada", func(t *testing.T) {
		got, ok := cache.get("user_1", domain.ProviderMeta)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Entrada recém colocada é encontrada", func(t *testing.T) {
		cache.put(credential)

		got, ok := cache.get("user_1", domain.ProviderMeta)
		assert.True(t, ok)
		assert.Equal(t, credential, got)
	})

	t.Run("Chave separa usuário e provedor", func(t *testing.T) {
		_, ok := cache.get("user_1", domain.ProviderTavus)
		assert.False(t, ok)

		_, ok = cache.get("user_2", domain.ProviderMeta)
		assert.False(t, ok)
	})

	t.Run("Invalidação remove a entrada", func(t *testing.T) {
		cache.invalidate("user_1", domain.ProviderMeta)

		_, ok := cache.get("user_1", domain.ProviderMeta)
		assert.False(t, ok)
	})

	t.Run("Entrada além do TTL é ignorada", func(t *testing.T) {
		cache.entries[cacheKey("user_1", domain.ProviderMeta)] = cacheEntry{
			credential: credential,
			cachedAt:   time.Now().Add(-cacheTTL - time.Second),
		}

		_, ok := cache.get("user_1", domain.ProviderMeta)
		assert.False(t, ok)
	})
}
