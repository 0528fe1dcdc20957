package connecting

import (
	"sync"
	"time"

	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	credential *domain.Credential
	cachedAt   time.Time
}

// credentialCache evita uma ida ao banco por requisição para resolver a
// credencial do usuário. Invalidado em conexão e desconexão; a expiração
// do token em si é verificada pelo chamador, não pelo cache.
type credentialCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newCredentialCache() *credentialCache {
	return &credentialCache{
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(userID string, provider domain.Provider) string {
	return userID + ":" + string(provider)
}

func (c *credentialCache) get(userID string, provider domain.Provider) (*domain.Credential, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(userID, provider)]
	if !ok || time.Since(entry.cachedAt) > cacheTTL {
		return nil, false
	}

	return entry.credential, true
}

func (c *credentialCache) put(cred *domain.Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(cred.UserID, cred.Provider)] = cacheEntry{
		credential: cred,
		cachedAt:   time.Now(),
	}
}

func (c *credentialCache) invalidate(userID string, provider domain.Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, cacheKey(userID, provider))
}
