package domain

import "time"

type Provider string

const (
	ProviderMeta  Provider = "meta"
	ProviderTavus Provider = "tavus"
)

// Credential representa o token de acesso de um usuário junto a um provedor
// externo. Existe no máximo uma credencial ativa por (usuário, provedor).
type Credential struct {
	UserID           string    `json:"user_id"`
	Provider         Provider  `json:"provider"`
	AccessToken      string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
	HasAdPermissions bool      `json:"has_ad_permissions"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsExpired indica se a credencial já passou da data de expiração.
// Uma credencial expirada é tratada como inexistente pelos chamadores.
func (c *Credential) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
