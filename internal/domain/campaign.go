package domain

import "time"

type EntityStatus string

const (
	StatusActive   EntityStatus = "ACTIVE"
	StatusPaused   EntityStatus = "PAUSED"
	StatusArchived EntityStatus = "ARCHIVED"
	StatusDeleted  EntityStatus = "DELETED"
)

type Campaign struct {
	ID                 string       `json:"id"`
	AdAccountID        string       `json:"ad_account_id"`
	ExternalID         string       `json:"external_id"`
	Name               string       `json:"name"`
	Status             EntityStatus `json:"status"`
	Objective          string       `json:"objective"`
	DailyBudget        *int64       `json:"daily_budget,omitempty"`
	LifetimeBudget     *int64       `json:"lifetime_budget,omitempty"`
	SpecialAdCategories []string    `json:"special_ad_categories"`
	BuyingType         string       `json:"buying_type"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// HasCBO indica se a campanha usa Campaign Budget Optimization, ou seja,
// se o orçamento é definido no nível da campanha. Quando verdadeiro, os
// conjuntos de anúncios filhos não podem ter orçamento próprio.
func (c *Campaign) HasCBO() bool {
	return c.DailyBudget != nil || c.LifetimeBudget != nil
}

type CreateCampaignRequest struct {
	AdAccountID         string   `json:"ad_account_id" validate:"required"`
	Name                string   `json:"name" validate:"required"`
	Objective           string   `json:"objective" validate:"required"`
	Status              string   `json:"status"`
	DailyBudget         *int64   `json:"daily_budget,omitempty"`
	LifetimeBudget      *int64   `json:"lifetime_budget,omitempty"`
	SpecialAdCategories []string `json:"special_ad_categories"`
	BuyingType          string   `json:"buying_type"`
}
