package domain

import "time"

type Targeting struct {
	Countries []string `json:"countries,omitempty"`
	AgeMin    int      `json:"age_min,omitempty"`
	AgeMax    int      `json:"age_max,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
	Positions []string `json:"positions,omitempty"`
}

type AdSet struct {
	ID               string       `json:"id"`
	CampaignID       string       `json:"campaign_id"`
	ExternalID       string       `json:"external_id"`
	Name             string       `json:"name"`
	Status           EntityStatus `json:"status"`
	OptimizationGoal string       `json:"optimization_goal"`
	BillingEvent     string       `json:"billing_event"`
	BidStrategy      string       `json:"bid_strategy"`
	BidAmount        *int64       `json:"bid_amount,omitempty"`
	DailyBudget      *int64       `json:"daily_budget,omitempty"`
	LifetimeBudget   *int64       `json:"lifetime_budget,omitempty"`
	Targeting        *Targeting   `json:"targeting,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

type CreateAdSetRequest struct {
	CampaignID       string     `json:"campaign_id" validate:"required"`
	Name             string     `json:"name" validate:"required"`
	Status           string     `json:"status"`
	OptimizationGoal string     `json:"optimization_goal" validate:"required"`
	BillingEvent     string     `json:"billing_event" validate:"required"`
	BidStrategy      string     `json:"bid_strategy"`
	BidAmount        *int64     `json:"bid_amount,omitempty"`
	DailyBudget      *int64     `json:"daily_budget,omitempty"`
	LifetimeBudget   *int64     `json:"lifetime_budget,omitempty"`
	Targeting        *Targeting `json:"targeting,omitempty"`
}

// HasOwnBudget indica se a requisição carrega orçamento no nível do conjunto.
func (r *CreateAdSetRequest) HasOwnBudget() bool {
	return r.DailyBudget != nil || r.LifetimeBudget != nil
}
