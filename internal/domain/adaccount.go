package domain

import "time"

type AdAccount struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ExternalID    string    `json:"external_id"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	AccountStatus int       `json:"account_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ConnectAccountRequest é o corpo enviado quando o usuário confirma
// a conta de anúncios que deseja vincular.
type ConnectAccountRequest struct {
	ExternalID    string `json:"external_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Currency      string `json:"currency"`
	AccountStatus int    `json:"account_status"`
}
