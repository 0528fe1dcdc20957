package domain

import "time"

// Replica é a réplica visual treinada no provedor de avatares.
type Replica struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Stock      bool      `json:"stock"`
	CreatedAt  time.Time `json:"created_at"`
}

// Persona é o roteiro comportamental associado a uma réplica.
type Persona struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ExternalID   string    `json:"external_id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt"`
	CreatedAt    time.Time `json:"created_at"`
}

type AvatarVideo struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ExternalID string    `json:"external_id"`
	ReplicaID  string    `json:"replica_id"`
	Script     string    `json:"script"`
	Status     string    `json:"status"`
	HostedURL  string    `json:"hosted_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RenderVideoRequest struct {
	ReplicaID string `json:"replica_id" validate:"required"`
	Script    string `json:"script" validate:"required"`
	Name      string `json:"name"`
}
