package domain

import "time"

// AIContext é o documento de contexto servido ao colaborador de chat.
// Apenas o contrato de leitura é responsabilidade desta API; o backend de
// conversação vive fora dela.
type AIContext struct {
	GeneratedAt time.Time           `json:"generated_at"`
	WindowDays  int                 `json:"window_days"`
	Accounts    []*AIContextAccount `json:"accounts"`
}

type AIContextAccount struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Currency  string               `json:"currency"`
	Campaigns []*AIContextCampaign `json:"campaigns"`
}

type AIContextCampaign struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Status  EntityStatus    `json:"status"`
	Summary *MetricsSummary `json:"summary"`
}
