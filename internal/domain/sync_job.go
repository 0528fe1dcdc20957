package domain

import "time"

type SyncJobStatus string

const (
	SyncJobPending   SyncJobStatus = "pending"
	SyncJobRunning   SyncJobStatus = "running"
	SyncJobCompleted SyncJobStatus = "completed"
	SyncJobFailed    SyncJobStatus = "failed"
)

// IsTerminal indica se o job chegou a um estado final.
func (s SyncJobStatus) IsTerminal() bool {
	return s == SyncJobCompleted || s == SyncJobFailed
}

// SyncJob é o handle persistido de uma sincronização assíncrona de métricas.
// O chamador consulta o job por polling até alcançar um estado terminal.
// Falhas de entidades individuais durante a caminhada não levam o job para
// "failed"; são acumuladas em Issues e o job encerra como "completed".
type SyncJob struct {
	ID          string        `json:"job_id"`
	UserID      string        `json:"user_id"`
	AdAccountID string        `json:"ad_account_id"`
	Status      SyncJobStatus `json:"status"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Error       string        `json:"error,omitempty"`
	Issues      []SyncIssue   `json:"issues,omitempty"`
}

// SyncIssue registra a falha isolada de uma entidade durante a caminhada.
type SyncIssue struct {
	Level    string `json:"level"`
	EntityID string `json:"entity_id"`
	Message  string `json:"message"`
}
