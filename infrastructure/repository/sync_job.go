package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/marketing-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

const syncJobsTable = "sync_jobs sj"

// SyncJobRepository persiste o ciclo de vida dos jobs de sincronização.
// As transições são sempre pending -> running -> (completed | failed).
type SyncJobRepository interface {
	Create(job *domain.SyncJob) (*domain.SyncJob, error)
	MarkRunning(id string) error
	Complete(id string, issues []domain.SyncIssue) error
	Fail(id string, message string) error
	GetByID(id string) (*domain.SyncJob, error)
	DeleteByUserID(userID string) error
}

type syncJobRepository struct {
	conn *postgres.Connection
}

func NewSyncJobRepository(conn *postgres.Connection) SyncJobRepository {
	return &syncJobRepository{
		conn: conn,
	}
}

func (r *syncJobRepository) Create(job *domain.SyncJob) (*domain.SyncJob, error) {
	if job.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		job.ID = id
	}
	job.Status = domain.SyncJobPending

	query := squirrel.StatementBuilder.
		Insert("sync_jobs").
		Columns("id", "user_id", "ad_account_id", "status").
		Values(job.ID, job.UserID, job.AdAccountID, job.Status).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return job, nil
}

func (r *syncJobRepository) MarkRunning(id string) error {
	query, args, err := squirrel.
		Update("sync_jobs").
		Set("status", domain.SyncJobRunning).
		Set("started_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncJobRepository) Complete(id string, issues []domain.SyncIssue) error {
	var issuesJSON interface{}
	if len(issues) > 0 {
		raw, err := jsoniter.Marshal(issues)
		if err != nil {
			return fmt.Errorf("erro ao serializar pendências: %w", err)
		}
		issuesJSON = raw
	}

	query, args, err := squirrel.
		Update("sync_jobs").
		Set("status", domain.SyncJobCompleted).
		Set("completed_at", time.Now().UTC()).
		Set("issues", issuesJSON).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncJobRepository) Fail(id string, message string) error {
	query, args, err := squirrel.
		Update("sync_jobs").
		Set("status", domain.SyncJobFailed).
		Set("completed_at", time.Now().UTC()).
		Set("error", message).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *syncJobRepository) GetByID(id string) (*domain.SyncJob, error) {
	query, args, err := squirrel.
		Select("sj.id, sj.user_id, sj.ad_account_id, sj.status, sj.started_at, sj.completed_at, sj.error, sj.issues").
		From(syncJobsTable).
		Where(squirrel.Eq{"sj.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	job := &domain.SyncJob{}
	var startedAt, completedAt sql.NullTime
	var errMessage sql.NullString
	var issuesRaw []byte

	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.AdAccountID,
		&job.Status,
		&startedAt,
		&completedAt,
		&errMessage,
		&issuesRaw,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear job de sincronização: %w", err)
	}

	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	if errMessage.Valid {
		job.Error = errMessage.String
	}

	if len(issuesRaw) > 0 {
		if err := jsoniter.Unmarshal(issuesRaw, &job.Issues); err != nil {
			return nil, fmt.Errorf("erro ao desserializar pendências: %w", err)
		}
	}

	return job, nil
}

func (r *syncJobRepository) DeleteByUserID(userID string) error {
	query, args, err := squirrel.
		Delete("sync_jobs").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
