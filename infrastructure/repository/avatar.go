package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/marketing-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

// AvatarRepository espelha os recursos do provedor de avatares (réplicas,
// personas e vídeos) por usuário. Réplicas de catálogo não são persistidas.
type AvatarRepository interface {
	SaveVideo(video *domain.AvatarVideo) (*domain.AvatarVideo, error)
	UpdateVideoStatus(id, status, hostedURL string) error
	GetVideoByID(id string) (*domain.AvatarVideo, error)
	ListVideosByUserID(userID string) ([]*domain.AvatarVideo, error)
	DeleteVideosByUserID(userID string) error
}

type avatarRepository struct {
	conn *postgres.Connection
}

func NewAvatarRepository(conn *postgres.Connection) AvatarRepository {
	return &avatarRepository{
		conn: conn,
	}
}

func (r *avatarRepository) SaveVideo(video *domain.AvatarVideo) (*domain.AvatarVideo, error) {
	if video.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		video.ID = id
	}

	query := squirrel.StatementBuilder.
		Insert("avatar_videos").
		Columns("id", "user_id", "external_id", "replica_id", "script", "status", "hosted_url").
		Values(
			video.ID,
			video.UserID,
			video.ExternalID,
			video.ReplicaID,
			video.Script,
			video.Status,
			video.HostedURL,
		).
		Suffix(`
			ON CONFLICT (user_id, external_id) DO UPDATE SET
				status = EXCLUDED.status,
				hosted_url = EXCLUDED.hosted_url
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id string
	if err := r.conn.QueryRow(sqlQuery, args...).Scan(&id); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	video.ID = id
	return video, nil
}

func (r *avatarRepository) UpdateVideoStatus(id, status, hostedURL string) error {
	builder := squirrel.
		Update("avatar_videos").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if hostedURL != "" {
		builder = builder.Set("hosted_url", hostedURL)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *avatarRepository) GetVideoByID(id string) (*domain.AvatarVideo, error) {
	query, args, err := squirrel.
		Select("av.id, av.user_id, av.external_id, av.replica_id, av.script, av.status, av.hosted_url, av.created_at").
		From("avatar_videos av").
		Where(squirrel.Eq{"av.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	video, err := scanAvatarVideo(r.conn.QueryRow(query, args...).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear vídeo de avatar: %w", err)
	}

	return video, nil
}

func (r *avatarRepository) ListVideosByUserID(userID string) ([]*domain.AvatarVideo, error) {
	query, args, err := squirrel.
		Select("av.id, av.user_id, av.external_id, av.replica_id, av.script, av.status, av.hosted_url, av.created_at").
		From("avatar_videos av").
		Where(squirrel.Eq{"av.user_id": userID}).
		OrderBy("av.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	videos := make([]*domain.AvatarVideo, 0)

	for rows.Next() {
		video, err := scanAvatarVideo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear vídeo de avatar: %w", err)
		}
		videos = append(videos, video)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return videos, nil
}

func (r *avatarRepository) DeleteVideosByUserID(userID string) error {
	query, args, err := squirrel.
		Delete("avatar_videos").
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

func scanAvatarVideo(scan func(dest ...interface{}) error) (*domain.AvatarVideo, error) {
	video := &domain.AvatarVideo{}

	var hostedURL sql.NullString

	if err := scan(
		&video.ID,
		&video.UserID,
		&video.ExternalID,
		&video.ReplicaID,
		&video.Script,
		&video.Status,
		&hostedURL,
		&video.CreatedAt,
	); err != nil {
		return nil, err
	}

	if hostedURL.Valid {
		video.HostedURL = hostedURL.String
	}

	return video, nil
}
