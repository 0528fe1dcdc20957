package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/marketing-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/utils"
)

const adsTable = "ads a"

type AdRepository interface {
	GetByID(id string) (*domain.Ad, error)
	ListByAdSetID(adSetID string) ([]*domain.Ad, error)
	SaveOrUpdate(ad *domain.Ad) (*domain.Ad, error)
	DeleteByUserID(userID string) error
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

func (r *adRepository) GetByID(id string) (*domain.Ad, error) {
	query, args, err := squirrel.
		Select("a.id, a.ad_set_id, a.external_id, a.name, a.status, a.creative, a.created_at, a.updated_at").
		From(adsTable).
		Where(squirrel.Eq{"a.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	ad, err := scanAd(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
	}

	return ad, nil
}

func (r *adRepository) ListByAdSetID(adSetID string) ([]*domain.Ad, error) {
	query, args, err := squirrel.
		Select("a.id, a.ad_set_id, a.external_id, a.name, a.status, a.creative, a.created_at, a.updated_at").
		From(adsTable).
		Where(squirrel.Eq{"a.ad_set_id": adSetID}).
		OrderBy("a.name ASC").
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

	ads := make([]*domain.Ad, 0)

	for rows.Next() {
		ad, err := scanAd(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear anúncio: %w", err)
		}
		ads = append(ads, ad)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ads, nil
}

func (r *adRepository) SaveOrUpdate(ad *domain.Ad) (*domain.Ad, error) {
	if ad.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		ad.ID = id
	}

	var creativeJSON interface{}
	if ad.Creative != nil {
		raw, err := jsoniter.Marshal(ad.Creative)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar criativo: %w", err)
		}
		creativeJSON = raw
	}

	query := squirrel.StatementBuilder.
		Insert("ads").
		Columns("id", "ad_set_id", "external_id", "name", "status", "creative").
		Values(
			ad.ID,
			ad.AdSetID,
			ad.ExternalID,
			ad.Name,
			ad.Status,
			creativeJSON,
		).
		Suffix(`
			ON CONFLICT (ad_set_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				creative = EXCLUDED.creative,
				updated_at = NOW()
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

	ad.ID = id
	return ad, nil
}

func (r *adRepository) DeleteByUserID(userID string) error {
	query, args, err := squirrel.
		Delete("ads").
		Where(squirrel.Expr(`ad_set_id IN (
			SELECT s.id FROM ad_sets s
			JOIN campaigns c ON s.campaign_id = c.id
			JOIN ad_accounts aa ON c.ad_account_id = aa.id
			WHERE aa.user_id = ?
		)`, userID)).
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

func scanAd(scan func(dest ...interface{}) error) (*domain.Ad, error) {
	ad := &domain.Ad{}

	var creativeRaw []byte

	if err := scan(
		&ad.ID,
		&ad.AdSetID,
		&ad.ExternalID,
		&ad.Name,
		&ad.Status,
		&creativeRaw,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(creativeRaw) > 0 {
		creative := &domain.Creative{}
		if err := jsoniter.Unmarshal(creativeRaw, creative); err != nil {
			return nil, fmt.Errorf("erro ao desserializar criativo: %w", err)
		}
		ad.Creative = creative
	}

	return ad, nil
}
