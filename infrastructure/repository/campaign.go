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

const campaignsTable = "campaigns c"

type CampaignRepository interface {
	GetByID(id string) (*domain.Campaign, error)
	ListByAccountID(accountID string) ([]*domain.Campaign, error)
	SaveOrUpdate(campaign *domain.Campaign) (*domain.Campaign, error)
	DeleteByUserID(userID string) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) GetByID(id string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id, c.ad_account_id, c.external_id, c.name, c.status, c.objective, c.daily_budget, c.lifetime_budget, c.special_ad_categories, c.buying_type, c.created_at, c.updated_at").
		From(campaignsTable).
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	campaign, err := scanCampaign(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListByAccountID(accountID string) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id, c.ad_account_id, c.external_id, c.name, c.status, c.objective, c.daily_budget, c.lifetime_budget, c.special_ad_categories, c.buying_type, c.created_at, c.updated_at").
		From(campaignsTable).
		Where(squirrel.Eq{"c.ad_account_id": accountID}).
		OrderBy("c.name ASC").
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

	campaigns := make([]*domain.Campaign, 0)

	for rows.Next() {
		campaign, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) SaveOrUpdate(campaign *domain.Campaign) (*domain.Campaign, error) {
	if campaign.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		campaign.ID = id
	}

	query := squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("id", "ad_account_id", "external_id", "name", "status", "objective", "daily_budget", "lifetime_budget", "special_ad_categories", "buying_type").
		Values(
			campaign.ID,
			campaign.AdAccountID,
			campaign.ExternalID,
			campaign.Name,
			campaign.Status,
			campaign.Objective,
			campaign.DailyBudget,
			campaign.LifetimeBudget,
			pq.Array(campaign.SpecialAdCategories),
			campaign.BuyingType,
		).
		Suffix(`
			ON CONFLICT (ad_account_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				objective = EXCLUDED.objective,
				daily_budget = EXCLUDED.daily_budget,
				lifetime_budget = EXCLUDED.lifetime_budget,
				special_ad_categories = EXCLUDED.special_ad_categories,
				buying_type = EXCLUDED.buying_type,
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

	campaign.ID = id
	return campaign, nil
}

func (r *campaignRepository) DeleteByUserID(userID string) error {
	query, args, err := squirrel.
		Delete("campaigns").
		Where(squirrel.Expr("ad_account_id IN (SELECT id FROM ad_accounts WHERE user_id = ?)", userID)).
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

func scanCampaign(scan func(dest ...interface{}) error) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}

	var dailyBudget, lifetimeBudget sql.NullInt64
	var categories pq.StringArray

	if err := scan(
		&campaign.ID,
		&campaign.AdAccountID,
		&campaign.ExternalID,
		&campaign.Name,
		&campaign.Status,
		&campaign.Objective,
		&dailyBudget,
		&lifetimeBudget,
		&categories,
		&campaign.BuyingType,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if dailyBudget.Valid {
		campaign.DailyBudget = &dailyBudget.Int64
	}
	if lifetimeBudget.Valid {
		campaign.LifetimeBudget = &lifetimeBudget.Int64
	}
	campaign.SpecialAdCategories = categories

	return campaign, nil
}
