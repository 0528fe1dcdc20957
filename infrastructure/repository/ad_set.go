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

const adSetsTable = "ad_sets s"

type AdSetRepository interface {
	GetByID(id string) (*domain.AdSet, error)
	ListByCampaignID(campaignID string) ([]*domain.AdSet, error)
	SaveOrUpdate(adSet *domain.AdSet) (*domain.AdSet, error)
	DeleteByUserID(userID string) error
}

type adSetRepository struct {
	conn *postgres.Connection
}

func NewAdSetRepository(conn *postgres.Connection) AdSetRepository {
	return &adSetRepository{
		conn: conn,
	}
}

func (r *adSetRepository) GetByID(id string) (*domain.AdSet, error) {
	query, args, err := squirrel.
		Select("s.id, s.campaign_id, s.external_id, s.name, s.status, s.optimization_goal, s.billing_event, s.bid_strategy, s.bid_amount, s.daily_budget, s.lifetime_budget, s.targeting, s.created_at, s.updated_at").
		From(adSetsTable).
		Where(squirrel.Eq{"s.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	adSet, err := scanAdSet(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conjunto de anúncios: %w", err)
	}

	return adSet, nil
}

func (r *adSetRepository) ListByCampaignID(campaignID string) ([]*domain.AdSet, error) {
	query, args, err := squirrel.
		Select("s.id, s.campaign_id, s.external_id, s.name, s.status, s.optimization_goal, s.billing_event, s.bid_strategy, s.bid_amount, s.daily_budget, s.lifetime_budget, s.targeting, s.created_at, s.updated_at").
		From(adSetsTable).
		Where(squirrel.Eq{"s.campaign_id": campaignID}).
		OrderBy("s.name ASC").
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

	adSets := make([]*domain.AdSet, 0)

	for rows.Next() {
		adSet, err := scanAdSet(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conjunto de anúncios: %w", err)
		}
		adSets = append(adSets, adSet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return adSets, nil
}

func (r *adSetRepository) SaveOrUpdate(adSet *domain.AdSet) (*domain.AdSet, error) {
	if adSet.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		adSet.ID = id
	}

	var targetingJSON interface{}
	if adSet.Targeting != nil {
		raw, err := jsoniter.Marshal(adSet.Targeting)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar segmentação: %w", err)
		}
		targetingJSON = raw
	}

	query := squirrel.StatementBuilder.
		Insert("ad_sets").
		Columns("id", "campaign_id", "external_id", "name", "status", "optimization_goal", "billing_event", "bid_strategy", "bid_amount", "daily_budget", "lifetime_budget", "targeting").
		Values(
			adSet.ID,
			adSet.CampaignID,
			adSet.ExternalID,
			adSet.Name,
			adSet.Status,
			adSet.OptimizationGoal,
			adSet.BillingEvent,
			adSet.BidStrategy,
			adSet.BidAmount,
			adSet.DailyBudget,
			adSet.LifetimeBudget,
			targetingJSON,
		).
		Suffix(`
			ON CONFLICT (campaign_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				optimization_goal = EXCLUDED.optimization_goal,
				billing_event = EXCLUDED.billing_event,
				bid_strategy = EXCLUDED.bid_strategy,
				bid_amount = EXCLUDED.bid_amount,
				daily_budget = EXCLUDED.daily_budget,
				lifetime_budget = EXCLUDED.lifetime_budget,
				targeting = EXCLUDED.targeting,
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

	adSet.ID = id
	return adSet, nil
}

func (r *adSetRepository) DeleteByUserID(userID string) error {
	query, args, err := squirrel.
		Delete("ad_sets").
		Where(squirrel.Expr(`campaign_id IN (
			SELECT c.id FROM campaigns c
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

func scanAdSet(scan func(dest ...interface{}) error) (*domain.AdSet, error) {
	adSet := &domain.AdSet{}

	var bidAmount, dailyBudget, lifetimeBudget sql.NullInt64
	var targetingRaw []byte

	if err := scan(
		&adSet.ID,
		&adSet.CampaignID,
		&adSet.ExternalID,
		&adSet.Name,
		&adSet.Status,
		&adSet.OptimizationGoal,
		&adSet.BillingEvent,
		&adSet.BidStrategy,
		&bidAmount,
		&dailyBudget,
		&lifetimeBudget,
		&targetingRaw,
		&adSet.CreatedAt,
		&adSet.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if bidAmount.Valid {
		adSet.BidAmount = &bidAmount.Int64
	}
	if dailyBudget.Valid {
		adSet.DailyBudget = &dailyBudget.Int64
	}
	if lifetimeBudget.Valid {
		adSet.LifetimeBudget = &lifetimeBudget.Int64
	}

	if len(targetingRaw) > 0 {
		targeting := &domain.Targeting{}
		if err := jsoniter.Unmarshal(targetingRaw, targeting); err != nil {
			return nil, fmt.Errorf("erro ao desserializar segmentação: %w", err)
		}
		adSet.Targeting = targeting
	}

	return adSet, nil
}
