package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/marketing-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

// Subqueries que resolvem as entidades de um usuário em cada nível da
// hierarquia. Usadas na limpeza de métricas durante a desconexão.
var metricOwnerSubqueries = map[domain.EntityLevel]string{
	domain.LevelCampaign: `
		SELECT c.id FROM campaigns c
		JOIN ad_accounts aa ON c.ad_account_id = aa.id
		WHERE aa.user_id = ?`,
	domain.LevelAdSet: `
		SELECT s.id FROM ad_sets s
		JOIN campaigns c ON s.campaign_id = c.id
		JOIN ad_accounts aa ON c.ad_account_id = aa.id
		WHERE aa.user_id = ?`,
	domain.LevelAd: `
		SELECT a.id FROM ads a
		JOIN ad_sets s ON a.ad_set_id = s.id
		JOIN campaigns c ON s.campaign_id = c.id
		JOIN ad_accounts aa ON c.ad_account_id = aa.id
		WHERE aa.user_id = ?`,
}

// MetricRepository grava e lê as métricas diárias de qualquer nível da
// hierarquia. A tabela física é resolvida pelo descritor do nível, então
// a mesma implementação serve campanhas, conjuntos e anúncios.
type MetricRepository interface {
	SaveOrUpdate(level domain.EntityLevel, row *domain.MetricRow) error
	GetByEntityAndRange(level domain.EntityLevel, entityID string, start, end time.Time) ([]*domain.MetricRow, error)
	DeleteByUserID(level domain.EntityLevel, userID string) error
}

type metricRepository struct {
	conn *postgres.Connection
}

func NewMetricRepository(conn *postgres.Connection) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// metricUpsert monta o insert com resolução de conflito pela chave
// (entity_id, date): a segunda gravação do mesmo dia substitui os valores,
// nunca duplica nem soma.
func metricUpsert(table string, row *domain.MetricRow) squirrel.InsertBuilder {
	return squirrel.StatementBuilder.
		Insert(table).
		Columns("entity_id", "date", "impressions", "clicks", "reach", "spend", "frequency", "conversions").
		Values(
			row.EntityID,
			row.Date,
			row.Impressions,
			row.Clicks,
			row.Reach,
			row.Spend,
			row.Frequency,
			row.Conversions,
		).
		Suffix(`
			ON CONFLICT (entity_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				reach = EXCLUDED.reach,
				spend = EXCLUDED.spend,
				frequency = EXCLUDED.frequency,
				conversions = EXCLUDED.conversions,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)
}

// SaveOrUpdate insere a linha do dia ou substitui os valores existentes.
// Re-sincronizações são idempotentes por construção da query.
func (r *metricRepository) SaveOrUpdate(level domain.EntityLevel, row *domain.MetricRow) error {
	descriptor := level.Descriptor()

	sqlQuery, args, err := metricUpsert(descriptor.MetricsTable, row).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *metricRepository) GetByEntityAndRange(level domain.EntityLevel, entityID string, start, end time.Time) ([]*domain.MetricRow, error) {
	descriptor := level.Descriptor()

	query, args, err := squirrel.
		Select("m.entity_id, m.date, m.impressions, m.clicks, m.reach, m.spend, m.frequency, m.conversions").
		From(fmt.Sprintf("%s m", descriptor.MetricsTable)).
		Where(squirrel.Eq{"m.entity_id": entityID}).
		Where(squirrel.GtOrEq{"m.date": start}).
		Where(squirrel.LtOrEq{"m.date": end}).
		OrderBy("m.date ASC").
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

	metrics := make([]*domain.MetricRow, 0)

	for rows.Next() {
		metric := &domain.MetricRow{}

		if err := rows.Scan(
			&metric.EntityID,
			&metric.Date,
			&metric.Impressions,
			&metric.Clicks,
			&metric.Reach,
			&metric.Spend,
			&metric.Frequency,
			&metric.Conversions,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica: %w", err)
		}

		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

func (r *metricRepository) DeleteByUserID(level domain.EntityLevel, userID string) error {
	descriptor := level.Descriptor()

	subquery, ok := metricOwnerSubqueries[level]
	if !ok {
		return fmt.Errorf("nível sem subquery de limpeza: %s", level)
	}

	query, args, err := squirrel.
		Delete(descriptor.MetricsTable).
		Where(squirrel.Expr(fmt.Sprintf("entity_id IN (%s)", subquery), userID)).
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
