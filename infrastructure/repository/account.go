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

const adAccountsTable = "ad_accounts aa"

type AccountRepository interface {
	GetByID(id string) (*domain.AdAccount, error)
	GetByExternalID(userID, externalID string) (*domain.AdAccount, error)
	ListByUserID(userID string) ([]*domain.AdAccount, error)
	SaveOrUpdate(account *domain.AdAccount) (*domain.AdAccount, error)
	DeleteByUserID(userID string) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) GetByID(id string) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.user_id, aa.external_id, aa.name, aa.currency, aa.account_status, aa.created_at, aa.updated_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanAccount(r.conn.QueryRow(query, args...))
}

func (r *accountRepository) GetByExternalID(userID, externalID string) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.user_id, aa.external_id, aa.name, aa.currency, aa.account_status, aa.created_at, aa.updated_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.user_id": userID, "aa.external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanAccount(r.conn.QueryRow(query, args...))
}

func (r *accountRepository) ListByUserID(userID string) ([]*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select("aa.id, aa.user_id, aa.external_id, aa.name, aa.currency, aa.account_status, aa.created_at, aa.updated_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"aa.user_id": userID}).
		OrderBy("aa.name ASC").
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

	accounts := make([]*domain.AdAccount, 0)

	for rows.Next() {
		account := &domain.AdAccount{}

		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.ExternalID,
			&account.Name,
			&account.Currency,
			&account.AccountStatus,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta de anúncios: %w", err)
		}

		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

// SaveOrUpdate insere a conta mantendo o id local estável: um re-sync da
// mesma conta externa atualiza os dados cadastrais sem gerar novo registro.
func (r *accountRepository) SaveOrUpdate(account *domain.AdAccount) (*domain.AdAccount, error) {
	if account.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		account.ID = id
	}

	query := squirrel.StatementBuilder.
		Insert("ad_accounts").
		Columns("id", "user_id", "external_id", "name", "currency", "account_status").
		Values(
			account.ID,
			account.UserID,
			account.ExternalID,
			account.Name,
			account.Currency,
			account.AccountStatus,
		).
		Suffix(`
			ON CONFLICT (user_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				currency = EXCLUDED.currency,
				account_status = EXCLUDED.account_status,
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

	account.ID = id
	return account, nil
}

func (r *accountRepository) DeleteByUserID(userID string) error {
	query, args, err := squirrel.
		Delete("ad_accounts").
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

func (r *accountRepository) scanAccount(row *sql.Row) (*domain.AdAccount, error) {
	account := &domain.AdAccount{}

	if err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.ExternalID,
		&account.Name,
		&account.Currency,
		&account.AccountStatus,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conta de anúncios: %w", err)
	}

	return account, nil
}
