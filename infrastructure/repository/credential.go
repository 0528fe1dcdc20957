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

const credentialsTable = "provider_credentials pc"

// CredentialRepository persiste as credenciais OAuth por (usuário, provedor).
// É a única fonte de verdade sobre "este usuário está conectado".
type CredentialRepository interface {
	GetByUserID(userID string, provider domain.Provider) (*domain.Credential, error)
	SaveOrUpdate(cred *domain.Credential) error
	Delete(userID string, provider domain.Provider) error
	ListByProvider(provider domain.Provider) ([]*domain.Credential, error)
}

type credentialRepository struct {
	conn *postgres.Connection
}

func NewCredentialRepository(conn *postgres.Connection) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

func (r *credentialRepository) GetByUserID(userID string, provider domain.Provider) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select("pc.user_id, pc.provider, pc.access_token, pc.expires_at, pc.has_ad_permissions, pc.created_at, pc.updated_at").
		From(credentialsTable).
		Where(squirrel.Eq{"pc.user_id": userID, "pc.provider": provider}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	cred, err := r.scanCredential(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
	}

	return cred, nil
}

func (r *credentialRepository) SaveOrUpdate(cred *domain.Credential) error {
	query := squirrel.StatementBuilder.
		Insert("provider_credentials").
		Columns("user_id", "provider", "access_token", "expires_at", "has_ad_permissions").
		Values(
			cred.UserID,
			cred.Provider,
			cred.AccessToken,
			cred.ExpiresAt,
			cred.HasAdPermissions,
		).
		Suffix(`
			ON CONFLICT (user_id, provider) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				expires_at = EXCLUDED.expires_at,
				has_ad_permissions = EXCLUDED.has_ad_permissions,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
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

func (r *credentialRepository) Delete(userID string, provider domain.Provider) error {
	query, args, err := squirrel.
		Delete("provider_credentials").
		Where(squirrel.Eq{"user_id": userID, "provider": provider}).
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

func (r *credentialRepository) ListByProvider(provider domain.Provider) ([]*domain.Credential, error) {
	query, args, err := squirrel.
		Select("pc.user_id, pc.provider, pc.access_token, pc.expires_at, pc.has_ad_permissions, pc.created_at, pc.updated_at").
		From(credentialsTable).
		Where(squirrel.Eq{"pc.provider": provider}).
		OrderBy("pc.user_id ASC").
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

	credentials := make([]*domain.Credential, 0)

	for rows.Next() {
		cred := &domain.Credential{}
		var expiresAt time.Time

		if err := rows.Scan(
			&cred.UserID,
			&cred.Provider,
			&cred.AccessToken,
			&expiresAt,
			&cred.HasAdPermissions,
			&cred.CreatedAt,
			&cred.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
		}

		cred.ExpiresAt = expiresAt
		credentials = append(credentials, cred)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return credentials, nil
}

func (r *credentialRepository) scanCredential(row *sql.Row) (*domain.Credential, error) {
	cred := &domain.Credential{}

	if err := row.Scan(
		&cred.UserID,
		&cred.Provider,
		&cred.AccessToken,
		&cred.ExpiresAt,
		&cred.HasAdPermissions,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return cred, nil
}
