package postgres

import (
	"database/sql"
)

// Queryer é o subconjunto de operações usado pelos repositórios, satisfeito
// tanto por *sql.DB quanto por *sql.Tx.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
