package connecting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de conexão de provedores
var (
	ErrCodeRequired      = errors.New("authorization code is required")
	ErrCredentialMissing = errors.New("no credential stored for user")
	ErrCredentialExpired = errors.New("stored credential is expired")
	ErrTokenExchange     = errors.New("error exchanging authorization code")
	ErrProviderCheck     = errors.New("error verifying provider connection")
	ErrDatabaseOperation = errors.New("database operation error")
)

// ConnectionError é um erro com contexto adicional para conexões
type ConnectionError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *ConnectionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APICode expõe o código de erro usado pela camada HTTP
func (e *ConnectionError) APICode() string {
	return e.Code
}

func NewConnectionError(err error, code string, details string) *ConnectionError {
	return &ConnectionError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
