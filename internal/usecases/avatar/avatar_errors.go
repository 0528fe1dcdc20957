package avatar

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de avatares
var (
	ErrVideoNotFound     = errors.New("avatar video not found")
	ErrProviderFailure   = errors.New("avatar provider request failed")
	ErrDatabaseOperation = errors.New("database operation error")
)

// AvatarError é um erro com contexto adicional para avatares
type AvatarError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *AvatarError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AvatarError) Unwrap() error {
	return e.Err
}

// APICode expõe o código de erro usado pela camada HTTP
func (e *AvatarError) APICode() string {
	return e.Code
}

func NewAvatarError(err error, code string, details string) *AvatarError {
	return &AvatarError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
