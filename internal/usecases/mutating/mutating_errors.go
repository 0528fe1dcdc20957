package mutating

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de mutações
var (
	ErrValidation        = errors.New("validation failed")
	ErrParentNotFound    = errors.New("parent entity not found")
	ErrProviderCreate    = errors.New("error creating entity on provider")
	ErrMediaUpload       = errors.New("error uploading media to provider")
	ErrDatabaseOperation = errors.New("database operation error")
)

// MutationError é um erro com contexto adicional para mutações
type MutationError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *MutationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// APICode expõe o código de erro usado pela camada HTTP
func (e *MutationError) APICode() string {
	return e.Code
}

func NewMutationError(err error, code string, details string) *MutationError {
	return &MutationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
