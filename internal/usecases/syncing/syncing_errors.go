package syncing

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de sincronização
var (
	ErrAccountNotFound   = errors.New("ad account not found for user")
	ErrJobNotFound       = errors.New("sync job not found")
	ErrHierarchyFetch    = errors.New("error fetching entity hierarchy")
	ErrDatabaseOperation = errors.New("database operation error")
)

// SyncError é um erro com contexto adicional para sincronizações
type SyncError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	JobID   string // ID do job envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *SyncError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// APICode expõe o código de erro usado pela camada HTTP
func (e *SyncError) APICode() string {
	return e.Code
}

func NewSyncError(err error, code string, details string) *SyncError {
	return &SyncError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
