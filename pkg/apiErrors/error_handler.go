package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro retornados pela API
const (
	// Autenticação e credenciais (AUTH)
	ErrAuthRequired      = "AUTH_001" // Sessão ausente ou token inválido
	ErrCredentialMissing = "AUTH_002" // Usuário não conectou o provedor
	ErrCredentialExpired = "AUTH_003" // Token do provedor expirado, reconexão necessária
	ErrPermissionDenied  = "AUTH_004" // Provedor negou acesso por falta de escopo

	// Validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição malformada
	ErrMissingRequiredData = "VAL_002" // Campos obrigatórios ausentes
	ErrValidationFailed    = "VAL_003" // Regra de negócio violada (CBO, metas, lances)

	// Recursos (RES)
	ErrNotFound = "RES_001" // Entidade inexistente ou não pertencente ao usuário

	// Provedores e servidor (SRV)
	ErrRateLimited       = "SRV_001" // Limite de requisições do provedor atingido
	ErrProviderFailure   = "SRV_002" // Falha opaca do provedor externo
	ErrDatabaseOperation = "SRV_003" // Erro de operação de banco de dados
	ErrInternalServer    = "SRV_004" // Erro interno do servidor
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrAuthRequired:        http.StatusUnauthorized,
	ErrCredentialMissing:   http.StatusUnauthorized,
	ErrCredentialExpired:   http.StatusUnauthorized,
	ErrPermissionDenied:    http.StatusForbidden,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrValidationFailed:    http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrRateLimited:         http.StatusTooManyRequests,
	ErrProviderFailure:     http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrInternalServer:      http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
