package metadomain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifica os erros da API do provedor em uma taxonomia fixa.
type ErrorKind int

const (
	KindProviderError ErrorKind = iota
	KindAuthExpired
	KindPermissionDenied
	KindRateLimited
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth_expired"
	case KindPermissionDenied:
		return "permission_denied"
	case KindRateLimited:
		return "rate_limited"
	case KindNotFound:
		return "not_found"
	default:
		return "provider_error"
	}
}

// APIError é o erro normalizado de uma chamada à API Graph.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Code       int
	Subcode    int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meta api: %s (status=%d code=%d): %s", e.Kind, e.StatusCode, e.Code, e.Message)
}

// Retryable indica se a chamada pode ser repetida com backoff.
// AuthExpired e PermissionDenied nunca são repetidos.
func (e *APIError) Retryable() bool {
	return e.Kind == KindRateLimited
}

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado.
// O código 190 representa token inválido/expirado; os subcódigos 460, 463
// e 467 cobrem sessões invalidadas.
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsPermissionDenied verifica se o erro indica falta de escopo ou permissão.
// Os códigos 10 e 200-299 são reservados pelo Graph para erros de permissão.
func (e *ErrorResponse) IsPermissionDenied() bool {
	code := e.Error.Code
	return code == 10 || (code >= 200 && code <= 299) ||
		strings.Contains(strings.ToLower(e.Error.Message), "permission")
}

// IsRateLimited verifica se o erro indica limite de requisições atingido.
// Códigos 4, 17 e 32 são os limites de aplicação, usuário e página.
func (e *ErrorResponse) IsRateLimited() bool {
	code := e.Error.Code
	return code == 4 || code == 17 || code == 32 || code == 613 ||
		strings.Contains(strings.ToLower(e.Error.Message), "rate limit")
}

// IsNotFound verifica se o erro indica objeto inexistente.
func (e *ErrorResponse) IsNotFound() bool {
	return e.Error.Code == 803 ||
		strings.Contains(strings.ToLower(e.Error.Message), "does not exist")
}

// Normalize converte o status HTTP e o corpo de erro decodificado em um
// *APIError da taxonomia.
func Normalize(statusCode int, resp *ErrorResponse) *APIError {
	apiErr := &APIError{
		Kind:       KindProviderError,
		StatusCode: statusCode,
	}

	if resp != nil {
		apiErr.Code = resp.Error.Code
		apiErr.Subcode = resp.Error.ErrorSubcode
		apiErr.Message = resp.Error.Message
	}

	switch {
	case statusCode == http.StatusUnauthorized || (resp != nil && resp.IsTokenExpired()):
		apiErr.Kind = KindAuthExpired
	case statusCode == http.StatusForbidden || (resp != nil && resp.IsPermissionDenied()):
		apiErr.Kind = KindPermissionDenied
	case statusCode == http.StatusTooManyRequests || (resp != nil && resp.IsRateLimited()):
		apiErr.Kind = KindRateLimited
	case statusCode == http.StatusNotFound || (resp != nil && resp.IsNotFound()):
		apiErr.Kind = KindNotFound
	}

	return apiErr
}

// IsKind verifica se err carrega um *APIError do tipo informado.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
