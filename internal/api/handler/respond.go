package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
	"github.com/vfg2006/marketing-ops-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// apiCoder é implementado pelos erros de caso de uso que já carregam o
// código padronizado da API.
type apiCoder interface {
	APICode() string
}

// respondJSON escreve o payload como JSON com o status informado.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithField("error", err.Error()).Error("handler: failed to encode response")
	}
}

// writeServiceError traduz um erro de caso de uso no payload padronizado.
// Erros sem código conhecido viram 500 genérico, sem vazar detalhe interno.
func writeServiceError(w http.ResponseWriter, err error) {
	var coder apiCoder
	if errors.As(err, &coder) {
		apiErrors.WriteError(w, coder.APICode(), err.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
}

// userFromContext extrai as claims colocadas pelo middleware de autenticação.
func userFromContext(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	return claims, ok
}
