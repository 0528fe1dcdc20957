package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/syncing"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"

	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

const defaultWindowDays = 30

// parseWindowDays lê o parâmetro days com o padrão de 30 dias.
func parseWindowDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultWindowDays, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("parâmetro days inválido: %q", raw)
	}

	return days, nil
}

// GetEntityMetrics devolve as linhas diárias armazenadas de uma entidade.
func GetEntityMetrics(service syncing.SyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())

		level, err := domain.ParseEntityLevel(params.ByName("level"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Nível de entidade inválido", nil)
			return
		}

		days, err := parseWindowDays(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro days inválido", nil)
			return
		}

		rows, err := service.GetEntityMetrics(claims.UserID, level, params.ByName("id"), days)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id":   claims.UserID,
				"level":     level.String(),
				"entity_id": params.ByName("id"),
				"error":     err.Error(),
			}).Error("metrics: failed to read metric rows")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, rows)
	})
}

// GetMetricsSummary devolve o agregado da janela com as taxas derivadas.
func GetMetricsSummary(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())

		level, err := domain.ParseEntityLevel(params.ByName("level"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Nível de entidade inválido", nil)
			return
		}

		days, err := parseWindowDays(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro days inválido", nil)
			return
		}

		summary, err := service.Summarize(claims.UserID, level, params.ByName("id"), days)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id":   claims.UserID,
				"level":     level.String(),
				"entity_id": params.ByName("id"),
				"error":     err.Error(),
			}).Error("metrics: failed to summarize")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, summary)
	})
}

// GetAIContext devolve o documento de contexto consumido pelo chat.
func GetAIContext(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		context, err := service.BuildAIContext(claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, context)
	})
}
