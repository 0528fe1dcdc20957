package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
)

func MetaConnect(service connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request domain.MetaConnectRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		logger.WithField("user_id", claims.UserID).Info("connection: exchanging authorization code")

		response, err := service.ConnectMeta(r.Context(), claims.UserID, request.Code)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("connection: meta connect failed")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, response)
	})
}

func ConnectionStatus(service connecting.ConnectionService, provider domain.Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		statuses, err := service.GetStatus(claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		for _, status := range statuses {
			if status.Provider == provider {
				respondJSON(w, http.StatusOK, status)
				return
			}
		}

		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Provedor desconhecido", nil)
	})
}

func Disconnect(service connecting.ConnectionService, provider domain.Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		logger.WithFields(log.Fields{
			"user_id":  claims.UserID,
			"provider": provider,
		}).Info("connection: disconnecting provider")

		outcome, err := service.Disconnect(claims.UserID, provider)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("connection: disconnect failed")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao remover a credencial", outcome)
			return
		}

		respondJSON(w, http.StatusOK, outcome)
	})
}

func TavusConnect(service connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request domain.TavusConnectRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		response, err := service.ConnectTavus(r.Context(), claims.UserID, request.APIKey)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("connection: tavus connect failed")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, response)
	})
}
