package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/syncing"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
)

type triggerSyncRequest struct {
	AdAccountID string `json:"ad_account_id"`
}

type triggerSyncResponse struct {
	JobID string `json:"job_id"`
}

// TriggerSync dispara a sincronização da hierarquia e métricas de uma
// conta. Responde 202 com o id do job; o progresso é consultado por polling.
func TriggerSync(service syncing.SyncService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request triggerSyncRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}
		if request.AdAccountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ad_account_id é obrigatório", nil)
			return
		}

		credential, err := connections.ResolveCredential(claims.UserID, domain.ProviderMeta)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		jobID, err := service.SyncAllMetrics(claims.UserID, request.AdAccountID, credential.AccessToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id":    claims.UserID,
				"account_id": request.AdAccountID,
				"error":      err.Error(),
			}).Error("sync: failed to start sync job")
			writeServiceError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"user_id": claims.UserID,
			"job_id":  jobID,
		}).Info("sync: job started")

		respondJSON(w, http.StatusAccepted, triggerSyncResponse{JobID: jobID})
	})
}

func GetSyncJob(service syncing.SyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		jobID := httprouter.ParamsFromContext(r.Context()).ByName("job_id")

		job, err := service.GetSyncJob(claims.UserID, jobID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, job)
	})
}
