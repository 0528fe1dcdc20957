package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-ops-api/internal/scheduler"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
)

// cronSecretHeader identifica o chamador externo do gatilho de sincronização.
const cronSecretHeader = "X-Cron-Secret"

func TriggerCronSync(service *scheduler.MetricsSyncService, secret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if secret == "" || r.Header.Get(cronSecretHeader) != secret {
			logger.Warn("cron: sync trigger rejected, invalid shared secret")
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Segredo do cron inválido", nil)
			return
		}

		if err := service.TriggerManualSync(); err != nil {
			logger.WithFields(log.Fields{
				"error": err.Error(),
			}).Warn("cron: sync trigger refused")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.Info("cron: manual metrics sync triggered")
		respondJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
	})
}

func CronStatus(service *scheduler.MetricsSyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userFromContext(r); !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		respondJSON(w, http.StatusOK, service.GetStatus())
	})
}
