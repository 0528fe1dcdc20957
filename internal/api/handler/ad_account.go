package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/account"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
)

// ListProviderAdAccounts lista as contas de anúncio visíveis no provedor
// para o usuário escolher qual acompanhar.
func ListProviderAdAccounts(service account.AccountService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		credential, err := connections.ResolveCredential(claims.UserID, domain.ProviderMeta)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		accounts, err := service.ListProviderAccounts(r.Context(), credential.AccessToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("accounts: failed to list provider ad accounts")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, accounts)
	})
}

func ConnectAdAccount(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request domain.ConnectAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if request.ExternalID == "" || request.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "external_id e name são obrigatórios", nil)
			return
		}

		connected, err := service.ConnectAccount(claims.UserID, &request)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id":     claims.UserID,
				"external_id": request.ExternalID,
				"error":       err.Error(),
			}).Error("accounts: failed to connect ad account")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, connected)
	})
}

func ListConnectedAdAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		accounts, err := service.ListConnectedAccounts(claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, accounts)
	})
}
