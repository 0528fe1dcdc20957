package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/avatar"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
)

type replicasResponse struct {
	Replicas []*domain.Replica `json:"replicas"`
	Stock    bool              `json:"stock"`
	Warning  string            `json:"warning,omitempty"`
}

type createPersonaRequest struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
}

// resolveTavusKey centraliza a resolução da chave do provedor de avatares.
func resolveTavusKey(connections connecting.ConnectionService, userID string) (string, error) {
	credential, err := connections.ResolveCredential(userID, domain.ProviderTavus)
	if err != nil {
		return "", err
	}
	return credential.AccessToken, nil
}

func ListReplicas(service avatar.AvatarService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		apiKey, err := resolveTavusKey(connections, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		replicas, stock, err := service.ListReplicas(r.Context(), claims.UserID, apiKey)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("avatar: failed to list replicas")
			writeServiceError(w, err)
			return
		}

		response := replicasResponse{Replicas: replicas, Stock: stock}
		if stock {
			response.Warning = "Provedor de avatares indisponível; exibindo catálogo de reserva"
		}

		respondJSON(w, http.StatusOK, response)
	})
}

func DeleteReplica(service avatar.AvatarService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		apiKey, err := resolveTavusKey(connections, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		replicaID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.DeleteReplica(r.Context(), replicaID, apiKey); err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	})
}

func ListPersonas(service avatar.AvatarService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		apiKey, err := resolveTavusKey(connections, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		personas, err := service.ListPersonas(r.Context(), claims.UserID, apiKey)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, personas)
	})
}

func CreatePersona(service avatar.AvatarService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request createPersonaRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}
		if request.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "name é obrigatório", nil)
			return
		}

		apiKey, err := resolveTavusKey(connections, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		persona, err := service.CreatePersona(r.Context(), claims.UserID, request.Name, request.SystemPrompt, apiKey)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("avatar: failed to create persona")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, persona)
	})
}

func DeletePersona(service avatar.AvatarService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		apiKey, err := resolveTavusKey(connections, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		personaID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.DeletePersona(r.Context(), personaID, apiKey); err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	})
}

func RenderVideo(service avatar.AvatarService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request domain.RenderVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}
		if request.ReplicaID == "" || request.Script == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "replica_id e script são obrigatórios", nil)
			return
		}

		apiKey, err := resolveTavusKey(connections, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		video, err := service.RenderVideo(r.Context(), claims.UserID, &request, apiKey)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("avatar: failed to render video")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, video)
	})
}

func GetVideo(service avatar.AvatarService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		apiKey, err := resolveTavusKey(connections, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		videoID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		video, err := service.GetVideo(r.Context(), claims.UserID, videoID, apiKey)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, video)
	})
}

func ListVideos(service avatar.AvatarService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		videos, err := service.ListVideos(claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, videos)
	})
}

func DeleteVideo(service avatar.AvatarService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		apiKey, err := resolveTavusKey(connections, claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		videoID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.DeleteVideo(r.Context(), claims.UserID, videoID, apiKey); err != nil {
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusNoContent, nil)
	})
}
