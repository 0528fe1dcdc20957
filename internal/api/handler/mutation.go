package handler

import (
	"io"
	"net/http"

	"github.com/vfg2006/marketing-ops-api/internal/domain"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-ops-api/internal/usecases/mutating"
	"github.com/vfg2006/marketing-ops-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-ops-api/pkg/log"
)

// Limite de memória para o parse do multipart; o excedente vai para disco.
const uploadMemoryLimit = 32 << 20

func CreateCampaign(service mutating.MutationService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request domain.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		credential, err := connections.ResolveCredential(claims.UserID, domain.ProviderMeta)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		campaign, err := service.CreateCampaign(r.Context(), claims.UserID, &request, credential.AccessToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("mutation: failed to create campaign")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, campaign)
	})
}

func CreateAdSet(service mutating.MutationService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request domain.CreateAdSetRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		credential, err := connections.ResolveCredential(claims.UserID, domain.ProviderMeta)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		adSet, err := service.CreateAdSet(r.Context(), claims.UserID, &request, credential.AccessToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("mutation: failed to create ad set")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, adSet)
	})
}

func CreateAd(service mutating.MutationService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		var request domain.CreateAdRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		credential, err := connections.ResolveCredential(claims.UserID, domain.ProviderMeta)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		ad, err := service.CreateAd(r.Context(), claims.UserID, &request, credential.AccessToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Error("mutation: failed to create ad")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, ad)
	})
}

// UploadMedia recebe o arquivo via multipart e o repassa ao provedor após
// a validação local de tipo e tamanho.
func UploadMedia(service mutating.MutationService, connections connecting.ConnectionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := userFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrAuthRequired, "Sessão ausente", nil)
			return
		}

		if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo de arquivo 'file' ausente", nil)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Falha ao ler o arquivo enviado", nil)
			return
		}

		request := &domain.UploadMediaRequest{
			AdAccountID: r.FormValue("ad_account_id"),
			MediaType:   domain.MediaType(r.FormValue("media_type")),
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
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

		response, err := service.UploadMedia(r.Context(), claims.UserID, request, credential.AccessToken)
		if err != nil {
			logger.WithFields(log.Fields{
				"user_id":  claims.UserID,
				"filename": header.Filename,
				"error":    err.Error(),
			}).Error("mutation: failed to upload media")
			writeServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, response)
	})
}
