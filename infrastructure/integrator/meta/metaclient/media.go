package metaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	metadomain "github.com/vfg2006/marketing-ops-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-ops-api/internal/domain"
)

// UploadMedia envia uma imagem ou vídeo para a conta de anúncios via
// multipart e retorna o identificador emitido pelo provedor (hash da
// imagem ou id do vídeo) para uso posterior no criativo.
func (c *MetaClient) UploadMedia(
	ctx context.Context,
	accountID string,
	media *domain.UploadMediaRequest,
	token string,
) (string, error) {
	edge := "adimages"
	if media.MediaType == domain.MediaTypeVideo {
		edge = "advideos"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("access_token", token); err != nil {
		return "", fmt.Errorf("erro ao montar multipart: %w", err)
	}

	part, err := writer.CreateFormFile("source", media.Filename)
	if err != nil {
		return "", fmt.Errorf("erro ao montar multipart: %w", err)
	}
	if _, err := part.Write(media.Content); err != nil {
		return "", fmt.Errorf("erro ao montar multipart: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("erro ao montar multipart: %w", err)
	}

	requestURL := fmt.Sprintf("%s/%s/%s", c.cfg.Meta.URL, accountID, edge)
	contentType := writer.FormDataContentType()
	payload := buf.Bytes()

	body, err := c.doRequest(ctx, http.MethodPost, requestURL, func() (io.Reader, string) {
		return bytes.NewReader(payload), contentType
	})
	if err != nil {
		return "", err
	}

	if media.MediaType == domain.MediaTypeVideo {
		var response metadomain.VideoUploadResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return "", fmt.Errorf("erro ao decodificar JSON: %w", err)
		}
		if response.ID == "" {
			return "", fmt.Errorf("provedor não retornou id do vídeo")
		}
		return response.ID, nil
	}

	var response metadomain.ImageUploadResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	for _, image := range response.Images {
		if image.Hash != "" {
			return image.Hash, nil
		}
	}

	return "", fmt.Errorf("provedor não retornou hash da imagem")
}
