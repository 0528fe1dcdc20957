package domain

import "time"

// Creative referencia a mídia já enviada ao provedor (hash de imagem ou id
// de vídeo) mais os campos de texto do anúncio.
type Creative struct {
	ImageHash   string `json:"image_hash,omitempty"`
	VideoID     string `json:"video_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Body        string `json:"body,omitempty"`
	LinkURL     string `json:"link_url,omitempty"`
	CallToAction string `json:"call_to_action,omitempty"`
}

type Ad struct {
	ID         string       `json:"id"`
	AdSetID    string       `json:"ad_set_id"`
	ExternalID string       `json:"external_id"`
	Name       string       `json:"name"`
	Status     EntityStatus `json:"status"`
	Creative   *Creative    `json:"creative,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type CreateAdRequest struct {
	AdSetID  string    `json:"ad_set_id" validate:"required"`
	Name     string    `json:"name" validate:"required"`
	Status   string    `json:"status"`
	Creative *Creative `json:"creative" validate:"required"`
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type UploadMediaRequest struct {
	AdAccountID string
	MediaType   MediaType
	Filename    string
	ContentType string
	Content     []byte
}

type UploadMediaResponse struct {
	MediaID   string    `json:"media_id"`
	MediaType MediaType `json:"media_type"`
}
