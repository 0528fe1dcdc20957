package tavusdomain

// Replica é a forma retornada pela API do provedor de avatares.
type Replica struct {
	ReplicaID   string `json:"replica_id"`
	ReplicaName string `json:"replica_name"`
	Status      string `json:"status"`
	ModelName   string `json:"model_name,omitempty"`
}

type Persona struct {
	PersonaID    string `json:"persona_id"`
	PersonaName  string `json:"persona_name"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

type Video struct {
	VideoID   string `json:"video_id"`
	VideoName string `json:"video_name"`
	Status    string `json:"status"`
	HostedURL string `json:"hosted_url,omitempty"`
}

type ListReplicasResponse struct {
	Data []Replica `json:"data"`
}

type ListPersonasResponse struct {
	Data []Persona `json:"data"`
}

type CreatePersonaRequest struct {
	PersonaName  string `json:"persona_name"`
	SystemPrompt string `json:"system_prompt"`
}

type RenderVideoRequest struct {
	ReplicaID string `json:"replica_id"`
	Script    string `json:"script"`
	VideoName string `json:"video_name,omitempty"`
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
