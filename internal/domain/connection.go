package domain

import "time"

type MetaConnectRequest struct {
	Code string `json:"code" validate:"required"`
}

type TavusConnectRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// ConnectResponse resume o resultado de uma conexão recém-estabelecida.
// Warning carrega avisos não fatais, como a falha na checagem de permissões.
type ConnectResponse struct {
	Provider         Provider  `json:"provider"`
	Connected        bool      `json:"connected"`
	HasAdPermissions bool      `json:"has_ad_permissions"`
	ExpiresAt        time.Time `json:"expires_at"`
	Warning          string    `json:"warning,omitempty"`
}

// ConnectionStatus é o estado atual da conexão de um provedor.
type ConnectionStatus struct {
	Provider         Provider   `json:"provider"`
	Connected        bool       `json:"connected"`
	Expired          bool       `json:"expired"`
	HasAdPermissions bool       `json:"has_ad_permissions"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

// DisconnectStep registra o resultado de uma etapa da cascata de limpeza.
type DisconnectStep struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DisconnectOutcome resume a desconexão. Disconnected reflete apenas a
// remoção da credencial; falhas de limpeza ficam registradas nas etapas.
type DisconnectOutcome struct {
	Disconnected bool             `json:"disconnected"`
	Steps        []DisconnectStep `json:"steps"`
}
