package metadomain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// TokenResponse representa a resposta do endpoint de troca de token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   ExpiresIn `json:"expires_in"`
}

// ExpiresIn tolera as formas que o provedor já retornou para o campo:
// número, número entre aspas, null ou lixo não numérico. Valor inválido
// vira zero e o gerenciador de conexão aplica o TTL mínimo; a troca de
// token nunca falha por causa deste campo.
type ExpiresIn int64

func (e *ExpiresIn) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = 0
		return nil
	}

	parsed, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		*e = 0
		return nil
	}

	*e = ExpiresIn(parsed)
	return nil
}

type AdAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	AccountStatus int    `json:"account_status"`
}

// Entity é a projeção mínima usada na caminhada da hierarquia; os campos
// de orçamento só vêm preenchidos no nível de campanha e conjunto.
type Entity struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	Objective      string `json:"objective,omitempty"`
	DailyBudget    string `json:"daily_budget,omitempty"`
	LifetimeBudget string `json:"lifetime_budget,omitempty"`
}

// CreateResponse é a resposta de uma mutação bem-sucedida.
type CreateResponse struct {
	ID  string          `json:"id"`
	Raw json.RawMessage `json:"-"`
}

type ImageUploadResponse struct {
	Images map[string]struct {
		Hash string `json:"hash"`
		URL  string `json:"url"`
	} `json:"images"`
}

type VideoUploadResponse struct {
	ID string `json:"id"`
}
