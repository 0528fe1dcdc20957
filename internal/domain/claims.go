package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as claims mínimas emitidas pelo provedor de autenticação
// externo. A API apenas valida a assinatura e extrai o id do usuário.
type Claims struct {
	UserID    string `json:"user_id"`
	UserEmail string `json:"email"`
	jwt.RegisteredClaims
}
