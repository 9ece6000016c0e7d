package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do access token (RBAC global simples: IsAdmin; papéis por projeto
// são resolvidos no banco, não no token).
type Claims struct {
	UserID  uint   `json:"userId"`
	Nome    string `json:"nome"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Tempo de vida do access token
const AccessTTL = 15 * time.Minute

var secret []byte

// SetSecret configura a chave HMAC usada para assinar e validar tokens.
func SetSecret(s string) {
	secret = []byte(s)
}

// GenerateAccessToken gera um JWT HS256 com iss, sub, iat, nbf e exp.
func GenerateAccessToken(userID uint, nome string, isAdmin bool) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("JWT_SECRET não configurado")
	}
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		Nome:    nome,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "api-delivery",
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// ParseAndValidate valida assinatura e expiração.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}
	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expirado")
	}
	return c, nil
}
