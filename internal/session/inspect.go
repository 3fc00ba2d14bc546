package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo — сведения из payload JWT без проверки подписи.
// Используется только для отображения статуса сессии; решения о refresh
// принимаются исключительно по ответу 401 от бэкенда.
type TokenInfo struct {
	UserID    string    `json:"user_id,omitempty"    yaml:"user_id,omitempty"`
	TokenType string    `json:"token_type,omitempty" yaml:"token_type,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired   bool      `json:"expired"              yaml:"expired"`
}

// claims — поля simplejwt-токенов бэкенда.
type claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
}

// Inspect разбирает токен без проверки подписи.
func Inspect(token string, now time.Time) (TokenInfo, error) {
	const op = "session/Inspect"

	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return TokenInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	info := TokenInfo{UserID: c.UserID, TokenType: c.TokenType}
	if info.UserID == "" {
		info.UserID = c.Subject
	}

	if c.ExpiresAt != nil {
		info.ExpiresAt = c.ExpiresAt.UTC()
		info.Expired = !now.Before(info.ExpiresAt)
	}

	return info, nil
}
