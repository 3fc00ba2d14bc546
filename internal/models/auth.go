// Модели запросов/ответов REST-бэкенда NutriCare (DRF).
package models

// RegisterRequest — POST /users/register/.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegisterResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

// LoginRequest — POST /users/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair — ответ simplejwt на login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// SessionStatus — состояние локальной сессии (CLI `session status`, GET /api/session).
type SessionStatus struct {
	Authenticated bool       `json:"authenticated"`
	Access        *TokenView `json:"access,omitempty"`
	Refresh       *TokenView `json:"refresh,omitempty"`
}

// TokenView — безопасное представление токена: превью и незаверенные claims.
type TokenView struct {
	Preview   string `json:"preview"`
	UserID    string `json:"user_id,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Expired   bool   `json:"expired"`
}
