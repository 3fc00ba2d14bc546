// apierrors стандартизирует ответы об ошибках локального gateway.
// На вход принимает ошибку клиента бэкенда (таксономия internal/client)
// или локальную ошибку валидации, на выход даёт:
//   - HTTP-статус;
//   - короткий стабильный code для SPA;
//   - безопасное message и, для 4xx бэкенда, его тело в details.
//
// Сигнал "сессия истекла, нужен вход" — 401 с code=session_expired.
package apierrors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/nutricare-client/internal/api"
	"github.com/pribylovaa/nutricare-client/internal/client"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

var (
	// ErrBadRequest — тело запроса к gateway не разобрано.
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound — у gateway нет такого маршрута.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedMediaType — тело не application/json.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrForbiddenOrigin — изменяющий запрос пришёл с чужого origin.
	ErrForbiddenOrigin = errors.New("forbidden origin")
)

// APIError — единый формат для фронта.
// Details — исходное тело ответа бэкенда (только для 4xx, только JSON).
type APIError struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и ответ для фронта.
//
// Порядок проверок:
//   - nil — программная ошибка вызова: 500/internal;
//   - валидация и нечитаемое тело — 400/invalid_argument;
//   - тело не JSON — 415/unsupported_media_type;
//   - чужой origin — 403/forbidden_origin;
//   - истёкшая сессия — 401/session_expired;
//   - отмена/дедлайн (в т.ч. внутри NetworkError) — 499/504;
//   - HTTPError — статус бэкенда сохраняется, 5xx превращается в 502;
//   - NetworkError — 502/bad_gateway;
//   - прочее — 500/internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return internal()
	}

	var ve *api.ValidationError
	switch {
	case errors.As(err, &ve):
		return reply(http.StatusBadRequest, "invalid_argument", ve.Error(), nil)
	case errors.Is(err, ErrBadRequest):
		return reply(http.StatusBadRequest, "invalid_argument", "invalid argument", nil)
	case errors.Is(err, ErrUnsupportedMediaType):
		return reply(http.StatusUnsupportedMediaType, "unsupported_media_type", "content type must be application/json", nil)
	case errors.Is(err, ErrForbiddenOrigin):
		return reply(http.StatusForbidden, "forbidden_origin", "origin not allowed", nil)
	case errors.Is(err, ErrNotFound):
		return reply(http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, client.ErrSessionExpired):
		return reply(http.StatusUnauthorized, "session_expired", "session expired, log in again", nil)
	case errors.Is(err, context.Canceled):
		return reply(StatusClientClosedRequest, "canceled", "canceled", nil)
	case errors.Is(err, context.DeadlineExceeded):
		return reply(http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded", nil)
	}

	var he *client.HTTPError
	if errors.As(err, &he) {
		return fromBackend(he)
	}

	var ne *client.NetworkError
	if errors.As(err, &ne) {
		return reply(http.StatusBadGateway, "bad_gateway", "backend unavailable", nil)
	}

	return internal()
}

// fromBackend — ответ бэкенда со статусом вне 2xx.
func fromBackend(he *client.HTTPError) (int, ErrorResponse) {
	if he.Status >= http.StatusInternalServerError {
		return reply(http.StatusBadGateway, "upstream_error", "backend error", nil)
	}

	code, msg := baseFromStatus(he.Status)
	if d := he.Detail(); d != "" {
		msg = d
	}

	var details json.RawMessage
	if json.Valid(he.Body) {
		details = he.Body
	}

	return reply(he.Status, code, msg, details)
}

// baseFromStatus — код/сообщение по статусу 4xx бэкенда.
func baseFromStatus(status int) (string, string) {
	switch status {
	case http.StatusBadRequest:
		return "invalid_argument", "invalid argument"
	case http.StatusUnauthorized:
		return "unauthenticated", "unauthenticated"
	case http.StatusForbidden:
		return "permission_denied", "permission denied"
	case http.StatusNotFound:
		return "not_found", "not found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed", "method not allowed"
	case http.StatusConflict:
		return "conflict", "conflict"
	case http.StatusRequestEntityTooLarge:
		return "too_large", "request entity too large"
	case http.StatusTooManyRequests:
		return "resource_exhausted", "resource exhausted"
	default:
		return "client_error", http.StatusText(status)
	}
}

func reply(status int, code, msg string, details json.RawMessage) (int, ErrorResponse) {
	return status, ErrorResponse{Error: APIError{Code: code, Message: msg, Details: details}}
}

func internal() (int, ErrorResponse) {
	return reply(http.StatusInternalServerError, "internal", "internal error", nil)
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
