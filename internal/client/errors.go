package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrSessionExpired — refresh не удался, пара очищена, нужен повторный вход.
	ErrSessionExpired = errors.New("session expired")
	// ErrNoRefreshToken — в сессии нет refresh-токена, обновлять нечем.
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrAbsolutePath — в запрос передан абсолютный URL вместо пути.
	ErrAbsolutePath = errors.New("path must be relative to base url")
)

// NetworkError — сбой транспорта: запрос не дошёл или ответ не прочитан.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError — ответ бэкенда со статусом вне 2xx. Body отдаётся без изменений.
type HTTPError struct {
	Status int
	Body   []byte
	Method string
	Path   string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("http error: %s %s: status %d", e.Method, e.Path, e.Status)
	if d := e.Detail(); d != "" {
		msg += ": " + d
	}

	return msg
}

// Detail извлекает человекочитаемое сообщение из тела ответа DRF:
// поля detail/error/message/non_field_errors или ошибки валидации полей
// ("email: already exists; password: too short"). Для не-JSON тела — "".
func (e *HTTPError) Detail() string {
	var body map[string]any
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}

	for _, k := range []string{"detail", "error", "message", "non_field_errors"} {
		if s := flatten(body[k]); s != "" {
			return s
		}
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s := flatten(body[k]); s != "" {
			parts = append(parts, k+": "+s)
		}
	}

	return strings.Join(parts, "; ")
}

func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if s := flatten(x); s != "" {
				out = append(out, s)
			}
		}
		return strings.Join(out, ", ")
	default:
		return ""
	}
}

// SessionExpiredError — refresh-поток завершился неудачей.
// errors.Is(err, ErrSessionExpired) == true; Cause — исходная причина.
type SessionExpiredError struct {
	Cause error
}

func (e *SessionExpiredError) Error() string {
	if e.Cause == nil {
		return ErrSessionExpired.Error()
	}

	return fmt.Sprintf("%s: %v", ErrSessionExpired, e.Cause)
}

func (e *SessionExpiredError) Is(target error) bool { return target == ErrSessionExpired }

func (e *SessionExpiredError) Unwrap() error { return e.Cause }

// IsStatus сообщает, что err — HTTPError с указанным статусом.
func IsStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == status
}
