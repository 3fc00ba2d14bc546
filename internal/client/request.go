package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request — описание исходящего запроса. Тело хранится байтами,
// чтобы запрос можно было повторить после refresh.
type Request struct {
	Method string
	// Path — путь относительно базового URL ("/users/me/").
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	// Anonymous — запрос без bearer-токена (login/register/refresh);
	// 401 на такой запрос не запускает refresh.
	Anonymous bool

	retried bool
}

// NewRequest собирает запрос с JSON-телом. body == nil — запрос без тела.
func NewRequest(method, path string, body any) (*Request, error) {
	const op = "client/NewRequest"

	req := &Request{Method: method, Path: path, Header: http.Header{}}
	if body == nil {
		return req, nil
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal body: %w", op, err)
	}
	req.Body = b
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// Response — прочитанный ответ бэкенда.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode разбирает JSON-тело в v. Пустое тело (204, DELETE) — не ошибка.
func (r *Response) Decode(v any) error {
	const op = "client/Response.Decode"

	if r == nil || v == nil || len(r.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
