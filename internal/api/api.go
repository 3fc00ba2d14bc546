// api — типизированные обёртки над эндпоинтами бэкенда NutriCare.
//
// Все вызовы идут через client.Client, поэтому авторизация, refresh и
// таксономия ошибок (NetworkError/HTTPError/SessionExpiredError) общие.
// Перед отправкой входные данные проверяются так же, как это делают формы SPA:
// ошибка валидации — *ValidationError, запрос при этом не уходит.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/nutricare-client/internal/client"
	"github.com/pribylovaa/nutricare-client/internal/session"
)

// Doer — то, что умеет выполнить запрос к бэкенду (client.Client).
type Doer interface {
	Do(ctx context.Context, req *client.Request) (*client.Response, error)
}

// API агрегирует сервисы бэкенда.
type API struct {
	Auth        *Auth
	Nutrition   *Nutrition
	Medical     *Medical
	Marketplace *Marketplace
}

// New собирает все сервисы поверх одного клиента и его сессии.
func New(c *client.Client) *API {
	return NewWith(c, c.Session())
}

// NewWith — сборка с произвольным Doer (тесты, обёртки).
func NewWith(d Doer, sess *session.Session) *API {
	return &API{
		Auth:        &Auth{doer: d, session: sess},
		Nutrition:   &Nutrition{doer: d},
		Medical:     &Medical{doer: d},
		Marketplace: &Marketplace{doer: d},
	}
}

// call — JSON-запрос с разбором ответа в out (out == nil — тело игнорируется).
func call(ctx context.Context, d Doer, method, path string, in, out any) error {
	req, err := client.NewRequest(method, path, in)
	if err != nil {
		return err
	}

	return send(ctx, d, req, out)
}

func send(ctx context.Context, d Doer, req *client.Request, out any) error {
	resp, err := d.Do(ctx, req)
	if err != nil {
		return err
	}

	return resp.Decode(out)
}

// list — GET списка. DRF отдаёт либо массив, либо страницу {"results": [...]}.
func list[T any](ctx context.Context, d Doer, path string) ([]T, error) {
	const op = "api/list"

	req, err := client.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	items, err := decodeList[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	return items, nil
}

func decodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []T{}, nil
	}

	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []T{}, nil
	}

	return page.Results, nil
}
