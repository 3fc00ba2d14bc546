// client — HTTP-клиент REST-бэкенда NutriCare с bearer-авторизацией.
//
// Поток одного запроса (Do):
//  1. к неанонимному запросу добавляется Authorization: Bearer <access>;
//  2. сбой транспорта -> *NetworkError, 2xx -> *Response;
//  3. 401 на ещё не повторённый запрос -> запрос помечается, выполняется
//     refresh, запрос повторяется ровно один раз с новым токеном;
//  4. прочие не-2xx (и повторный 401) -> *HTTPError без изменений.
//
// Неуспешный refresh очищает сессию, вызывает OnSessionExpired и
// возвращает *SessionExpiredError. Конкурентные refresh схлопываются в один.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pribylovaa/nutricare-client/internal/client/interceptors"
	"github.com/pribylovaa/nutricare-client/internal/pkg/log"
	"github.com/pribylovaa/nutricare-client/internal/session"
)

const (
	DefaultBaseURL     = "http://localhost:8000/api"
	DefaultRefreshPath = "/users/token/refresh/"
	DefaultUserAgent   = "nutricare-client"

	// maxBodySize ограничивает читаемое тело ответа.
	maxBodySize = 32 << 20
	refreshKey  = "refresh"
)

// Options — параметры клиента. Обязательна только Session.
type Options struct {
	BaseURL     string
	RefreshPath string
	UserAgent   string
	Session     *session.Session
	Logger      *slog.Logger
	// Timeout — таймаут одной попытки; 0 — без таймаута.
	Timeout time.Duration
	// Transport — конечный транспорт (по умолчанию http.DefaultTransport).
	Transport http.RoundTripper
	// Interceptors — дополнительные интерсепторы; ставятся снаружи
	// стандартной цепочки и видят запрос первыми.
	Interceptors []interceptors.Interceptor
	Metrics      *Metrics
	// OnSessionExpired вызывается после каждого неуспешного refresh-потока,
	// когда пара уже очищена (аналог редиректа на страницу входа).
	// Logout, случившийся во время refresh, хук не вызывает.
	OnSessionExpired func(ctx context.Context, err error)
}

// Client — аутентифицированный клиент. Безопасен для конкурентного использования.
type Client struct {
	base        string
	refreshPath string
	http        *http.Client
	session     *session.Session
	log         *slog.Logger
	metrics     *Metrics
	onExpired   func(ctx context.Context, err error)

	flight singleflight.Group
}

// New собирает клиента: цепочка транспорта
// opts.Interceptors -> metadata -> timeout -> logging.
func New(opts Options) (*Client, error) {
	const op = "client/New"

	if opts.Session == nil {
		return nil, fmt.Errorf("%s: nil session", op)
	}

	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported base url scheme %q", op, u.Scheme)
	}

	refreshPath := opts.RefreshPath
	if refreshPath == "" {
		refreshPath = DefaultRefreshPath
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	chain := append(append([]interceptors.Interceptor{}, opts.Interceptors...),
		interceptors.WithMetadata(userAgent),
		interceptors.WithTimeout(opts.Timeout),
		interceptors.Logging(logger),
	)

	return &Client{
		base:        strings.TrimRight(base, "/"),
		refreshPath: refreshPath,
		http:        &http.Client{Transport: interceptors.Chain(opts.Transport, chain...)},
		session:     opts.Session,
		log:         logger,
		metrics:     opts.Metrics,
		onExpired:   opts.OnSessionExpired,
	}, nil
}

// Session возвращает сессию клиента.
func (c *Client) Session() *session.Session { return c.session }

// BaseURL возвращает базовый URL без завершающего слеша.
func (c *Client) BaseURL() string { return c.base }

// Request — JSON-обёртка над Do: body сериализуется в JSON (nil — без тела),
// headers добавляются к запросу.
func (c *Client) Request(ctx context.Context, method, path string, body any, headers http.Header) (*Response, error) {
	req, err := NewRequest(method, path, body)
	if err != nil {
		return nil, err
	}

	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	return c.Do(ctx, req)
}

// Do выполняет запрос с авторизацией и единственной попыткой refresh.
// Переданный req не меняется.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	const op = "client/Do"

	if req == nil {
		return nil, fmt.Errorf("%s: nil request", op)
	}
	pending := *req

	token := ""
	if !pending.Anonymous {
		token = c.session.AccessToken()
	}

	resp, err := c.send(ctx, &pending, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !pending.Anonymous && !pending.retried {
		pending.retried = true

		fresh, err := c.sharedRefresh(ctx, token)
		if err != nil {
			return nil, err
		}

		resp, err = c.send(ctx, &pending, fresh)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Status: resp.StatusCode,
			Body:   resp.Body,
			Method: pending.Method,
			Path:   pending.Path,
		}
	}

	return resp, nil
}

// Refresh принудительно обновляет access-токен.
// Ошибка всегда *SessionExpiredError (пара, с которой шёл refresh, очищена)
// или ошибка ctx.
func (c *Client) Refresh(ctx context.Context) error {
	_, err := c.sharedRefresh(ctx, c.session.AccessToken())
	return err
}

// sharedRefresh объединяет конкурентные refresh в один полёт.
// Полёт выполняется на контексте без отмены: уход одного вызывающего
// не должен ронять refresh для остальных.
func (c *Client) sharedRefresh(ctx context.Context, stale string) (string, error) {
	const op = "client/refresh"

	ch := c.flight.DoChan(refreshKey, func() (any, error) {
		return c.doRefresh(context.WithoutCancel(ctx), stale)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// doRefresh — собственно обмен refresh-токена на новый access.
// Пара перечитывается из Store: если access уже сменился после того, как
// вызывающий получил 401 (здесь или в другом процессе), сеть не трогается
// и повтор пойдёт с текущим токеном.
func (c *Client) doRefresh(ctx context.Context, stale string) (string, error) {
	creds, err := c.session.Reload(ctx)
	if err != nil {
		c.log.Warn("session reload failed", slog.String("err", err.Error()))
	}
	if creds.AccessToken != "" && creds.AccessToken != stale {
		return creds.AccessToken, nil
	}
	used := creds.RefreshToken
	if used == "" {
		return c.fail(ctx, used, ErrNoRefreshToken)
	}

	body, err := json.Marshal(refreshRequest{Refresh: used})
	if err != nil {
		return c.fail(ctx, used, err)
	}

	req := &Request{
		Method:    http.MethodPost,
		Path:      c.refreshPath,
		Header:    http.Header{"Content-Type": []string{"application/json"}},
		Body:      body,
		Anonymous: true,
	}

	resp, err := c.send(ctx, req, "")
	if err != nil {
		return c.fail(ctx, used, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(ctx, used, &HTTPError{
			Status: resp.StatusCode,
			Body:   resp.Body,
			Method: req.Method,
			Path:   req.Path,
		})
	}

	var out refreshResponse
	if err := resp.Decode(&out); err != nil {
		return c.fail(ctx, used, err)
	}
	if err := c.session.Rotate(ctx, used, out.Access, out.Refresh); err != nil {
		if errors.Is(err, session.ErrSessionChanged) {
			return c.superseded(ctx, err)
		}
		return c.fail(ctx, used, err)
	}

	c.metrics.refreshed("ok")
	log.From(ctx).Debug("token refreshed", slog.Bool("rotated", out.Refresh != ""))

	return out.Access, nil
}

// fail — ветка неуспешного refresh: очистка пары, отправленной с used,
// и сигнал "сессия истекла". Если пару за это время заменили, чистить
// нечего: повтор пойдёт с новой парой.
func (c *Client) fail(ctx context.Context, used string, cause error) (string, error) {
	if err := c.session.ClearIf(ctx, used); err != nil {
		if errors.Is(err, session.ErrSessionChanged) {
			return c.superseded(ctx, err)
		}
		c.log.Warn("session clear failed", slog.String("err", err.Error()))
	}

	c.metrics.refreshed("failed")
	c.log.Info("session expired", slog.String("cause", cause.Error()))

	err := &SessionExpiredError{Cause: cause}
	if c.onExpired != nil {
		c.onExpired(ctx, err)
	}

	return "", err
}

// superseded — пара сменилась, пока шёл refresh. Новый вход даёт токен для
// повтора; после logout вызывающий получает SessionExpiredError без хука:
// выход был явным.
func (c *Client) superseded(ctx context.Context, cause error) (string, error) {
	c.metrics.refreshed("superseded")

	if access := c.session.AccessToken(); access != "" {
		log.From(ctx).Debug("refresh superseded by new session")
		return access, nil
	}

	return "", &SessionExpiredError{Cause: cause}
}

// send выполняет одну попытку без логики refresh.
func (c *Client) send(ctx context.Context, req *Request, token string) (*Response, error) {
	const op = "client/send"

	target, err := c.url(req.Path, req.Query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	if hr.Header.Get("Accept") == "" {
		hr.Header.Set("Accept", "application/json")
	}
	if token != "" {
		hr.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	hresp, err := c.http.Do(hr)
	if err != nil {
		c.metrics.observe(req.Method, "error", time.Since(start))
		return nil, &NetworkError{Op: req.Method + " " + req.Path, Err: err}
	}
	defer hresp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(hresp.Body, maxBodySize))
	if err != nil {
		c.metrics.observe(req.Method, "error", time.Since(start))
		return nil, &NetworkError{Op: req.Method + " " + req.Path, Err: err}
	}
	c.metrics.observe(req.Method, strconv.Itoa(hresp.StatusCode), time.Since(start))

	return &Response{
		StatusCode: hresp.StatusCode,
		Header:     hresp.Header,
		Body:       b,
	}, nil
}

// url склеивает базовый URL и относительный путь.
func (c *Client) url(path string, query url.Values) (string, error) {
	if strings.Contains(path, "://") {
		return "", ErrAbsolutePath
	}

	target := c.base + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return target, nil
}

// IsNetwork сообщает, что err — сбой транспорта.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
