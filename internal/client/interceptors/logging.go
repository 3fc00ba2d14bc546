package interceptors

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/nutricare-client/internal/pkg/log"
	"github.com/pribylovaa/nutricare-client/internal/pkg/redact"
)

// Logging — логирование исходящих запросов.
// Поведение:
//   - берёт X-Request-Id из запроса (или генерирует UUID и добавляет его);
//   - добавляет поля method/path/host, прокладывает обогащённый логгер в контекст;
//   - пишет одну финальную запись: msg="http_out", status, dur (Warn при ошибке транспорта).
//
// Безопасность: не логирует тела и query; Authorization пишется только
// схемой (auth="Bearer [REDACTED_TOKEN]"), пустое значение — анонимный запрос.
// base == nil — используется логгер из контекста запроса.
func Logging(base *slog.Logger) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			r := req
			rid := req.Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
				r = req.Clone(req.Context())
				r.Header.Set(HeaderRequestID, rid)
			}

			l := base
			if l == nil {
				l = log.From(req.Context())
			}
			l = l.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("host", r.URL.Host),
				slog.String("auth", redact.Authorization(r.Header.Get("Authorization"))),
			)
			r = r.WithContext(log.Into(r.Context(), l))

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("http_out",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("http_out",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
