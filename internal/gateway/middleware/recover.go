package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pribylovaa/nutricare-client/internal/client/interceptors"
	"github.com/pribylovaa/nutricare-client/internal/gateway/apierrors"
	"github.com/pribylovaa/nutricare-client/internal/pkg/log"
)

var errPanic = errors.New("panic")

// Recover перехватывает panic и отвечает 500/internal. Детали паники
// пишутся только в лог. http.ErrAbortHandler пробрасывается дальше.
// Recover стоит снаружи RequestID, поэтому request_id для лога берётся
// из заголовков, которые RequestID уже выставил.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				rid := w.Header().Get(interceptors.HeaderRequestID)
				if rid == "" {
					rid = r.Header.Get(interceptors.HeaderRequestID)
				}

				log.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("request_id", rid),
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
				)
				apierrors.WriteError(w, r, errPanic)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
