package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout навешивает общий дедлайн на обработку запроса, включая все
// обращения к бэкенду и возможный refresh. d <= 0 — no-op.
// Существующий дедлайн не переопределяется.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
