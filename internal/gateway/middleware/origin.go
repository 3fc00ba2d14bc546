package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pribylovaa/nutricare-client/internal/gateway/apierrors"
	"github.com/pribylovaa/nutricare-client/internal/pkg/log"
)

// SameOrigin отклоняет изменяющие запросы (всё, кроме GET/HEAD/OPTIONS/TRACE),
// если их Origin (или, без него, Referer) не входит в allowed и не совпадает
// с адресом самого gateway. Запросы без обоих заголовков пропускаются:
// так ходят CLI и curl, а браузер для кросс-доменных POST всегда шлёт Origin.
//
// CORS этого не заменяет: "простой" POST (text/plain, form) браузер
// отправляет без preflight.
func SameOrigin(allowed []string) Middleware {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[normalizeOrigin(o)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if safeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			origin := requestOrigin(r)
			if origin == "" || origin == selfOrigin(r) {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := set[origin]; ok {
				next.ServeHTTP(w, r)
				return
			}

			log.From(r.Context()).Warn("cross-origin request rejected",
				slog.String("origin", origin),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			apierrors.WriteError(w, r, fmt.Errorf("%w: %s", apierrors.ErrForbiddenOrigin, origin))
		})
	}
}

func safeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// requestOrigin — scheme://host источника запроса или "".
// Origin "null" (sandbox, file://) возвращается как есть и никуда не проходит.
func requestOrigin(r *http.Request) string {
	if o := r.Header.Get("Origin"); o != "" {
		return normalizeOrigin(o)
	}

	ref := r.Header.Get("Referer")
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "null"
	}

	return normalizeOrigin(u.Scheme + "://" + u.Host)
}

func selfOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return normalizeOrigin(scheme + "://" + r.Host)
}

func normalizeOrigin(o string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
}
