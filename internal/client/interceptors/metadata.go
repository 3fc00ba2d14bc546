package interceptors

import "net/http"

// WithMetadata — добавляет в исходящий запрос заголовки:
//   - X-Request-Id (если есть в контексте и ещё не задан),
//   - User-Agent (если передан параметром).
//
// Исходный *http.Request не меняется: заголовки ставятся на клон.
func WithMetadata(userAgent string) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			rid, _ := req.Context().Value(CtxRequestID).(string)
			if rid == "" && userAgent == "" {
				return next.RoundTrip(req)
			}

			r := req.Clone(req.Context())
			if rid != "" && r.Header.Get(HeaderRequestID) == "" {
				r.Header.Set(HeaderRequestID, rid)
			}
			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}
