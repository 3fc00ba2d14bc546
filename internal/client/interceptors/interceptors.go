// interceptors предоставляет набор http.RoundTripper-интерсепторов для исходящих
// запросов клиента к REST-бэкенду.
//
// Рекомендуемая цепочка (внешний -> внутренний): metadata -> timeout -> logging.
package interceptors

import "net/http"

type CtxKey string

// CtxRequestID — ключ контекста с id входящего запроса (его кладёт gateway).
const CtxRequestID CtxKey = "request_id"

// HeaderRequestID — заголовок корреляции запросов.
const HeaderRequestID = "X-Request-Id"

// Interceptor — мидлвар для http.RoundTripper.
type Interceptor func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc — адаптер функции к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain оборачивает base интерсепторами в порядке их перечисления:
// первый в списке видит запрос первым. base == nil — http.DefaultTransport.
func Chain(base http.RoundTripper, ics ...Interceptor) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	for i := len(ics) - 1; i >= 0; i-- {
		base = ics[i](base)
	}

	return base
}
