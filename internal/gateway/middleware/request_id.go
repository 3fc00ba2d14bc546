package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pribylovaa/nutricare-client/internal/client/interceptors"
)

// maxRequestIDLen — чужие id длиннее этого заменяются своими.
const maxRequestIDLen = 128

// RequestID обеспечивает наличие X-Request-Id:
//  1. берёт заголовок запроса, если он есть и разумной длины;
//  2. иначе генерирует UUID;
//  3. кладёт id в заголовки запроса и ответа и в контекст по ключу
//     interceptors.CtxRequestID: оттуда его заберёт исходящий запрос к бэкенду.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(interceptors.HeaderRequestID)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
				r.Header.Set(interceptors.HeaderRequestID, id)
			}
			w.Header().Set(interceptors.HeaderRequestID, id)

			ctx := context.WithValue(r.Context(), interceptors.CtxRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
