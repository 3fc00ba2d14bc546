// handlers — HTTP-хендлеры gateway поверх internal/api.
// Пути повторяют пути бэкенда, поэтому SPA переключается на gateway
// сменой базового URL; токены при этом остаются у gateway.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/pribylovaa/nutricare-client/internal/api"
	"github.com/pribylovaa/nutricare-client/internal/gateway/apierrors"
)

// maxJSONBody — предел JSON-тела входящего запроса.
const maxJSONBody = 1 << 20

// Handlers агрегирует зависимости.
type Handlers struct {
	API *api.API
	// Now — источник времени для статуса сессии (подменяется в тестах).
	Now func() time.Time
}

func New(a *api.API) *Handlers {
	return &Handlers{API: a, Now: time.Now}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// respond — ответ на вызов api: ошибка через apierrors, иначе value.
func respond(w http.ResponseWriter, r *http.Request, status int, value any, err error) {
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, status, value)
}

// decodeStrict — строгий JSON-декодер: Content-Type только application/json,
// неизвестные поля запрещены. Пустое тело — пустой объект (значения по
// умолчанию остаются в value).
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	ct := r.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
		return fmt.Errorf("%w: %q", apierrors.ErrUnsupportedMediaType, ct)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", apierrors.ErrBadRequest, err)
	}

	return nil
}
