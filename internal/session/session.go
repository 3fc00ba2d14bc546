// session держит пару access/refresh клиента и её жизненный цикл.
//
// Session — явный объект, который создаётся при старте приложения и живёт
// внутри экземпляра client.Client. Изменяют пару только три операции:
//   - Establish — успешный login/register;
//   - Rotate — успешный refresh;
//   - Clear (и условный ClearIf) — logout или неуспешный refresh.
//
// Rotate и ClearIf применяются, только если в Store всё ещё лежит тот
// refresh-токен, с которым уходил refresh; иначе ErrSessionChanged и Store
// не трогается. Store — источник истины: несколько Session (процессов)
// над одним RedisStore видят изменения друг друга после Reload.
//
// Остальные методы только читают. Экземпляр безопасен для конкурентного
// использования, если переданный Store потокобезопасен.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Ключи хранения пары (совпадают с ключами SPA).
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

var (
	// ErrIncompleteCredentials — при установке сессии не хватает одного из токенов.
	ErrIncompleteCredentials = errors.New("incomplete credentials")
	// ErrEmptyAccessToken — refresh вернул пустой access-токен.
	ErrEmptyAccessToken = errors.New("empty access token")
	// ErrSessionChanged — пара сменилась (logout, новый вход, refresh в другом
	// процессе), пока шёл refresh; результат refresh не применяется.
	ErrSessionChanged = errors.New("session changed during refresh")
)

// Credentials — пара токенов клиента.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty сообщает, что ни одного токена нет.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// Store — постоянное хранилище пары.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/pribylovaa/nutricare-client/internal/session Store
type Store interface {
	// Load возвращает сохранённую пару; отсутствие данных — пустая пара без ошибки.
	Load(ctx context.Context) (Credentials, error)
	// Save перезаписывает оба ключа.
	Save(ctx context.Context, c Credentials) error
	// Clear удаляет оба ключа.
	Clear(ctx context.Context) error
}

// Session — in-memory копия пары поверх Store.
type Session struct {
	mu    sync.RWMutex
	store Store
	creds Credentials
}

// New создаёт пустую сессию. Чтобы подхватить сохранённую пару, вызовите Restore.
func New(store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}

	return &Session{store: store}
}

// Restore читает пару из Store (старт приложения).
func (s *Session) Restore(ctx context.Context) error {
	const op = "session/Restore"

	if _, err := s.Reload(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Reload перечитывает пару из Store и возвращает её. Нужен, когда Store
// разделён с другими процессами: их login/logout/refresh видны только так.
func (s *Session) Reload(ctx context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return s.creds, err
	}
	s.creds = c

	return c, nil
}

// Establish сохраняет пару после login/register.
func (s *Session) Establish(ctx context.Context, c Credentials) error {
	const op = "session/Establish"

	if c.AccessToken == "" || c.RefreshToken == "" {
		return fmt.Errorf("%s: %w", op, ErrIncompleteCredentials)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.creds = c

	return nil
}

// Rotate заменяет access-токен после успешного refresh, отправленного с
// refresh-токеном used. refresh заменяется только если бэкенд выдал новый
// (ротация включена). Если в Store уже другая пара — ErrSessionChanged,
// in-memory копия синхронизируется со Store.
func (s *Session) Rotate(ctx context.Context, used, access, refresh string) error {
	const op = "session/Rotate"

	if access == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyAccessToken)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCurrent(ctx, used); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	next := Credentials{AccessToken: access, RefreshToken: used}
	if refresh != "" {
		next.RefreshToken = refresh
	}

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.creds = next

	return nil
}

// Clear удаляет пару (logout).
// In-memory копия очищается даже если Store вернул ошибку.
func (s *Session) Clear(ctx context.Context) error {
	const op = "session/Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ClearIf удаляет пару после неуспешного refresh, отправленного с used.
// Если пару уже заменили (новый вход) или удалили — ErrSessionChanged.
func (s *Session) ClearIf(ctx context.Context, used string) error {
	const op = "session/ClearIf"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCurrent(ctx, used); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Session) clear(ctx context.Context) error {
	s.creds = Credentials{}
	return s.store.Clear(ctx)
}

// checkCurrent сверяет refresh-токен в Store с used. Вызывается под s.mu.
func (s *Session) checkCurrent(ctx context.Context, used string) error {
	cur, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	if cur.RefreshToken != used {
		s.creds = cur
		return ErrSessionChanged
	}

	return nil
}

// Credentials возвращает копию текущей пары.
func (s *Session) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.creds
}

func (s *Session) AccessToken() string  { return s.Credentials().AccessToken }
func (s *Session) RefreshToken() string { return s.Credentials().RefreshToken }

// Authenticated — есть ли access-токен в последней известной паре
// (см. Reload для Store, общего с другими процессами).
func (s *Session) Authenticated() bool { return s.AccessToken() != "" }
