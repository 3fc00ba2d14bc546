package session

import (
	"context"
	"sync"
)

// MemoryStore хранит пару в map под фиксированными ключами.
// Живёт столько же, сколько процесс.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string, 2)}
}

func (m *MemoryStore) Load(context.Context) (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Credentials{
		AccessToken:  m.data[KeyAccessToken],
		RefreshToken: m.data[KeyRefreshToken],
	}, nil
}

func (m *MemoryStore) Save(_ context.Context, c Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[KeyAccessToken] = c.AccessToken
	m.data[KeyRefreshToken] = c.RefreshToken

	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, KeyAccessToken)
	delete(m.data, KeyRefreshToken)

	return nil
}

// Keys возвращает число сохранённых ключей (для тестов и диагностики).
func (m *MemoryStore) Keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.data)
}
