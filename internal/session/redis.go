package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранит пару в двух строковых ключах Redis:
// <prefix>access_token и <prefix>refresh_token.
// Нужен, когда несколько процессов gateway разделяют одну сессию.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisStore создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "nutricare:session:".
func NewRedisStore(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	const op = "session/NewRedisStore"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return NewRedisStoreFromClient(rdb, prefix), nil
}

// NewRedisStoreFromClient оборачивает готовый клиент.
func NewRedisStoreFromClient(rdb redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "nutricare:session:"
	}

	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (r *RedisStore) key(name string) string { return r.prefix + name }

func (r *RedisStore) Load(ctx context.Context) (Credentials, error) {
	const op = "session/RedisStore.Load"

	vals, err := r.rdb.MGet(ctx, r.key(KeyAccessToken), r.key(KeyRefreshToken)).Result()
	if err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", op, err)
	}

	var c Credentials
	if s, ok := vals[0].(string); ok {
		c.AccessToken = s
	}
	if s, ok := vals[1].(string); ok {
		c.RefreshToken = s
	}

	return c, nil
}

// Save пишет оба ключа в одной транзакции MULTI/EXEC.
func (r *RedisStore) Save(ctx context.Context, c Credentials) error {
	const op = "session/RedisStore.Save"

	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.key(KeyAccessToken), c.AccessToken, 0)
		p.Set(ctx, r.key(KeyRefreshToken), c.RefreshToken, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	const op = "session/RedisStore.Clear"

	if err := r.rdb.Del(ctx, r.key(KeyAccessToken), r.key(KeyRefreshToken)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает клиент Redis.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
