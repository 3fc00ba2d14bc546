package session

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционный тест RedisStore: поднимает redis:7-alpine через testcontainers-go.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/session -run Redis -v -count=1

func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisStore_RoundTripAndClear(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()

	st, err := NewRedisStore(ctx, url, "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	empty, err := st.Load(ctx)
	require.NoError(t, err)
	require.True(t, empty.Empty())

	in := Credentials{AccessToken: "acc", RefreshToken: "ref"}
	require.NoError(t, st.Save(ctx, in))

	got, err := st.rdb.Get(ctx, "test:"+KeyAccessToken).Result()
	require.NoError(t, err)
	require.Equal(t, "acc", got)

	out, err := st.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, in, out)

	require.NoError(t, st.Clear(ctx))
	n, err := st.rdb.Exists(ctx, "test:"+KeyAccessToken, "test:"+KeyRefreshToken).Result()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisStore(context.Background(), "://bad", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse url")
}
