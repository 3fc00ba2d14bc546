package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFile_IsEmpty(t *testing.T) {
	t.Parallel()

	fs := NewFileStore(filepath.Join(t.TempDir(), "nope", "session.json"), "")
	c, err := fs.Load(context.Background())
	require.NoError(t, err)
	require.True(t, c.Empty())

	require.NoError(t, fs.Clear(context.Background()), "Clear несуществующего файла — не ошибка")
}

func TestFileStore_PlainRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cfg", "session.json")
	fs := NewFileStore(path, "")

	in := Credentials{AccessToken: "acc", RefreshToken: "ref"}
	require.NoError(t, fs.Save(ctx, in))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"access_token":"acc"`)
	require.Contains(t, string(raw), `"refresh_token":"ref"`)

	out, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, in, out)

	require.NoError(t, fs.Clear(ctx))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileStore_EncryptedRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	in := Credentials{AccessToken: "secret-access", RefreshToken: "secret-refresh"}
	require.NoError(t, NewFileStore(path, "passphrase").Save(ctx, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret-access")
	require.Contains(t, string(raw), `"ciphertext"`)

	out, err := NewFileStore(path, "passphrase").Load(ctx)
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = NewFileStore(path, "other").Load(ctx)
	require.Error(t, err)

	_, err = NewFileStore(path, "").Load(ctx)
	require.ErrorIs(t, err, ErrSecretRequired)
}

func TestFileStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := NewFileStore(filepath.Join(t.TempDir(), "s.json"), "")
	require.ErrorIs(t, fs.Save(ctx, Credentials{AccessToken: "a", RefreshToken: "r"}), context.Canceled)
	_, err := fs.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
