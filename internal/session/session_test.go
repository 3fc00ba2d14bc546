package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/nutricare-client/internal/session"
	"github.com/pribylovaa/nutricare-client/internal/session/mocks"
)

var pair = session.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"}

func TestSession_EstablishRestore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()

	s := session.New(store)
	require.False(t, s.Authenticated())
	require.NoError(t, s.Establish(ctx, pair))
	require.True(t, s.Authenticated())

	// Новый процесс поверх того же хранилища.
	s2 := session.New(store)
	require.NoError(t, s2.Restore(ctx))
	require.Equal(t, pair, s2.Credentials())
}

func TestSession_Establish_RejectsIncompletePair(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl) // никаких вызовов Store не ожидается

	s := session.New(store)
	err := s.Establish(context.Background(), session.Credentials{AccessToken: "a"})
	require.ErrorIs(t, err, session.ErrIncompleteCredentials)
	require.True(t, s.Credentials().Empty())
}

func TestSession_Rotate_KeepsRefreshWhenNotRotated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := session.New(session.NewMemoryStore())
	require.NoError(t, s.Establish(ctx, pair))

	require.NoError(t, s.Rotate(ctx, "refresh-1", "access-2", ""))
	require.Equal(t, session.Credentials{AccessToken: "access-2", RefreshToken: "refresh-1"}, s.Credentials())

	require.NoError(t, s.Rotate(ctx, "refresh-1", "access-3", "refresh-2"))
	require.Equal(t, session.Credentials{AccessToken: "access-3", RefreshToken: "refresh-2"}, s.Credentials())

	require.ErrorIs(t, s.Rotate(ctx, "refresh-2", "", "x"), session.ErrEmptyAccessToken)
	require.Equal(t, "access-3", s.AccessToken())
}

func TestSession_Rotate_StoreErrorKeepsPreviousPair(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().Save(gomock.Any(), pair).Return(nil),
		store.EXPECT().Load(gomock.Any()).Return(pair, nil),
		store.EXPECT().
			Save(gomock.Any(), session.Credentials{AccessToken: "access-2", RefreshToken: "refresh-1"}).
			Return(errors.New("disk full")),
	)

	s := session.New(store)
	require.NoError(t, s.Establish(ctx, pair))

	err := s.Rotate(ctx, "refresh-1", "access-2", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
	require.Equal(t, pair, s.Credentials())
}

func TestSession_Clear_DropsMemoryEvenOnStoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	ctx := context.Background()

	store.EXPECT().Save(gomock.Any(), pair).Return(nil)
	store.EXPECT().Clear(gomock.Any()).Return(errors.New("unavailable"))

	s := session.New(store)
	require.NoError(t, s.Establish(ctx, pair))

	require.Error(t, s.Clear(ctx))
	require.True(t, s.Credentials().Empty())
	require.False(t, s.Authenticated())
}

func TestSession_Restore_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(session.Credentials{}, errors.New("boom"))

	err := session.New(store).Restore(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "session/Restore")
}

// Login с последующим logout не оставляет значений в хранилище.
func TestSession_LoginLogout_LeavesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mem := session.NewMemoryStore()
	file := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), "")

	for name, store := range map[string]session.Store{"memory": mem, "file": file} {
		t.Run(name, func(t *testing.T) {
			s := session.New(store)
			require.NoError(t, s.Establish(ctx, pair))
			require.NoError(t, s.Clear(ctx))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			require.True(t, got.Empty())
		})
	}

	require.Zero(t, mem.Keys())
}

// Logout во время refresh: результат refresh не возвращает пару.
func TestSession_Rotate_AfterClear_DoesNotResurrect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	s := session.New(store)
	require.NoError(t, s.Establish(ctx, pair))
	require.NoError(t, s.Clear(ctx))

	err := s.Rotate(ctx, pair.RefreshToken, "access-2", "")
	require.ErrorIs(t, err, session.ErrSessionChanged)
	require.False(t, s.Authenticated())
	require.Zero(t, store.Keys())
}

// Новый вход во время refresh: ни успех, ни провал старого refresh его не трогают.
func TestSession_StaleRefresh_KeepsNewLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	s := session.New(store)
	require.NoError(t, s.Establish(ctx, pair))

	relogin := session.Credentials{AccessToken: "access-9", RefreshToken: "refresh-9"}
	require.NoError(t, s.Establish(ctx, relogin))

	require.ErrorIs(t, s.Rotate(ctx, pair.RefreshToken, "access-2", ""), session.ErrSessionChanged)
	require.ErrorIs(t, s.ClearIf(ctx, pair.RefreshToken), session.ErrSessionChanged)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, relogin, got)
	require.Equal(t, relogin, s.Credentials())

	require.NoError(t, s.ClearIf(ctx, relogin.RefreshToken))
	require.Zero(t, store.Keys())
}

// Две сессии (два процесса) над одним хранилищем.
func TestSession_SharedStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	shared := session.NewMemoryStore()

	a := session.New(shared)
	b := session.New(shared)
	require.NoError(t, a.Establish(ctx, pair))
	require.NoError(t, b.Restore(ctx))
	require.True(t, b.Authenticated())

	t.Run("rotation in A is visible to B", func(t *testing.T) {
		require.NoError(t, a.Rotate(ctx, pair.RefreshToken, "access-2", "refresh-2"))

		// B ещё держит старую пару: её refresh не должен перетереть ротацию A.
		require.ErrorIs(t, b.Rotate(ctx, pair.RefreshToken, "access-x", ""), session.ErrSessionChanged)
		require.Equal(t, session.Credentials{AccessToken: "access-2", RefreshToken: "refresh-2"}, b.Credentials())
	})

	t.Run("logout in A is visible to B", func(t *testing.T) {
		require.NoError(t, a.Clear(ctx))

		got, err := b.Reload(ctx)
		require.NoError(t, err)
		require.True(t, got.Empty())
		require.False(t, b.Authenticated())
	})
}
