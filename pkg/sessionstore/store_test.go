package sessionstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/notes/pkg/sessionstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func drivers(t *testing.T) map[string]sessionstore.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]sessionstore.Store{
		"memory": sessionstore.NewMemoryStore(),
		"file":   sessionstore.NewFileStore(filepath.Join(t.TempDir(), "notes", "session.json")),
		"redis":  sessionstore.NewRedisStore(rdb, "notes:test:"),
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			sess, err := s.Get(ctx)
			require.NoError(t, err)
			require.True(t, sess.Empty())
			require.False(t, sessionstore.IsAuthenticated(ctx, s))

			require.NoError(t, s.Set(ctx, "a1", "r1"))
			sess, err = s.Get(ctx)
			require.NoError(t, err)
			require.Equal(t, sessionstore.Session{AccessToken: "a1", RefreshToken: "r1"}, sess)
			require.True(t, sessionstore.IsAuthenticated(ctx, s))

			// Empty refresh keeps the stored refresh token.
			require.NoError(t, s.Set(ctx, "a2", ""))
			sess, err = s.Get(ctx)
			require.NoError(t, err)
			require.Equal(t, sessionstore.Session{AccessToken: "a2", RefreshToken: "r1"}, sess)

			require.NoError(t, s.Clear(ctx))
			require.NoError(t, s.Clear(ctx), "clearing an empty store is not an error")

			sess, err = s.Get(ctx)
			require.NoError(t, err)
			require.True(t, sess.Empty())
			require.False(t, sessionstore.IsAuthenticated(ctx, s))
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, sessionstore.NewFileStore(path).Set(ctx, "access", "refresh"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	sess, err := sessionstore.NewFileStore(path).Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "access", sess.AccessToken)
	require.Equal(t, "refresh", sess.RefreshToken)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"auth_token"`)
	require.Contains(t, string(raw), `"refresh_token"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := sessionstore.NewFileStore(path).Get(context.Background())
	require.Error(t, err)

	// Clear still recovers from a corrupt file.
	require.NoError(t, sessionstore.NewFileStore(path).Clear(context.Background()))
}

func TestRedisStore_UsesFixedKeys(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := sessionstore.NewRedisStore(rdb, "p:")
	require.NoError(t, s.Set(ctx, "a", "r"))

	got, err := mr.Get("p:auth_token")
	require.NoError(t, err)
	require.Equal(t, "a", got)
	got, err = mr.Get("p:refresh_token")
	require.NoError(t, err)
	require.Equal(t, "r", got)
}
