package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/notes/internal/notes/store"
	"github.com/aussiebroadwan/notes/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notes/internal/notes/telemetry"
	"github.com/aussiebroadwan/notes/pkg/cryptox"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAuthService(t *testing.T, st store.Store, clk *clock) *AuthService {
	t.Helper()

	codec, err := jwtx.NewCodec(testSecret, jwtx.HS256Options{
		Issuer: "notes-test",
		Now:    clk.Now,
	})
	require.NoError(t, err)

	return &AuthService{
		Store:   st,
		Codec:   codec,
		Hasher:  cryptox.NewHasher("pepper"),
		Metrics: telemetry.New(),
		Now:     clk.Now,
	}
}
