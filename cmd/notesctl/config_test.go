package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("implicit missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(dir, "absent.yaml"), false)
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "absent.yaml"), true)
		require.Error(t, err)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(dir, "notesctl.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: https://notes.example\nsession:\n  file: /tmp/s.json\n"), 0o600))

		cfg, err := LoadConfig(path, true)
		require.NoError(t, err)
		require.Equal(t, "https://notes.example", cfg.Server)
		require.Equal(t, "/tmp/s.json", cfg.Session.File)
		require.Equal(t, "file", cfg.Session.Backend)
		require.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

		_, err := LoadConfig(path, true)
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Session.Backend = "etcd"
	require.ErrorContains(t, cfg.Validate(), "unknown session backend")

	cfg = DefaultConfig()
	cfg.Server = ""
	require.Error(t, cfg.Validate())
}
