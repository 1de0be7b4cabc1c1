package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional notesctl.yaml file. Command-line flags override
// every field.
type Config struct {
	// Server is the base URL of the notes service.
	Server  string        `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	// LogLevel for diagnostics on stderr (default: warn).
	LogLevel string `yaml:"log_level"`
}

type SessionConfig struct {
	// Backend is "file" (default) or "redis".
	Backend string `yaml:"backend"`
	// File is the session file for the file backend.
	File      string `yaml:"file"`
	RedisAddr string `yaml:"redis_addr"`
	// RedisPrefix namespaces the two session keys.
	RedisPrefix string `yaml:"redis_prefix"`
}

func DefaultConfig() *Config {
	return &Config{
		Server:   "http://localhost:8080",
		LogLevel: "warn",
		Session: SessionConfig{
			Backend:     "file",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "notesctl:",
		},
	}
}

func (c *Config) Validate() error {
	if c.Server == "" {
		return errors.New("server is required")
	}
	switch c.Session.Backend {
	case "file":
	case "redis":
		if c.Session.RedisAddr == "" {
			return errors.New("session.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q (want file or redis)", c.Session.Backend)
	}
	return nil
}

// DefaultConfigPath is $XDG_CONFIG_HOME/notes/notesctl.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notes", "notesctl.yaml"), nil
}

// LoadConfig reads path on top of the defaults. A missing file is only an
// error when the user asked for it explicitly.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
