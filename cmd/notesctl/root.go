package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/notes/pkg/notesdk"
	"github.com/aussiebroadwan/notes/pkg/sessionstore"
	"github.com/aussiebroadwan/notes/pkg/slogx"
)

// cli is the state shared by every subcommand. It is populated in the root
// command's PersistentPreRunE.
type cli struct {
	cfg    *Config
	client *notesdk.Client
	logger *slog.Logger
	close  func() error
}

func rootCmd() *cobra.Command {
	app := &cli{close: func() error { return nil }}

	var configPath string

	cmd := &cobra.Command{
		Use:           "notesctl",
		Short:         "Command-line client for the notes service",
		Long:          "notesctl signs in to a notes service, keeps the session on disk (or in redis)\nand renews the access token transparently while you work with your notes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd, configPath)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.close()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&configPath, "config", "c", "", "Config file path (YAML; default $XDG_CONFIG_HOME/notes/notesctl.yaml)")
	f.String("server", "", "Notes service base URL")
	f.String("session-backend", "", "Where the session lives: file or redis")
	f.String("session-file", "", "Session file for the file backend")
	f.String("redis-addr", "", "Redis address for the redis backend")
	f.String("log-level", "", "Log level for stderr diagnostics (debug, info, warn, error)")

	cmd.AddCommand(
		signInCmd(app),
		signUpCmd(app),
		logoutCmd(app),
		statusCmd(app),
		notesCmd(app),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "notesctl version %s\n", Version)
			},
		},
	)

	return cmd
}

func (app *cli) setup(cmd *cobra.Command, configPath string) error {
	explicit := configPath != ""
	if !explicit {
		if p, err := DefaultConfigPath(); err == nil {
			configPath = p
		}
	}

	cfg, err := LoadConfig(configPath, explicit)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	app.cfg = cfg

	app.logger = slogx.New(slogx.Config{
		Service: "notesctl",
		Level:   cfg.LogLevel,
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})

	store, closeStore, err := openSessionStore(cfg.Session)
	if err != nil {
		return err
	}
	app.close = closeStore

	stderr := cmd.ErrOrStderr()
	app.client = notesdk.New(cfg.Server, store,
		notesdk.WithLogger(app.logger),
		notesdk.WithLoginRequired(func(err error) {
			app.logger.Debug("login required", "err", err)
			fmt.Fprintln(stderr, "Your session has expired. Run `notesctl signin` to sign in again.")
		}),
	)
	return nil
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("server", &cfg.Server)
	override("session-backend", &cfg.Session.Backend)
	override("session-file", &cfg.Session.File)
	override("redis-addr", &cfg.Session.RedisAddr)
	override("log-level", &cfg.LogLevel)
}

func openSessionStore(cfg SessionConfig) (sessionstore.Store, func() error, error) {
	switch cfg.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return sessionstore.NewRedisStore(rdb, cfg.RedisPrefix), rdb.Close, nil
	default:
		path := cfg.File
		if path == "" {
			p, err := sessionstore.DefaultPath()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve session file: %w", err)
			}
			path = p
		}
		return sessionstore.NewFileStore(path), func() error { return nil }, nil
	}
}

// requireSession fails early when nobody is signed in, instead of letting
// the server answer 401.
func (app *cli) requireSession(ctx context.Context) error {
	if !app.client.IsAuthenticated(ctx) {
		return errors.New("not signed in; run `notesctl signin` first")
	}
	return nil
}

func writeLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
