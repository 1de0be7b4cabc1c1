package app

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret           string        // Required outside dev: HS256 shared secret, at least 32 bytes
	Issuer              string        // Optional: issuer claim for tokens (default: notes)
	AccessTTL           time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL          time.Duration // Optional: refresh token lifetime (default: 168h)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./notes.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; variables already set
// in the environment win.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable .env file", "err", err)
	}

	return Config{
		JWTSecret:           os.Getenv("NOTES_JWT_SECRET"),
		Issuer:              getEnvOrDefault("NOTES_ISSUER", "notes"),
		AccessTTL:           getEnvDurationOrDefault("NOTES_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:          getEnvDurationOrDefault("NOTES_REFRESH_TTL", 7*24*time.Hour),
		DatabaseFile:        getEnvOrDefault("NOTES_DATABASE_FILE", "notes.db"),
		PepperFile:          getEnvOrDefault("NOTES_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "15m", "168h", ...
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
