package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds every setting of the process, read once at startup.
type Config struct {
	HTTPPort             int
	StoreDriver          string
	DatabaseURL          string
	MigrationsPath       string
	LibrariesSeedPath    string
	RequestTimeout       time.Duration
	NotificationsEnabled bool
	NotificationsBaseURL string
	NotificationsTimeout time.Duration
	MessagesLang         string
	LogLevel             slog.Level
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads .env files into the environment when present, then builds the Config from it.
// Variables already set in the environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

/* Builds the Config from lookup, applying defaults and validating every value. */
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	var errs []error
	cfg := Config{
		StoreDriver:          strings.ToLower(get("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:          get("DATABASE_URL", ""),
		MigrationsPath:       get("DATABASE_MIGRATIONS_PATH", "migrations"),
		LibrariesSeedPath:    get("LIBRARIES_SEED_PATH", ""),
		NotificationsBaseURL: get("NOTIFICATIONS_BASE_URL", ""),
		MessagesLang:         strings.ToLower(get("MESSAGES_LANG", "it")),
	}

	port, err := strconv.Atoi(get("HTTP_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be a port number"))
	}
	cfg.HTTPPort = port

	cfg.RequestTimeout, err = time.ParseDuration(get("HTTP_REQUEST_TIMEOUT", "10s"))
	if err != nil || cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_REQUEST_TIMEOUT must be a positive duration"))
	}

	cfg.NotificationsEnabled, err = strconv.ParseBool(get("NOTIFICATIONS_ENABLED", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("NOTIFICATIONS_ENABLED must be a boolean"))
	}

	cfg.NotificationsTimeout, err = time.ParseDuration(get("NOTIFICATIONS_TIMEOUT", "2s"))
	if err != nil || cfg.NotificationsTimeout <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFICATIONS_TIMEOUT must be a positive duration"))
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error"))
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required with the postgres store"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q", DriverPostgres, DriverMemory))
	}

	if cfg.NotificationsEnabled && cfg.NotificationsBaseURL == "" {
		errs = append(errs, fmt.Errorf("NOTIFICATIONS_BASE_URL is required when notifications are enabled"))
	}

	if cfg.MessagesLang != "it" && cfg.MessagesLang != "en" {
		errs = append(errs, fmt.Errorf("MESSAGES_LANG must be it or en"))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return cfg, nil
}
