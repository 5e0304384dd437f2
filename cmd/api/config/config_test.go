package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/shelf-service/cmd/api/config"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := config.FromEnv(lookupFrom(map[string]string{"DATABASE_URL": "postgres://localhost/shelf"}))
	is.NoErr(err)
	is.Equal(cfg, config.Config{
		HTTPPort:             8080,
		StoreDriver:          config.DriverPostgres,
		DatabaseURL:          "postgres://localhost/shelf",
		MigrationsPath:       "migrations",
		RequestTimeout:       10 * time.Second,
		NotificationsTimeout: 2 * time.Second,
		MessagesLang:         "it",
		LogLevel:             slog.LevelInfo,
	})
}

func TestFromEnvOverrides(t *testing.T) {
	is := is.New(t)

	cfg, err := config.FromEnv(lookupFrom(map[string]string{
		"HTTP_PORT":              "9090",
		"STORE_DRIVER":           "Memory",
		"LIBRARIES_SEED_PATH":    "data/libraries.json",
		"HTTP_REQUEST_TIMEOUT":   "3s",
		"NOTIFICATIONS_ENABLED":  "true",
		"NOTIFICATIONS_BASE_URL": "https://ntfy.sh/shelf",
		"MESSAGES_LANG":          "en",
		"LOG_LEVEL":              "debug",
	}))
	is.NoErr(err)
	is.Equal(cfg.HTTPPort, 9090)
	is.Equal(cfg.StoreDriver, config.DriverMemory)
	is.Equal(cfg.LibrariesSeedPath, "data/libraries.json")
	is.Equal(cfg.RequestTimeout, 3*time.Second)
	is.True(cfg.NotificationsEnabled)
	is.Equal(cfg.MessagesLang, "en")
	is.Equal(cfg.LogLevel, slog.LevelDebug)
}

func TestFromEnvInvalid(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"postgres without url":        {},
		"unknown driver":              {"STORE_DRIVER": "mongo"},
		"bad port":                    {"STORE_DRIVER": "memory", "HTTP_PORT": "eighty"},
		"bad timeout":                 {"STORE_DRIVER": "memory", "HTTP_REQUEST_TIMEOUT": "-1s"},
		"notifications without url":   {"STORE_DRIVER": "memory", "NOTIFICATIONS_ENABLED": "true"},
		"unsupported language":        {"STORE_DRIVER": "memory", "MESSAGES_LANG": "fr"},
		"unknown log level":           {"STORE_DRIVER": "memory", "LOG_LEVEL": "verbose"},
		"notifications flag not bool": {"STORE_DRIVER": "memory", "NOTIFICATIONS_ENABLED": "sure"},
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, err := config.FromEnv(lookupFrom(env))
			is.True(errors.Is(err, config.ErrInvalidConfig))
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), ".env")
	is.NoErr(os.WriteFile(path, []byte("STORE_DRIVER=memory\nHTTP_PORT=8181\n"), 0o600))
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("HTTP_PORT", "")
	os.Unsetenv("STORE_DRIVER")
	os.Unsetenv("HTTP_PORT")

	cfg, err := config.Load(path)
	is.NoErr(err)
	is.Equal(cfg.StoreDriver, config.DriverMemory)
	is.Equal(cfg.HTTPPort, 8181)
}
