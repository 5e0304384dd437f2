package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/shelf-service/cmd/api/book"
	"github.com/shelf-service/cmd/api/config"
	"github.com/shelf-service/cmd/api/database"
	bookhttp "github.com/shelf-service/cmd/api/http"
	"github.com/shelf-service/cmd/api/inmemory"
	"github.com/shelf-service/cmd/api/notifications"
	"github.com/shelf-service/cmd/api/seed"
)

const shutdownTimeout = 10 * time.Second

func newRootCommand() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           "shelf-api",
		Short:         "Catalog of books and the libraries they are shelved in",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load before reading the environment (default .env)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := setup(envFiles)
				if err != nil {
					return err
				}
				return run(cmd.Context(), cfg, logger)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := setup(envFiles)
				if err != nil {
					return err
				}
				if cfg.StoreDriver != config.DriverPostgres {
					return fmt.Errorf("migrate needs STORE_DRIVER=%s", config.DriverPostgres)
				}
				_, closeStore, err := openStore(cfg, logger)
				if err != nil {
					return err
				}
				closeStore()
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed [file]",
			Short: "Load libraries from a JSON export into the store",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := setup(envFiles)
				if err != nil {
					return err
				}
				path := cfg.LibrariesSeedPath
				if len(args) == 1 {
					path = args[0]
				}
				if path == "" {
					return errors.New("no seed file: pass one or set LIBRARIES_SEED_PATH")
				}

				store, closeStore, err := openStore(cfg, logger)
				if err != nil {
					return err
				}
				defer closeStore()

				n, err := seed.LoadLibraries(cmd.Context(), store, path, seed.Replace)
				if err != nil {
					return err
				}
				if cfg.StoreDriver == config.DriverMemory {
					logger.Warn("memory store selected, seed only validated", "libraries", n, "path", path)
					return nil
				}
				logger.Info("libraries seeded", "libraries", n, "path", path)
				return nil
			},
		},
	)
	return root
}

func setup(envFiles []string) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

/* Opens the configured store. Postgres is migrated up before use. */
func openStore(cfg config.Config, logger *slog.Logger) (book.Repository, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		store, err := inmemory.NewInMemoryStore()
		if err != nil {
			return nil, nil, fmt.Errorf("creating in-memory store: %w", err)
		}
		return store, func() {}, nil
	}

	dbObject, err := database.ConnectDb(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting with db: %w", err)
	}

	store := database.NewStore(dbObject, database.WithLogger(logger))
	err = database.MigrationUp(store, cfg.MigrationsPath)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		dbObject.Close()
		return nil, nil, fmt.Errorf("migrating: %w", err)
	}
	return store, func() { dbObject.Close() }, nil
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.LibrariesSeedPath != "" {
		// Titles shelved through the API since the last start are kept.
		n, err := seed.LoadLibraries(ctx, store, cfg.LibrariesSeedPath, seed.KeepTitles)
		if err != nil {
			return err
		}
		logger.Info("libraries seeded", "libraries", n, "path", cfg.LibrariesSeedPath)
	}

	// A nil *Ntfy stored in the interface would not compare equal to nil.
	var notifier book.Notifier
	if cfg.NotificationsEnabled {
		notifier = notifications.NewNtfy(cfg.NotificationsBaseURL, &http.Client{})
	}

	bookService := book.NewService(store, notifier, cfg.NotificationsTimeout, logger)
	bookHandler := bookhttp.NewBookHandler(bookService, logger, bookhttp.MessagesFor(cfg.MessagesLang))

	server := bookhttp.NewServer(bookhttp.ServerConfig{
		Port:           cfg.HTTPPort,
		RequestTimeout: cfg.RequestTimeout,
	}, bookHandler)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", cfg.HTTPPort, "store", cfg.StoreDriver)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("unexpected http server error: %w", err)
		}
		close(serverErr)
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sc:
	case err := <-serverErr:
		return err
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownRelease()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	logger.Info("graceful shutdown complete")
	return nil
}
