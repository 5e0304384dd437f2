package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/lib/pq"
)

const driverName = "postgres"

// DBTX is what the store queries through: the pool itself or a transaction.
type DBTX interface {
	sqlx.ExtContext
}

type Store struct {
	db     *sqlx.DB
	exc    DBTX
	logger *slog.Logger
}

// Option configures optional collaborators of the Store.
type Option func(*Store)

// WithLogger makes the store log every statement at debug level with its duration.
func WithLogger(logger *slog.Logger) Option {
	return func(store *Store) {
		store.logger = logger
	}
}

func NewStore(db *sql.DB, options ...Option) *Store {
	sqlxDB := sqlx.NewDb(db, driverName)
	store := &Store{
		db:     sqlxDB,
		exc:    sqlxDB,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(store)
	}
	return store
}

/* Runs fn against a transaction, committing when it returns nil and rolling back otherwise. */
func (store *Store) withTx(ctx context.Context, fn func(txStore *Store) error) error {
	tx, err := store.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	txStore := &Store{db: store.db, exc: tx, logger: store.logger}
	if err := fn(txStore); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// logQuery is deferred by every statement; err points at the named result so the final value is seen.
func (store *Store) logQuery(ctx context.Context, operation string, start time.Time, err *error) {
	durationMS := float64(time.Since(start).Microseconds()) / 1000
	if *err != nil {
		store.logger.DebugContext(ctx, "query failed", "operation", operation, "duration_ms", durationMS, "error", *err)
		return
	}
	store.logger.DebugContext(ctx, "query completed", "operation", operation, "duration_ms", durationMS)
}

/* Connects to the database trought a connection string and returns a pointer to a valid DB object (*sql.DB). */
func ConnectDb(connStr string) (*sql.DB, error) {
	sqlDB, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("connecting to db, openning: %w", err)
	}

	err = sqlDB.Ping()
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to db, pingging: %w", err)
	}
	return sqlDB, nil
}

/* Applies every pending migration found under path. migrate.ErrNoChange is returned as is. */
func MigrationUp(store *Store, path string) error {
	driver, err := postgres.WithInstance(store.db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", path),
		driverName, driver)
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}

	err = m.Up()
	if err != nil {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}
