package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // SQLite driver "sqlite" (pure Go)
)

// Database configuration constants.
const (
	// msPerSecond converts seconds to milliseconds.
	msPerSecond = 1000

	// connectionTimeout is the timeout for verifying database connectivity.
	connectionTimeout = 5 * time.Second
)

// Driver names accepted by Open.
const (
	DriverMattn   = "sqlite3"
	DriverModernc = "sqlite"
)

// DB wraps a sql.DB handle on a named in-memory SQLite database.
//
// The pool is pinned to a single connection that never expires: a shared
// in-memory database is dropped as soon as its last connection closes, so
// the data lives exactly as long as the DB.
type DB struct {
	*sql.DB
	name   string
	driver string

	logger Logger
}

// Logger is the optional logging dependency. Compatible with logging.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config contains database configuration options.
// These map to the database section of config.yaml.
type Config struct {
	// Driver is the database/sql driver name: "sqlite3" or "sqlite".
	Driver string

	// Name identifies the in-memory instance.
	Name string

	// BusyTimeout is the maximum time to wait for a database lock (seconds).
	BusyTimeout int
}

// Open creates the named in-memory database and verifies the connection.
//
// It performs the following setup:
//  1. Builds a driver-specific DSN for a shared in-memory database
//  2. Opens the handle and pins the pool to one connection
//  3. Verifies the connection with a ping
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	db := &DB{
		DB:     sqlDB,
		name:   cfg.Name,
		driver: cfg.Driver,
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		sqlDB.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	return db, nil
}

// buildDSN returns the connection string for a shared in-memory database.
// See: https://github.com/mattn/go-sqlite3#connection-string
// and https://pkg.go.dev/modernc.org/sqlite#Driver.Open
func buildDSN(cfg Config) (string, error) {
	if cfg.Name == "" {
		return "", ErrNameRequired
	}

	base := fmt.Sprintf("file:%s?mode=memory&cache=shared", cfg.Name)
	timeout := cfg.BusyTimeout * msPerSecond

	switch cfg.Driver {
	case DriverMattn:
		return fmt.Sprintf("%s&_busy_timeout=%d", base, timeout), nil
	case DriverModernc:
		return fmt.Sprintf("%s&_pragma=busy_timeout(%d)", base, timeout), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Close closes the connection. The in-memory database is discarded with it.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Name returns the in-memory instance name.
func (db *DB) Name() string {
	return db.name
}

// Driver returns the database/sql driver name in use.
func (db *DB) Driver() string {
	return db.driver
}

// SetLogger sets a logger for schema initialisation messages.
func (db *DB) SetLogger(logger Logger) {
	db.logger = logger
}

// HealthCheck verifies the connection is alive with a trivial query.
func (db *DB) HealthCheck(ctx context.Context) error {
	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
