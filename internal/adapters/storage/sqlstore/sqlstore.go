// Package sqlstore implements the quote and user stores on a relational
// database through gorm. SQLite is the embedded option used in local mode;
// Postgres serves shared deployments.
package sqlstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// sqliteBusyTimeout lets concurrent writers wait for the file lock instead of
// failing with SQLITE_BUSY.
const sqliteBusyTimeout = 5 * time.Second

// Config configures the database connection.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string

	// DSN is a file path or SQLite URI for sqlite, a connection string for postgres.
	DSN string

	// MaxOpenConns is ignored for sqlite, which always uses a single connection.
	MaxOpenConns int

	// LogLevel is one of silent, error, warn, info.
	LogLevel string
}

// DB is an open database handle shared by the quote and user stores.
type DB struct {
	gorm   *gorm.DB
	driver string
}

var _ ports.HealthChecker = (*DB)(nil)

// Open connects to the database described by cfg.
func Open(cfg Config) (*DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case DriverSQLite:
		dsn, err := sqliteDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}

		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newSlogLogger(cfg.LogLevel),
		TranslateError:         true,
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql handle: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	sqlDB.SetConnMaxLifetime(time.Hour)

	return &DB{gorm: db, driver: cfg.Driver}, nil
}

// Name returns the health check name.
func (d *DB) Name() string {
	return "sqlstore"
}

// Check pings the database.
func (d *DB) Check(ctx context.Context) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Driver returns the configured driver name.
func (d *DB) Driver() string {
	return d.driver
}

// Close releases the connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// sqliteDSN adds the busy timeout and creates the parent directory of a
// plain file path.
func sqliteDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("sqlite dsn is required")
	}

	isMemory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
	if !isMemory && !strings.HasPrefix(dsn, "file:") {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return "", fmt.Errorf("creating sqlite directory: %w", err)
			}
		}
	}

	if strings.Contains(dsn, "_busy_timeout") {
		return dsn, nil
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, sqliteBusyTimeout.Milliseconds()), nil
}
