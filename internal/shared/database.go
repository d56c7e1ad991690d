package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// NewDatabase opens a connection to a SQLite database at the specified path.
// The path can be ":memory:" for an in-memory database.
// Returns an open database connection or an error if connection fails.
func NewDatabase(path string) (*sql.DB, error) {
	return OpenDatabase(DatabaseConfig{Driver: DriverSQLite, Path: path})
}

// OpenDatabase opens the database described by cfg and verifies the connection.
//
// An empty driver defaults to SQLite.
func OpenDatabase(cfg DatabaseConfig) (*sql.DB, error) {
	driver, source := cfg.Driver, cfg.Path
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
	case DriverPostgres, "postgres":
		driver, source = DriverPostgres, cfg.DSN
	default:
		return nil, fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, cfg.Driver)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database.
// Recommended for production use to limit connections and improve performance.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}
