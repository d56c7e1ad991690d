package shared

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// RunMigrations applies all pending schema migrations using the goose Provider API.
//
// driver selects the SQL dialect and is one of [DriverSQLite] or [DriverPostgres].
func RunMigrations(ctx context.Context, db *sql.DB, driver string, logger *log.Logger) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	subFS, err := fs.Sub(migrationFiles, "sql")
	if err != nil {
		return fmt.Errorf("failed to open migration directory: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, subFS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if logger != nil {
		for _, r := range results {
			logger.Info("applied migration", "source", r.Source.Path, "duration", r.Duration)
		}
	}

	return nil
}

func gooseDialect(driver string) (goose.Dialect, error) {
	switch driver {
	case "", DriverSQLite:
		return goose.DialectSQLite3, nil
	case DriverPostgres, "postgres":
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, driver)
	}
}
