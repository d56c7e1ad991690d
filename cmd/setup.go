package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/boardsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when missing, then initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", r.configPath)
			if config, err := shared.LoadConfig(r.configPath); err == nil {
				r.config = config
			}
		}
	}

	cfg := r.cfg().Database
	r.logger.Info("initializing database", "driver", cfg.Driver, "path", cfg.Path)

	db, err := shared.OpenDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(ctx, db, cfg.Driver, r.logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Info("setup complete", "driver", cfg.Driver)
	return r.writePlain("✓ Database ready\n")
}
