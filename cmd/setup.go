package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/moodx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes config.toml from the embedded template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Wrote %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Point catalog.path at your catalog JSON (or configure catalog.remote)\n")
	r.writePlain("2. Run 'moodx setup database' to create the local store\n")
	return nil
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config, err := r.setupConfig(configPath)
	if err != nil {
		return err
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	applied, err := shared.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := shared.CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Database ready at %s (schema version %d, %d migrations applied)\n", config.Database.Path, version, applied)
	return nil
}

// SetupRollback reverts the most recent migration of the configured database.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	config, err := r.setupConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	before, err := shared.CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r.logger.Info("rolling back migration", "path", config.Database.Path, "version", before)
	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	after, err := shared.CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r.writePlain("✓ Rolled back migration %d (schema version now %d)\n", before, after)
	return nil
}

// setupConfig loads the config at path, creating it from the template when missing.
// Unreadable configs fall back to the runner's configuration.
func (r *Runner) setupConfig(path string) (*shared.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			return r.config, nil
		}
		r.logger.Info("config file created", "path", path)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidConfig) {
			return nil, err
		}
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return r.config, nil
	}
	return config, nil
}
