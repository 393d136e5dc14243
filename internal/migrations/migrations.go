package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var Files embed.FS

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(Files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// currentVersion returns the applied version, forcing it clean if a previous run
// was interrupted. A fresh database reports version 0.
func currentVersion(m *migrate.Migrate) (uint, bool, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		slog.Warn("[Migrations] Database is in dirty state, forcing current version",
			"version", version,
		)
		if err := m.Force(int(version)); err != nil {
			return version, dirty, fmt.Errorf("failed to recover dirty migration state at version %d: %w", version, err)
		}
	}
	return version, dirty, nil
}

// Up applies pending migrations. With apply=false it only reports the current version.
func Up(db *sql.DB, apply bool) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	version, dirty, err := currentVersion(m)
	if err != nil {
		return err
	}

	if !apply {
		slog.Info("[Migrations] Auto-migration disabled, skipping",
			"current_version", version,
			"dirty", dirty,
		)
		return nil
	}

	slog.Info("[Migrations] Applying migrations", "current_version", version)
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("[Migrations] Schema is up to date", "version", version)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get updated migration version: %w", err)
	}
	slog.Info("[Migrations] Migrations applied",
		"from_version", version,
		"to_version", newVersion,
	)
	return nil
}

// Down rolls back every migration. Used by the CLI and integration test teardown.
func Down(db *sql.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if _, _, err := currentVersion(m); err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	slog.Info("[Migrations] Migrations rolled back")
	return nil
}
