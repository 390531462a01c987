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
var MigrationFiles embed.FS

// RunMigrations brings the datasets schema up to the newest embedded version.
// With autoMigrate false it only logs where the schema stands.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	version, err := currentVersion(m)
	if err != nil {
		return err
	}

	if !autoMigrate {
		slog.Info("[Migrations] Schema left untouched", "version", version, "auto_migrate", false)
		return nil
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		slog.Info("[Migrations] Datasets schema already current", "version", version)
		return nil
	case err != nil:
		return fmt.Errorf("applying dataset migrations: %w", err)
	}

	applied, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("reading schema version after migrating: %w", err)
	}
	slog.Info("[Migrations] Datasets schema migrated", "from", version, "to", applied)
	return nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("preparing postgres migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("building migrator: %w", err)
	}
	return m, nil
}

// currentVersion reads the schema version, clearing the dirty flag an
// interrupted run leaves behind. The up scripts use IF NOT EXISTS, so
// re-running the recorded version is harmless.
func currentVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if !dirty {
		return version, nil
	}

	slog.Warn("[Migrations] Interrupted migration detected, forcing version", "version", version)
	if err := m.Force(int(version)); err != nil {
		return 0, fmt.Errorf("clearing dirty schema version %d: %w", version, err)
	}
	return version, nil
}
