package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"terminfinder-api/core/config"
	"terminfinder-api/core/constants"
	"terminfinder-api/core/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded migrations for cfg.Driver on a dedicated
// connection pool, closed afterwards.
func Migrate(cfg config.DatabaseConfig) error {
	dsn, err := DSN(cfg)
	if err != nil {
		return err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	var driver migratedb.Driver
	switch cfg.Driver {
	case constants.DatabaseDriverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case constants.DatabaseDriverSQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Driver, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Database migrations completed successfully", "version", version, "dirty", dirty)
	return nil
}
