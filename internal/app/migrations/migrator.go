package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/yigit/dormitory/internal/config"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Migrator applies the embedded schema migrations for one store
type Migrator struct {
	cfg    config.DatabaseConfig
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(cfg config.DatabaseConfig, logger zerolog.Logger) *Migrator {
	return &Migrator{
		cfg:    cfg,
		logger: logger.With().Str("component", "migrations").Logger(),
	}
}

// Up applies every pending up migration. Applying an up-to-date schema is a no-op.
func (m *Migrator) Up() error {
	mig, sqlDB, err := m.newMigrate()
	if err != nil {
		return err
	}
	defer func() {
		_, _ = mig.Close()
		_ = sqlDB.Close()
	}()

	if err := mig.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info().Msg("Database schema already up to date")
			return nil
		}
		return fmt.Errorf("migrate up failed: %w", err)
	}

	version, _, err := mig.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	m.logger.Info().Uint("version", version).Msg("Database migrations successfully applied")
	return nil
}

// newMigrate opens a handle dedicated to the migrate instance
func (m *Migrator) newMigrate() (*migrate.Migrate, *sql.DB, error) {
	dir, dbName := "sqlite", "sqlite"
	var sqlDB *sql.DB

	if m.cfg.Driver == config.DriverPostgres {
		dir, dbName = "postgres", m.cfg.DBName
		connConfig, err := pgx.ParseConfig(m.cfg.GetPostgresConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse postgres config: %w", err)
		}
		sqlDB = stdlib.OpenDB(*connConfig)
	} else {
		var err error
		sqlDB, err = sql.Open("sqlite", m.cfg.GetSQLiteDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite db: %w", err)
		}
	}

	driver, err := m.driver(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("init migration driver: %w", err)
	}

	source, err := iofs.New(files, dir)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("init migrator failed: %w", err)
	}
	return mig, sqlDB, nil
}

func (m *Migrator) driver(sqlDB *sql.DB) (database.Driver, error) {
	if m.cfg.Driver == config.DriverPostgres {
		return pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	}
	return sqlitemigrate.WithInstance(sqlDB, &sqlitemigrate.Config{})
}
