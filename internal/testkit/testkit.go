// Package testkit opens throwaway stores for package tests.
package testkit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/yigit/dormitory/internal/app/migrations"
	"github.com/yigit/dormitory/internal/app/repositories"
	"github.com/yigit/dormitory/internal/config"
	"github.com/yigit/dormitory/internal/db"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

// SQLiteConfig returns a store config pointing at a fresh file under t.TempDir()
func SQLiteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "dormitory.db"),
	}
}

// NewStore returns a migrated SQLite store that is closed when the test ends
func NewStore(t *testing.T) *db.DB {
	t.Helper()
	cfg := SQLiteConfig(t)

	if err := migrations.NewMigrator(cfg, logger.Nop()).Up(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store, err := db.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// NewRepositories returns the repositories over a fresh store
func NewRepositories(t *testing.T) (*db.DB, *repositories.Repositories) {
	t.Helper()
	store := NewStore(t)
	return store, repositories.NewRepositories(store)
}
