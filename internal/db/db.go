package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/yigit/dormitory/internal/config"
	"github.com/yigit/dormitory/internal/pkg/logger"
)

// Dialect names the SQL flavour behind a DB
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps the relational store handle together with its dialect
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
	Builder sq.StatementBuilderType
}

// Open connects to the configured store and verifies the connection
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DriverSQLite, "":
		return OpenSQLite(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLite opens a file backed SQLite store.
// A single connection serializes writers the same way the file lock would.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	sqlDB, err := sql.Open("sqlite", config.SQLiteDSN(filepath.Clean(path)))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := ping(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return newDB(sqlDB, DialectSQLite), nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Lifetime())

	if err := ping(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return newDB(sqlDB, DialectPostgres), nil
}

func newDB(sqlDB *sql.DB, dialect Dialect) *DB {
	var format sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		format = sq.Dollar
	}
	return &DB{
		SQL:     sqlDB,
		Dialect: dialect,
		Builder: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

func ping(ctx context.Context, sqlDB *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying pool
func (db *DB) Close() error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

// ConnFn is a function that runs against one acquired connection
type ConnFn func(ctx context.Context, q Querier) error

// WithConn acquires a dedicated connection for fn and releases it on every exit path.
// fn must use q only; going back to the pool would block on a single-connection store.
func (db *DB) WithConn(ctx context.Context, fn ConnFn) error {
	conn, err := db.SQL.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx Querier) error

// WithTransaction runs a function within a transaction
func (db *DB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ForUpdate appends a row lock where the dialect supports one
func (db *DB) ForUpdate(b sq.SelectBuilder) sq.SelectBuilder {
	if db.Dialect == DialectPostgres {
		return b.Suffix("FOR UPDATE")
	}
	return b
}
