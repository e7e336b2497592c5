// Package postgres implements the repository interfaces on PostgreSQL through
// a pgx connection pool. It is selected with DB_DRIVER=postgres.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/sakif/publication-scheduler/internal/repository"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var _ repository.Store = (*DB)(nil)

type DB struct {
	pool *pgxpool.Pool
}

type Options struct {
	AutoMigrate bool
}

// New connects to dsn, pings, and optionally applies migrations.
func New(ctx context.Context, dsn string, opts Options) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	db := &DB{pool: pool}

	if opts.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return db, nil
}

// Migrate applies pending migrations through a database/sql view of the pool.
func (db *DB) Migrate(ctx context.Context) error {
	sqlDB := stdlib.OpenDBFromPool(db.pool)
	defer sqlDB.Close()

	provider, err := NewMigrator(sqlDB)
	if err != nil {
		return err
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("postgres: running migrations: %w", err)
	}
	return nil
}

// NewMigrator returns a goose provider bound to conn and the embedded
// Postgres migrations.
func NewMigrator(conn *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("postgres: loading migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, conn, fsys)
	if err != nil {
		return nil, fmt.Errorf("postgres: creating migration provider: %w", err)
	}
	return provider, nil
}

// OpenRaw opens dsn through the pgx database/sql driver without migrating.
func OpenRaw(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening database: %w", err)
	}
	return conn, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() error {
	db.pool.Close()
	return nil
}
