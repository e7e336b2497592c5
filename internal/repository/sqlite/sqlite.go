// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database: a single file, no server to run. It is the
// default store for local development, tests and single-node deployments.
// Larger deployments switch DB_DRIVER to postgres without touching services.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// modernc.org/sqlite is a pure Go translation of SQLite, so no C compiler is
// needed and cross-compilation keeps working.
//
// SCHEMA:
// Tables are created by goose migrations embedded from migrations/*.sql.
// The same files are applied by cmd/migrate, so the server and the CLI never
// disagree about the schema version.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/rs/xid"

	"github.com/sakif/publication-scheduler/internal/repository"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and implements every repository interface.
type DB struct {
	conn *sql.DB
}

// Options controls how New prepares the database.
type Options struct {
	// AutoMigrate applies pending migrations before New returns.
	AutoMigrate bool
}

// New opens the SQLite database at dbPath.
//
// dbPath examples:
//   - "data/scheduler.db"  → file-based database (persistent)
//   - ":memory:"           → private in-memory database (tests)
//
// IN-MEMORY DATABASES AND THE POOL:
// A plain ":memory:" database belongs to a single connection, but sql.DB is a
// pool that may open several. We rewrite ":memory:" into a uniquely named
// shared-cache memory database so every pooled connection sees the same
// tables, while two New(":memory:") calls still get isolated databases.
func New(ctx context.Context, dbPath string, opts Options) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection keeps the in-memory database alive for the life of the
	// pool and avoids shared-cache table locks between connections.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if dbPath != ":memory:" {
		if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
		}
	}

	db := &DB{conn: conn}

	if opts.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return db, nil
}

func dsn(dbPath string) string {
	if dbPath == ":memory:" {
		return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", xid.New().String())
	}
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=busy_timeout(5000)"
}

// Migrate applies every pending migration.
func (db *DB) Migrate(ctx context.Context) error {
	provider, err := NewMigrator(db.conn)
	if err != nil {
		return err
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return nil
}

// NewMigrator returns a goose provider bound to conn and the embedded
// SQLite migrations.
func NewMigrator(conn *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("sqlite: loading migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, conn, fsys)
	if err != nil {
		return nil, fmt.Errorf("sqlite: creating migration provider: %w", err)
	}
	return provider, nil
}

// OpenRaw opens dbPath without migrating, for tools that manage the schema
// themselves (cmd/migrate).
func OpenRaw(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	return conn, nil
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}
