// Package client provides the database handle and its query surface.
package client

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
	"github.com/rs/zerolog"

	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/executor"
	"github.com/satishbabariya/simplesql/query/materialize"
	"github.com/satishbabariya/simplesql/query/sqlgen"
)

// DB is an open connection handle. It holds a single database connection;
// concurrent callers are serialised on it.
type DB struct {
	*session
	db     *sql.DB
	config Config
}

// Option configures Open
type Option func(*openOptions)

type openOptions struct {
	logger      *zerolog.Logger
	middlewares []executor.Middleware
}

// WithLogger sets the logger used by the log debug mode.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *openOptions) {
		o.logger = &logger
	}
}

// WithMiddleware adds statement middlewares
func WithMiddleware(m ...executor.Middleware) Option {
	return func(o *openOptions) {
		o.middlewares = append(o.middlewares, m...)
	}
}

// Open validates cfg, connects and verifies the connection.
func Open(ctx context.Context, cfg Config, opts ...Option) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialect, err := sqlgen.NewDialect(cfg.Driver)
	if err != nil {
		return nil, &query.ConfigError{Reason: err.Error()}
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, &query.ConnectionError{Driver: dialect.DriverName(), Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &query.ConnectionError{Driver: dialect.DriverName(), Err: err}
	}

	return newDB(db, dialect, cfg, opts...), nil
}

// FromDB wraps an existing connection pool. The pool is capped to a single
// connection.
func FromDB(db *sql.DB, cfg Config, opts ...Option) (*DB, error) {
	dialect, err := sqlgen.NewDialect(cfg.Driver)
	if err != nil {
		return nil, &query.ConfigError{Reason: err.Error()}
	}
	if _, err := executor.ParseMode(cfg.Debug); err != nil {
		return nil, &query.ConfigError{Reason: err.Error()}
	}
	db.SetMaxOpenConns(1)
	return newDB(db, dialect, cfg, opts...), nil
}

func newDB(db *sql.DB, dialect sqlgen.Dialect, cfg Config, opts ...Option) *DB {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	// validated by the caller
	mode, _ := executor.ParseMode(cfg.Debug)

	execOpts := []executor.Option{executor.WithMode(mode), executor.WithMiddleware(o.middlewares...)}
	if o.logger != nil {
		execOpts = append(execOpts, executor.WithLogger(*o.logger))
	}

	return &DB{
		session: &session{
			gen:    sqlgen.NewGenerator(dialect, sqlgen.WithLocation(cfg.location())),
			exec:   executor.New(db, execOpts...),
			loc:    cfg.location(),
			lastID: new(atomic.Int64),
		},
		db:     db,
		config: cfg,
	}
}

// Close closes the connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping verifies the connection is alive
func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return &query.ConnectionError{Driver: d.gen.Dialect().DriverName(), Err: err}
	}
	return nil
}

// SQLDB returns the underlying connection pool
func (d *DB) SQLDB() *sql.DB {
	return d.db
}

// Config returns the settings the handle was opened with
func (d *DB) Config() Config {
	return d.config
}

// Use adds a statement middleware
func (d *DB) Use(m executor.Middleware) {
	d.exec.Use(m)
}

// ServerVersion asks the server for its version string.
func (d *DB) ServerVersion(ctx context.Context) (string, error) {
	var stmt string
	switch d.gen.Dialect().(type) {
	case sqlgen.Postgres:
		stmt = "SHOW server_version"
	case sqlgen.SQLite:
		stmt = "SELECT sqlite_version()"
	default:
		stmt = "SELECT VERSION()"
	}

	rows, err := d.Query(ctx, stmt)
	if err != nil {
		return "", err
	}
	records, err := materialize.Materialize(materialize.FromRows(rows))
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("server returned no version")
	}
	for _, v := range records[0] {
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("server returned no version")
}
