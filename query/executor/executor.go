// Package executor prepares, binds and executes generated statements.
package executor

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog"

	"github.com/satishbabariya/simplesql/internal/debug"
	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/sqlgen"
	"github.com/satishbabariya/simplesql/query/value"
)

// Mode selects the debug instrumentation applied to every statement.
type Mode string

const (
	// ModeNone disables instrumentation
	ModeNone Mode = "none"
	// ModeLog emits one log record per executed statement
	ModeLog Mode = "log"
	// ModeStoreLast keeps the debug text of the latest statement
	ModeStoreLast Mode = "storelast"
)

// ParseMode reads a debug mode name. Empty input is ModeNone.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeNone, nil
	case ModeNone, ModeLog, ModeStoreLast:
		return m, nil
	default:
		return "", query.NewArgumentError("debug", "unknown debug mode %q; expected none, log or storelast", s)
	}
}

// Preparer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Executor runs statements on a single connection
type Executor struct {
	conn        Preparer
	mode        Mode
	logger      zerolog.Logger
	middlewares []Middleware
	last        *LastQuery
	hasLogger   bool
}

// Option configures an Executor
type Option func(*Executor)

// WithMode sets the debug mode
func WithMode(mode Mode) Option {
	return func(e *Executor) {
		e.mode = mode
	}
}

// WithLogger sets the logger used by ModeLog.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
		e.hasLogger = true
	}
}

// WithMiddleware adds middlewares that run before the debug instrumentation.
func WithMiddleware(m ...Middleware) Option {
	return func(e *Executor) {
		e.middlewares = append(e.middlewares, m...)
	}
}

// New creates an executor on conn
func New(conn Preparer, opts ...Option) *Executor {
	e := &Executor{
		conn:   conn,
		mode:   ModeNone,
		logger: debug.With("executor"),
		last:   &LastQuery{},
	}
	for _, opt := range opts {
		opt(e)
	}

	switch e.mode {
	case ModeLog:
		if !e.hasLogger && !debug.Enabled() {
			e.logger = debug.New(debug.Config{Pretty: true}).With().Str("component", "executor").Logger()
		}
		e.middlewares = append(e.middlewares, LoggingMiddleware(e.logger))
	case ModeStoreLast:
		e.middlewares = append(e.middlewares, StoreLastMiddleware(e.last))
	}
	return e
}

// Mode returns the debug mode
func (e *Executor) Mode() Mode {
	return e.mode
}

// Use appends a middleware to the chain
func (e *Executor) Use(m Middleware) {
	e.middlewares = append(e.middlewares, m)
}

// LastQuery returns the debug text of the most recent statement. It is empty
// unless the mode is ModeStoreLast.
func (e *Executor) LastQuery() string {
	return e.last.Get()
}

// On returns an executor that shares this one's instrumentation but runs on
// conn, e.g. a transaction.
func (e *Executor) On(conn Preparer) *Executor {
	c := *e
	c.conn = conn
	c.middlewares = append([]Middleware(nil), e.middlewares...)
	return &c
}

// Rows is a result set together with the prepared statement that produced
// it. Close releases both.
type Rows struct {
	*sql.Rows
	stmt *sql.Stmt
}

// Close closes the rows, then the statement.
func (r *Rows) Close() error {
	err := r.Rows.Close()
	if serr := r.stmt.Close(); err == nil {
		err = serr
	}
	return err
}

// Query executes a SELECT and returns its cursor. The caller closes the rows.
func (e *Executor) Query(ctx context.Context, stmt *sqlgen.Statement) (*Rows, error) {
	return e.query(ctx, eventFor(stmt))
}

// Exec executes an INSERT or UPDATE.
func (e *Executor) Exec(ctx context.Context, stmt *sqlgen.Statement) (sql.Result, error) {
	event := eventFor(stmt)

	var result sql.Result
	err := run(ctx, e.middlewares, event, func() error {
		prepared, err := e.prepare(ctx, event.SQL)
		if err != nil {
			return err
		}
		defer prepared.Close()

		result, err = prepared.ExecContext(ctx, event.Args...)
		if err != nil {
			return &query.StatementError{Phase: query.PhaseExecute, SQL: event.SQL, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Raw runs caller-written SQL without assembling or validating it.
func (e *Executor) Raw(ctx context.Context, sqlText string, args ...any) (*Rows, error) {
	return e.query(ctx, &Event{SQL: sqlText, Types: rawTypes(args), Args: args, Raw: true})
}

func (e *Executor) query(ctx context.Context, event *Event) (*Rows, error) {
	var rows *Rows
	err := run(ctx, e.middlewares, event, func() error {
		prepared, err := e.prepare(ctx, event.SQL)
		if err != nil {
			return err
		}

		result, err := prepared.QueryContext(ctx, event.Args...)
		if err != nil {
			prepared.Close()
			return &query.StatementError{Phase: query.PhaseExecute, SQL: event.SQL, Err: err}
		}
		rows = &Rows{Rows: result, stmt: prepared}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (e *Executor) prepare(ctx context.Context, sqlText string) (*sql.Stmt, error) {
	stmt, err := e.conn.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, &query.StatementError{Phase: query.PhasePrepare, SQL: sqlText, Err: err}
	}
	return stmt, nil
}

func eventFor(stmt *sqlgen.Statement) *Event {
	return &Event{
		SQL:   stmt.SQL,
		Types: stmt.Binding.TypeList(),
		Args:  stmt.Args(),
	}
}

// rawTypes resolves type codes for raw arguments where it can; arguments
// without a binding show as "?".
func rawTypes(args []any) string {
	var sb strings.Builder
	for _, a := range args {
		code := byte('?')
		if v, err := value.Of(a); err == nil {
			if c, err := value.Resolve(v); err == nil {
				code = byte(c)
			}
		}
		sb.WriteByte(code)
	}
	return sb.String()
}
