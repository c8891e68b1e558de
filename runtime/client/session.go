package client

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/executor"
	"github.com/satishbabariya/simplesql/query/materialize"
	"github.com/satishbabariya/simplesql/query/sqlgen"
)

// session is the query surface shared by DB and Tx.
type session struct {
	gen    *sqlgen.Generator
	exec   *executor.Executor
	loc    *time.Location
	lastID *atomic.Int64
}

func (s *session) on(conn executor.Preparer) *session {
	c := *s
	c.exec = s.exec.On(conn)
	return &c
}

// Dialect returns the SQL dialect in use
func (s *session) Dialect() sqlgen.Dialect {
	return s.gen.Dialect()
}

// LastQuery returns the debug text of the most recent statement when the
// debug mode is storelast.
func (s *session) LastQuery() string {
	return s.exec.LastQuery()
}

// LastInsertID returns the id generated by the most recent Insert.
func (s *session) LastInsertID() int64 {
	return s.lastID.Load()
}

// Select runs a SELECT and returns every matching row.
func (s *session) Select(ctx context.Context, q sqlgen.SelectQuery) ([]materialize.Record, error) {
	cursor, err := s.cursor(ctx, q)
	if err != nil {
		return nil, err
	}
	return materialize.Materialize(cursor, materialize.WithLocation(s.loc))
}

// SelectRow returns the first row matching a non-empty filter. found is false
// when no row matches; that is not an error.
func (s *session) SelectRow(ctx context.Context, q sqlgen.SelectQuery) (row materialize.Record, found bool, err error) {
	q, err = rowQuery(q)
	if err != nil {
		return nil, false, err
	}
	records, err := s.Select(ctx, q)
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return records[0], true, nil
}

// Insert adds a row and returns the generated id. PostgreSQL does not report
// one, so the id is 0 there.
func (s *session) Insert(ctx context.Context, table string, data sqlgen.Fields) (int64, error) {
	stmt, err := s.gen.Insert(table, data)
	if err != nil {
		return 0, err
	}
	res, err := s.exec.Exec(ctx, stmt)
	if err != nil {
		return 0, err
	}

	if _, ok := s.gen.Dialect().(sqlgen.Postgres); ok {
		s.lastID.Store(0)
		return 0, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &query.StatementError{Phase: query.PhaseExecute, SQL: stmt.SQL, Err: err}
	}
	s.lastID.Store(id)
	return id, nil
}

// Update changes the rows matching where and returns how many were affected.
// An empty where is rejected.
func (s *session) Update(ctx context.Context, table string, data, where sqlgen.Fields) (int64, error) {
	stmt, err := s.gen.Update(table, data, where)
	if err != nil {
		return 0, err
	}
	res, err := s.exec.Exec(ctx, stmt)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &query.StatementError{Phase: query.PhaseExecute, SQL: stmt.SQL, Err: err}
	}
	return n, nil
}

// Query runs raw SQL. Nothing is escaped or validated; the caller closes the
// rows.
func (s *session) Query(ctx context.Context, sqlText string, args ...any) (*executor.Rows, error) {
	return s.exec.Raw(ctx, sqlText, args...)
}

func (s *session) cursor(ctx context.Context, q sqlgen.SelectQuery) (materialize.Cursor, error) {
	stmt, err := s.gen.Select(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.exec.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return materialize.FromRows(rows), nil
}

func rowQuery(q sqlgen.SelectQuery) (sqlgen.SelectQuery, error) {
	if q.Where.IsEmpty() {
		return q, query.NewArgumentError("selectRow", "where must not be empty")
	}
	q.Limit = sqlgen.LimitTo(1)
	return q, nil
}

// Handle is implemented by *DB and *Tx.
type Handle interface {
	cursor(ctx context.Context, q sqlgen.SelectQuery) (materialize.Cursor, error)
	location() *time.Location
}

func (s *session) location() *time.Location {
	return s.loc
}

// SelectInto runs a SELECT and maps every row through m.
func SelectInto[T any](ctx context.Context, h Handle, q sqlgen.SelectQuery, m *materialize.Mapper[T]) ([]T, error) {
	cursor, err := h.cursor(ctx, q)
	if err != nil {
		return nil, err
	}
	return materialize.Into(cursor, m, materialize.WithLocation(h.location()))
}

// SelectRowInto is SelectRow for a mapped type.
func SelectRowInto[T any](ctx context.Context, h Handle, q sqlgen.SelectQuery, m *materialize.Mapper[T]) (T, bool, error) {
	var zero T
	q, err := rowQuery(q)
	if err != nil {
		return zero, false, err
	}
	items, err := SelectInto(ctx, h, q, m)
	if err != nil {
		return zero, false, err
	}
	if len(items) == 0 {
		return zero, false, nil
	}
	return items[0], true, nil
}
