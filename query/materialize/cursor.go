// Package materialize turns a result cursor into records or typed values.
package materialize

import (
	"database/sql"
)

// Cursor is a single-pass result set. Database rows satisfy it through
// FromRows.
type Cursor interface {
	Columns() ([]string, error)
	// DatabaseTypes returns the storage type name of each column, e.g.
	// "DATETIME" or "VARCHAR". Unknown types are "".
	DatabaseTypes() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Rows is the part of *sql.Rows a cursor reads from.
type Rows interface {
	Columns() ([]string, error)
	ColumnTypes() ([]*sql.ColumnType, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type rowsCursor struct {
	Rows
}

// FromRows adapts database/sql rows
func FromRows(rows Rows) Cursor {
	return rowsCursor{Rows: rows}
}

func (c rowsCursor) DatabaseTypes() ([]string, error) {
	types, err := c.ColumnTypes()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.DatabaseTypeName()
	}
	return names, nil
}
