// Package dao provides a table-bound data access object over the client.
package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/materialize"
	"github.com/satishbabariya/simplesql/query/sqlgen"
	"github.com/satishbabariya/simplesql/query/value"
	"github.com/satishbabariya/simplesql/runtime/client"
)

// ErrNotFound is returned by LoadByID when no object matches.
var ErrNotFound = errors.New("could not find an object")

// Store is implemented by *client.DB and *client.Tx.
type Store interface {
	client.Handle
	Insert(ctx context.Context, table string, data sqlgen.Fields) (int64, error)
	Update(ctx context.Context, table string, data, where sqlgen.Fields) (int64, error)
}

// Dao loads and stores objects of type T in one table.
type Dao[T any] struct {
	store   Store
	table   string
	mapper  *materialize.Mapper[T]
	columns func(item T) sqlgen.Fields
	deleted string
}

// Option configures a Dao
type Option[T any] func(*Dao[T])

// WithSoftDelete names the flag column SoftDelete sets to 1.
func WithSoftDelete[T any](column string) Option[T] {
	return func(d *Dao[T]) {
		d.deleted = column
	}
}

// New creates a Dao. mapper decides which columns are selected; columns
// extracts the data written by Insert and Update.
func New[T any](store Store, table string, mapper *materialize.Mapper[T], columns func(item T) sqlgen.Fields, opts ...Option[T]) *Dao[T] {
	d := &Dao[T]{
		store:   store,
		table:   table,
		mapper:  mapper,
		columns: columns,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Table returns the table name
func (d *Dao[T]) Table() string {
	return d.table
}

func (d *Dao[T]) query(where sqlgen.Fields, order sqlgen.Order, limit sqlgen.Limit) sqlgen.SelectQuery {
	return sqlgen.SelectQuery{
		Columns: d.mapper.Columns(),
		Table:   d.table,
		Where:   where,
		Order:   order,
		Limit:   limit,
	}
}

// LoadByID returns the object matching ids, or ErrNotFound.
func (d *Dao[T]) LoadByID(ctx context.Context, ids sqlgen.Fields) (T, error) {
	item, found, err := client.SelectRowInto(ctx, d.store, d.query(ids, nil, sqlgen.NoLimit), d.mapper)
	if err != nil {
		return item, err
	}
	if !found {
		var zero T
		return zero, fmt.Errorf("%s %v: %w", d.table, ids.Keys(), ErrNotFound)
	}
	return item, nil
}

// Exists reports whether an object matches ids.
func (d *Dao[T]) Exists(ctx context.Context, ids sqlgen.Fields) (bool, error) {
	_, found, err := client.SelectRowInto(ctx, d.store, d.query(ids, nil, sqlgen.NoLimit), d.mapper)
	return found, err
}

// Find returns every object matching where.
func (d *Dao[T]) Find(ctx context.Context, where sqlgen.Fields, order sqlgen.Order, limit sqlgen.Limit) ([]T, error) {
	return client.SelectInto(ctx, d.store, d.query(where, order, limit), d.mapper)
}

// Insert stores item and returns its generated id.
func (d *Dao[T]) Insert(ctx context.Context, item T) (int64, error) {
	return d.store.Insert(ctx, d.table, d.columns(item))
}

// Update writes item over the rows matching where.
func (d *Dao[T]) Update(ctx context.Context, item T, where sqlgen.Fields) (int64, error) {
	return d.store.Update(ctx, d.table, d.columns(item), where)
}

// SoftDelete flags the rows matching where as deleted. Rows are never
// removed.
func (d *Dao[T]) SoftDelete(ctx context.Context, where sqlgen.Fields) (int64, error) {
	if d.deleted == "" {
		return 0, query.NewArgumentError("softDelete", "no deleted-flag column configured for %s", d.table)
	}
	return d.store.Update(ctx, d.table, sqlgen.Data(d.deleted, value.Int(1)), where)
}
