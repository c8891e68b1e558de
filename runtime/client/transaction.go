package client

import (
	"context"
	"database/sql"
	"fmt"
)

// IsolationLevel represents transaction isolation levels
type IsolationLevel int

const (
	// DefaultIsolation leaves the level to the server
	DefaultIsolation IsolationLevel = iota
	ReadUncommitted
	ReadCommitted
	RepeatableRead
	Serializable
)

// ToSQLIsolationLevel converts IsolationLevel to sql.IsolationLevel
func (level IsolationLevel) ToSQLIsolationLevel() sql.IsolationLevel {
	switch level {
	case ReadUncommitted:
		return sql.LevelReadUncommitted
	case ReadCommitted:
		return sql.LevelReadCommitted
	case RepeatableRead:
		return sql.LevelRepeatableRead
	case Serializable:
		return sql.LevelSerializable
	default:
		return sql.LevelDefault
	}
}

// NewTxOptions creates sql.TxOptions from isolation level
func NewTxOptions(isolation IsolationLevel, readOnly bool) *sql.TxOptions {
	return &sql.TxOptions{
		Isolation: isolation.ToSQLIsolationLevel(),
		ReadOnly:  readOnly,
	}
}

// Tx is a handle bound to an open transaction. It offers the same
// operations as DB.
type Tx struct {
	*session
	tx *sql.Tx
}

// TransactionFunc is a function that runs within a transaction
type TransactionFunc func(tx *Tx) error

// Transaction runs fn inside a database transaction. The transaction is
// rolled back if fn returns an error and committed otherwise. fn must use tx
// and not the DB, which has no free connection until the transaction ends.
func (d *DB) Transaction(ctx context.Context, fn TransactionFunc) error {
	return d.TransactionWithOptions(ctx, nil, fn)
}

// TransactionWithOptions is Transaction with explicit sql.TxOptions.
func (d *DB) TransactionWithOptions(ctx context.Context, opts *sql.TxOptions, fn TransactionFunc) error {
	sqlTx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{session: d.session.on(sqlTx), tx: sqlTx}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// TransactionWithIsolation runs fn at the given isolation level
func (d *DB) TransactionWithIsolation(ctx context.Context, isolation IsolationLevel, fn TransactionFunc) error {
	return d.TransactionWithOptions(ctx, NewTxOptions(isolation, false), fn)
}

// ReadOnlyTransaction runs fn in a read-only transaction
func (d *DB) ReadOnlyTransaction(ctx context.Context, fn TransactionFunc) error {
	return d.TransactionWithOptions(ctx, NewTxOptions(DefaultIsolation, true), fn)
}
