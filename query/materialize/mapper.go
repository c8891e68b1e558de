package materialize

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/satishbabariya/simplesql/query"
)

// Setter assigns one non-NULL column value to dst.
type Setter[T any] func(dst *T, v any) error

type fieldSetter[T any] struct {
	column string
	set    Setter[T]
}

// Mapper maps records to T through explicitly registered columns. Columns
// without a setter are ignored and NULL values leave the field at its zero
// value.
type Mapper[T any] struct {
	fields []fieldSetter[T]
}

// NewMapper creates an empty mapper
func NewMapper[T any]() *Mapper[T] {
	return &Mapper[T]{}
}

// Field registers set for column. Lookup is exact first, then
// case-insensitive.
func (m *Mapper[T]) Field(column string, set Setter[T]) *Mapper[T] {
	m.fields = append(m.fields, fieldSetter[T]{column: column, set: set})
	return m
}

// Columns returns the registered columns in registration order.
func (m *Mapper[T]) Columns() []string {
	cols := make([]string, len(m.fields))
	for i, f := range m.fields {
		cols[i] = f.column
	}
	return cols
}

// Map builds a T from rec.
func (m *Mapper[T]) Map(rec Record) (T, error) {
	return m.mapRecord(rec, 0)
}

func (m *Mapper[T]) mapRecord(rec Record, row int) (T, error) {
	var out T
	for _, f := range m.fields {
		v, ok := rec.lookup(f.column)
		if !ok || v == nil {
			continue
		}
		if err := f.set(&out, v); err != nil {
			var zero T
			return zero, &query.ConversionError{Column: f.column, Row: row, Raw: fmt.Sprint(v), Err: err}
		}
	}
	return out, nil
}

// Int64 adapts an integer field setter
func Int64[T any](set func(dst *T, v int64)) Setter[T] {
	return func(dst *T, v any) error {
		n, err := cast.ToInt64E(v)
		if err != nil {
			return err
		}
		set(dst, n)
		return nil
	}
}

// Int adapts an int field setter
func Int[T any](set func(dst *T, v int)) Setter[T] {
	return func(dst *T, v any) error {
		n, err := cast.ToIntE(v)
		if err != nil {
			return err
		}
		set(dst, n)
		return nil
	}
}

// Float64 adapts a float field setter
func Float64[T any](set func(dst *T, v float64)) Setter[T] {
	return func(dst *T, v any) error {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return err
		}
		set(dst, f)
		return nil
	}
}

// String adapts a text field setter
func String[T any](set func(dst *T, v string)) Setter[T] {
	return func(dst *T, v any) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		set(dst, s)
		return nil
	}
}

// Bool adapts a flag field setter; integers are true when non-zero.
func Bool[T any](set func(dst *T, v bool)) Setter[T] {
	return func(dst *T, v any) error {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		set(dst, b)
		return nil
	}
}

// Time adapts a temporal field setter. Temporal columns already arrive as
// time.Time.
func Time[T any](set func(dst *T, v time.Time)) Setter[T] {
	return func(dst *T, v any) error {
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected a temporal value, got %T", v)
		}
		set(dst, t)
		return nil
	}
}
