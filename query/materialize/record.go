package materialize

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Record is the generic property bag for one row, keyed by column name.
// NULL columns hold nil, temporal columns hold time.Time and text columns hold
// string.
type Record map[string]any

// Get returns the raw column value
func (r Record) Get(column string) (any, bool) {
	v, ok := r[column]
	return v, ok
}

// IsNull reports whether the column is absent or NULL.
func (r Record) IsNull(column string) bool {
	return r[column] == nil
}

// String returns the column as text; NULL is "".
func (r Record) String(column string) string {
	return cast.ToString(r[column])
}

// Int64 converts the column to an integer.
func (r Record) Int64(column string) (int64, error) {
	return cast.ToInt64E(r[column])
}

// Float64 converts the column to a float.
func (r Record) Float64(column string) (float64, error) {
	return cast.ToFloat64E(r[column])
}

// Time returns a temporal column.
func (r Record) Time(column string) (time.Time, error) {
	if t, ok := r[column].(time.Time); ok {
		return t, nil
	}
	return cast.ToTimeE(r[column])
}

// lookup finds a column by exact name, then case-insensitively.
func (r Record) lookup(column string) (any, bool) {
	if v, ok := r[column]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, column) {
			return v, true
		}
	}
	return nil, false
}
