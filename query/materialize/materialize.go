package materialize

import (
	"fmt"
	"strings"
	"time"

	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/value"
)

var temporalLayouts = map[string]string{
	"DATETIME":  value.TimeLayout,
	"TIMESTAMP": value.TimeLayout,
	"DATE":      "2006-01-02",
	"TIME":      "15:04:05",
}

// temporalLayout returns the parse layout for a storage type, ignoring case
// and any precision suffix such as DATETIME(6).
func temporalLayout(dbType string) (string, bool) {
	name := strings.ToUpper(strings.TrimSpace(dbType))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	layout, ok := temporalLayouts[name]
	return layout, ok
}

type options struct {
	location *time.Location
}

// Option configures materialization
type Option func(*options)

// WithLocation sets the zone temporal text is interpreted in. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// Materialize drains c into records and closes it.
func Materialize(c Cursor, opts ...Option) ([]Record, error) {
	records := make([]Record, 0)
	err := each(c, opts, func(rec Record, _ int) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Into drains c through m and closes it.
func Into[T any](c Cursor, m *Mapper[T], opts ...Option) ([]T, error) {
	out := make([]T, 0)
	err := each(c, opts, func(rec Record, row int) error {
		v, err := m.mapRecord(rec, row)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func each(c Cursor, opts []Option, fn func(rec Record, row int) error) error {
	defer c.Close()

	o := options{location: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}

	columns, err := c.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns: %w", err)
	}
	types, err := c.DatabaseTypes()
	if err != nil {
		return fmt.Errorf("failed to read column types: %w", err)
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	row := 0
	for c.Next() {
		if err := c.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan row %d: %w", row, err)
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			var dbType string
			if i < len(types) {
				dbType = types[i]
			}
			v, err := convert(values[i], dbType, o.location)
			if err != nil {
				return &query.ConversionError{Column: col, Row: row, Raw: fmt.Sprint(rawText(values[i])), Err: err}
			}
			rec[col] = v
		}

		if err := fn(rec, row); err != nil {
			return err
		}
		row++
	}

	if err := c.Err(); err != nil {
		return fmt.Errorf("failed to iterate rows: %w", err)
	}
	return nil
}

// convert applies the post-fetch conversion of one column value.
func convert(v any, dbType string, loc *time.Location) (any, error) {
	if v == nil {
		return nil, nil
	}

	layout, temporal := temporalLayout(dbType)
	if !temporal {
		if b, ok := v.([]byte); ok {
			return string(b), nil
		}
		return v, nil
	}

	switch t := v.(type) {
	case time.Time:
		return reanchor(t, loc), nil
	case []byte:
		return time.ParseInLocation(layout, string(t), loc)
	case string:
		return time.ParseInLocation(layout, t, loc)
	default:
		return nil, fmt.Errorf("unexpected %T for %s column", v, dbType)
	}
}

// reanchor moves a driver-decoded zoneless timestamp onto loc's wall clock.
// Drivers without a location setting decode DATETIME as UTC; a value with a
// real offset already carries its zone and is kept.
func reanchor(t time.Time, loc *time.Location) time.Time {
	if _, offset := t.Zone(); offset != 0 || loc == time.UTC {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func rawText(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
