package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Dialect captures the per-database differences of the generated SQL.
type Dialect interface {
	// Name is the provider name: mysql, postgresql or sqlite.
	Name() string
	// DriverName is the database/sql driver registered for the provider.
	DriverName() string
	// QuoteIdentifier escapes a possibly dotted identifier.
	QuoteIdentifier(name string) string
	// Placeholder returns the marker for the 1-based parameter index.
	Placeholder(index int) string
	// LimitClause renders a LIMIT clause; l is already validated.
	LimitClause(l Limit) string
}

// NewDialect returns the dialect for a provider or driver name.
func NewDialect(provider string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "mysql":
		return MySQL{}, nil
	case "postgresql", "postgres":
		return Postgres{}, nil
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func quoteParts(name string, quote func(string) string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quote(p)
	}
	return strings.Join(parts, ".")
}

// offsetCommaLimit renders LIMIT n or LIMIT offset,count
func offsetCommaLimit(l Limit) string {
	if l.ranged {
		return fmt.Sprintf("LIMIT %d,%d", l.offset, l.count)
	}
	return "LIMIT " + strconv.Itoa(l.count)
}

// MySQL quotes with backticks and binds with "?".
type MySQL struct{}

func (MySQL) Name() string       { return "mysql" }
func (MySQL) DriverName() string { return "mysql" }

func (MySQL) QuoteIdentifier(name string) string {
	return quoteParts(name, func(p string) string {
		return "`" + strings.ReplaceAll(p, "`", "``") + "`"
	})
}

func (MySQL) Placeholder(int) string { return "?" }

func (MySQL) LimitClause(l Limit) string { return offsetCommaLimit(l) }

// Postgres quotes through lib/pq and binds with numbered placeholders.
type Postgres struct{}

func (Postgres) Name() string       { return "postgresql" }
func (Postgres) DriverName() string { return "postgres" }

func (Postgres) QuoteIdentifier(name string) string {
	return quoteParts(name, pq.QuoteIdentifier)
}

func (Postgres) Placeholder(index int) string { return "$" + strconv.Itoa(index) }

func (Postgres) LimitClause(l Limit) string {
	if l.ranged {
		return fmt.Sprintf("LIMIT %d OFFSET %d", l.count, l.offset)
	}
	return "LIMIT " + strconv.Itoa(l.count)
}

// SQLite quotes with double quotes and binds with "?".
type SQLite struct{}

func (SQLite) Name() string       { return "sqlite" }
func (SQLite) DriverName() string { return "sqlite3" }

func (SQLite) QuoteIdentifier(name string) string {
	return quoteParts(name, func(p string) string {
		return `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	})
}

func (SQLite) Placeholder(int) string { return "?" }

func (SQLite) LimitClause(l Limit) string { return offsetCommaLimit(l) }
