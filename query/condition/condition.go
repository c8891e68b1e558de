// Package condition turns raw filter-map keys such as "age >" into escaped
// WHERE fragments.
package condition

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/satishbabariya/simplesql/query"
)

// DefaultOperator is used when a key names only a column.
const DefaultOperator = "="

// Placeholder is the positional marker emitted into fragments.
const Placeholder = "?"

var allowedOperators = map[string]bool{
	"=":  true,
	">":  true,
	"<":  true,
	"!=": true,
}

// AllowedOperators returns the operator allow-list in a stable order.
func AllowedOperators() []string {
	return []string{"=", ">", "<", "!="}
}

// IsAllowed reports whether op may appear in a filter key.
func IsAllowed(op string) bool {
	return allowedOperators[op]
}

// Quoter escapes identifiers for a SQL dialect.
type Quoter interface {
	QuoteIdentifier(name string) string
}

// Condition is one parsed filter key.
type Condition struct {
	Key         string // the raw key as supplied
	Column      string // unescaped column name
	Quoted      string // escaped column name
	Operator    string
	Placeholder string
}

// Fragment renders "<escaped-column> <operator> <placeholder>".
func (c Condition) Fragment() string {
	return c.Quoted + " " + c.Operator + " " + c.Placeholder
}

// WithPlaceholder returns a copy using a dialect-specific placeholder.
func (c Condition) WithPlaceholder(p string) Condition {
	c.Placeholder = p
	return c
}

// Parse splits a raw key into column and operator. Surrounding whitespace is
// trimmed, the column ends at the first whitespace, and a missing operator
// defaults to "=".
func Parse(key string) (column, operator string, err error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", "", &query.ConditionError{Key: key, Reason: "key is empty"}
	}

	raw, err := keyParser.ParseString("", trimmed)
	if err != nil {
		reason := err.Error()
		var perr participle.Error
		if errors.As(err, &perr) {
			reason = perr.Message()
		}
		_, rest, _ := strings.Cut(trimmed, " ")
		return "", "", &query.ConditionError{
			Key:      key,
			Operator: strings.TrimSpace(rest),
			Reason:   "is not allowed (" + reason + ")",
		}
	}

	operator = raw.Operator
	if operator == "" {
		operator = DefaultOperator
	}
	if !IsAllowed(operator) {
		return "", "", &query.ConditionError{
			Key:      key,
			Operator: operator,
			Reason:   "is not one of " + strings.Join(AllowedOperators(), ", "),
		}
	}

	return raw.Column, operator, nil
}

// Builder builds conditions for one dialect.
type Builder struct {
	quoter Quoter
}

// NewBuilder creates a condition builder
func NewBuilder(q Quoter) *Builder {
	return &Builder{quoter: q}
}

// Build parses key and escapes its column. The placeholder is "?".
func (b *Builder) Build(key string) (Condition, error) {
	column, operator, err := Parse(key)
	if err != nil {
		return Condition{}, err
	}
	return Condition{
		Key:         key,
		Column:      column,
		Quoted:      b.quoter.QuoteIdentifier(column),
		Operator:    operator,
		Placeholder: Placeholder,
	}, nil
}
