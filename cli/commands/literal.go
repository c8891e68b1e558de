package commands

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/sqlgen"
	"github.com/satishbabariya/simplesql/query/value"
)

var (
	// Leading zeros keep a literal textual, e.g. postal codes.
	intLiteral   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	floatLiteral = regexp.MustCompile(`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// parseLiteral turns a command-line argument into a Value. Quoted input is
// always text.
func parseLiteral(s string, loc *time.Location) (value.Value, error) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return value.Text(s[1 : len(s)-1]), nil
	}

	switch {
	case intLiteral.MatchString(s):
		n, err := cast.ToInt64E(s)
		if err != nil {
			return value.Value{}, query.NewArgumentError("literal", "integer %q out of range", s)
		}
		return value.Int(n), nil
	case floatLiteral.MatchString(s):
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return value.Value{}, query.NewArgumentError("literal", "malformed number %q", s)
		}
		return value.Float(f), nil
	}

	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(value.TimeLayout, s, loc); err == nil {
		return value.Time(t), nil
	}
	return value.Text(s), nil
}

// parseFields reads "key<sep>value" pairs in order. The key may carry an
// operator, so only the first separator splits.
func parseFields(pairs []string, sep string, loc *time.Location) (sqlgen.Fields, error) {
	var fields sqlgen.Fields
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, sep)
		if !ok || strings.TrimSpace(key) == "" {
			return nil, query.NewArgumentError("fields", "expected key%svalue, got %q", sep, p)
		}
		v, err := parseLiteral(raw, loc)
		if err != nil {
			return nil, err
		}
		fields = fields.And(strings.TrimSpace(key), v)
	}
	return fields, nil
}

// parseOrder reads "column" or "column:DIR" entries. Directions are checked
// when the statement is generated.
func parseOrder(specs []string) sqlgen.Order {
	var order sqlgen.Order
	for _, s := range specs {
		column, dir, ok := strings.Cut(s, ":")
		if !ok {
			dir = sqlgen.ASC
		}
		order = order.Then(strings.TrimSpace(column), dir)
	}
	return order
}

// describeFields renders fields for confirmation prompts.
func describeFields(fields sqlgen.Fields) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s %s", f.Key, f.Value)
	}
	return strings.Join(parts, ", ")
}
