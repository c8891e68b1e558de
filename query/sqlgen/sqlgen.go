// Package sqlgen generates parameterized SELECT, INSERT and UPDATE
// statements for the supported providers.
package sqlgen

import (
	"strings"
	"time"

	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/condition"
	"github.com/satishbabariya/simplesql/query/value"
)

// Kind is the statement type
type Kind string

const (
	KindSelect Kind = "SELECT"
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
)

// Binding is the ordered parameter list of a statement. The three slices
// always have the same length and are consumed positionally.
type Binding struct {
	Conditions []string
	Types      []value.TypeCode
	Values     []any
}

func (b *Binding) add(fragment string, v value.Value) error {
	code, arg, err := value.Bind(v)
	if err != nil {
		return err
	}
	b.Conditions = append(b.Conditions, fragment)
	b.Types = append(b.Types, code)
	b.Values = append(b.Values, arg)
	return nil
}

// Len returns the number of bound parameters
func (b Binding) Len() int {
	return len(b.Values)
}

// TypeList returns the type codes as one string, e.g. "isd".
func (b Binding) TypeList() string {
	var sb strings.Builder
	for _, c := range b.Types {
		sb.WriteByte(byte(c))
	}
	return sb.String()
}

// Statement is generated SQL plus its binding.
type Statement struct {
	Kind    Kind
	SQL     string
	Binding Binding
}

// Args returns the bound values in placeholder order.
func (s *Statement) Args() []any {
	return s.Binding.Values
}

// SelectQuery describes a SELECT.
type SelectQuery struct {
	Columns []string
	Table   string
	Where   Fields
	Order   Order
	Limit   Limit
}

// Generator assembles statements for one dialect.
type Generator struct {
	dialect    Dialect
	conditions *condition.Builder
	location   *time.Location
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithLocation sets the zone temporal values are written in. It must match
// the zone they are read back in. Default UTC.
func WithLocation(loc *time.Location) GeneratorOption {
	return func(g *Generator) {
		if loc != nil {
			g.location = loc
		}
	}
}

// NewGenerator creates a generator for d
func NewGenerator(d Dialect, opts ...GeneratorOption) *Generator {
	g := &Generator{
		dialect:    d,
		conditions: condition.NewBuilder(d),
		location:   time.UTC,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dialect returns the generator's dialect
func (g *Generator) Dialect() Dialect {
	return g.dialect
}

// Select builds SELECT <cols> FROM <table> [WHERE] [ORDER BY] [LIMIT].
func (g *Generator) Select(q SelectQuery) (*Statement, error) {
	if err := checkTable("select", q.Table); err != nil {
		return nil, err
	}
	cols, err := g.columnList("select", q.Columns)
	if err != nil {
		return nil, err
	}

	var binding Binding
	parts := []string{"SELECT " + cols, "FROM " + g.dialect.QuoteIdentifier(q.Table)}

	if !q.Where.IsEmpty() {
		where, err := g.where(q.Where, &binding)
		if err != nil {
			return nil, err
		}
		parts = append(parts, where)
	}

	if len(q.Order) > 0 {
		orderParts := make([]string, len(q.Order))
		for i, s := range q.Order {
			if err := checkColumn("order", s.Column); err != nil {
				return nil, err
			}
			dir, err := normalizeDirection(s.Column, s.Direction)
			if err != nil {
				return nil, err
			}
			orderParts[i] = g.dialect.QuoteIdentifier(s.Column) + " " + dir
		}
		parts = append(parts, "ORDER BY "+strings.Join(orderParts, ", "))
	}

	if q.Limit.IsSet() {
		if err := q.Limit.validate(); err != nil {
			return nil, err
		}
		parts = append(parts, g.dialect.LimitClause(q.Limit))
	}

	return &Statement{Kind: KindSelect, SQL: strings.Join(parts, " "), Binding: binding}, nil
}

// Insert builds INSERT INTO <table> (<cols>) VALUES (<placeholders>).
func (g *Generator) Insert(table string, data Fields) (*Statement, error) {
	if err := checkTable("insert", table); err != nil {
		return nil, err
	}
	if data.IsEmpty() {
		return nil, query.NewArgumentError("insert", "data must not be empty")
	}

	var binding Binding
	cols := make([]string, len(data))
	marks := make([]string, len(data))
	for i, f := range data {
		if err := checkColumn("insert", f.Key); err != nil {
			return nil, err
		}
		cols[i] = g.dialect.QuoteIdentifier(f.Key)
		marks[i] = g.dialect.Placeholder(binding.Len() + 1)
		if err := binding.add(cols[i], f.Value.In(g.location)); err != nil {
			return nil, err
		}
	}

	sql := "INSERT INTO " + g.dialect.QuoteIdentifier(table) +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	return &Statement{Kind: KindInsert, SQL: sql, Binding: binding}, nil
}

// Update builds UPDATE <table> SET <assignments> WHERE <conditions>. Both
// data and where must be non-empty; there is no unconstrained update.
func (g *Generator) Update(table string, data, where Fields) (*Statement, error) {
	if err := checkTable("update", table); err != nil {
		return nil, err
	}
	if data.IsEmpty() {
		return nil, query.NewArgumentError("update", "data must not be empty")
	}
	if where.IsEmpty() {
		return nil, query.NewArgumentError("update", "where must not be empty")
	}

	var binding Binding
	sets := make([]string, len(data))
	for i, f := range data {
		if err := checkColumn("update", f.Key); err != nil {
			return nil, err
		}
		sets[i] = g.dialect.QuoteIdentifier(f.Key) + " = " + g.dialect.Placeholder(binding.Len()+1)
		if err := binding.add(sets[i], f.Value.In(g.location)); err != nil {
			return nil, err
		}
	}

	whereSQL, err := g.where(where, &binding)
	if err != nil {
		return nil, err
	}

	sql := "UPDATE " + g.dialect.QuoteIdentifier(table) + " SET " + strings.Join(sets, ", ") + " " + whereSQL
	return &Statement{Kind: KindUpdate, SQL: sql, Binding: binding}, nil
}

// where renders "WHERE a AND b ..." and appends to binding in filter order.
func (g *Generator) where(filter Fields, binding *Binding) (string, error) {
	fragments := make([]string, len(filter))
	for i, f := range filter {
		c, err := g.conditions.Build(f.Key)
		if err != nil {
			return "", err
		}
		if err := checkColumn("where", c.Column); err != nil {
			return "", err
		}
		c = c.WithPlaceholder(g.dialect.Placeholder(binding.Len() + 1))
		fragments[i] = c.Fragment()
		if err := binding.add(fragments[i], f.Value.In(g.location)); err != nil {
			return "", err
		}
	}
	return "WHERE " + strings.Join(fragments, " AND "), nil
}

func (g *Generator) columnList(op string, columns []string) (string, error) {
	if len(columns) == 0 {
		return "", query.NewArgumentError(op, "at least one column is required")
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		if err := checkColumn(op, c); err != nil {
			return "", err
		}
		quoted[i] = g.dialect.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", "), nil
}

func checkTable(op, table string) error {
	if strings.TrimSpace(table) == "" {
		return query.NewArgumentError(op, "table name is required")
	}
	return nil
}

// checkColumn rejects empty names and any wildcard, including "t.*".
func checkColumn(op, column string) error {
	c := strings.TrimSpace(column)
	if c == "" {
		return query.NewArgumentError(op, "column name is empty")
	}
	if strings.Contains(c, "*") {
		return query.NewArgumentError(op, "wildcard column %q is not allowed; list columns explicitly", column)
	}
	return nil
}
