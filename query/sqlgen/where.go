package sqlgen

import (
	"strconv"
	"strings"

	"github.com/satishbabariya/simplesql/query"
	"github.com/satishbabariya/simplesql/query/value"
)

// Field is a single key/value pair of a filter map or a data map.
// For filters the key is a raw condition such as "age >" or "firstname".
type Field struct {
	Key   string
	Value value.Value
}

// Fields is an ordered mapping of key to value. WHERE fragments, SET
// assignments and INSERT columns follow its order exactly.
type Fields []Field

// Where starts a filter map with a single entry.
func Where(key string, v value.Value) Fields {
	return Fields{{Key: key, Value: v}}
}

// Data starts a data map with a single entry.
func Data(column string, v value.Value) Fields {
	return Fields{{Key: column, Value: v}}
}

// And appends an entry
func (f Fields) And(key string, v value.Value) Fields {
	return append(f, Field{Key: key, Value: v})
}

// Set appends an entry; it reads better than And for data maps.
func (f Fields) Set(column string, v value.Value) Fields {
	return f.And(column, v)
}

// Keys returns the keys in order
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, field := range f {
		keys[i] = field.Key
	}
	return keys
}

// IsEmpty returns true if there are no entries
func (f Fields) IsEmpty() bool {
	return len(f) == 0
}

// Sort directions
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// Sort is one ORDER BY entry
type Sort struct {
	Column    string
	Direction string
}

// Order is an ordered list of sort keys. Keys are emitted in insertion order,
// which decides tie-breaking between them.
type Order []Sort

// By starts an order with a single key.
func By(column, direction string) Order {
	return Order{{Column: column, Direction: direction}}
}

// Then appends a tie-break key
func (o Order) Then(column, direction string) Order {
	return append(o, Sort{Column: column, Direction: direction})
}

// normalizeDirection trims and upper-cases d and checks it against ASC/DESC.
func normalizeDirection(column, d string) (string, error) {
	dir := strings.ToUpper(strings.TrimSpace(d))
	if dir != ASC && dir != DESC {
		return "", query.NewArgumentError("order", "invalid sort direction %q for column %q; expected ASC or DESC", d, column)
	}
	return dir, nil
}

// Limit is either a row cap or an (offset, count) window. The zero value
// means no limit.
type Limit struct {
	offset int
	count  int
	ranged bool
	set    bool
}

// NoLimit is the absent limit.
var NoLimit = Limit{}

// LimitTo caps the result at n rows.
func LimitTo(n int) Limit {
	return Limit{count: n, set: true}
}

// LimitRange skips offset rows and returns at most count rows.
func LimitRange(offset, count int) Limit {
	return Limit{offset: offset, count: count, ranged: true, set: true}
}

// IsSet reports whether a limit was given.
func (l Limit) IsSet() bool { return l.set }

// Offset returns the number of skipped rows
func (l Limit) Offset() int { return l.offset }

// Count returns the row cap
func (l Limit) Count() int { return l.count }

func (l Limit) validate() error {
	if !l.set {
		return nil
	}
	if l.count < 0 || l.offset < 0 {
		return query.NewArgumentError("limit", "limit values must be non-negative, got %s", l)
	}
	return nil
}

func (l Limit) String() string {
	switch {
	case !l.set:
		return "none"
	case l.ranged:
		return strconv.Itoa(l.offset) + "," + strconv.Itoa(l.count)
	default:
		return strconv.Itoa(l.count)
	}
}

// ParseLimit reads "n" or "offset,count". Empty input is NoLimit; any other
// shape is an invalid argument.
func ParseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoLimit, nil
	}

	parts := strings.Split(s, ",")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return NoLimit, query.NewArgumentError("limit", "malformed limit %q", s)
		}
		nums[i] = n
	}

	var l Limit
	switch len(nums) {
	case 1:
		l = LimitTo(nums[0])
	case 2:
		l = LimitRange(nums[0], nums[1])
	default:
		return NoLimit, query.NewArgumentError("limit", "malformed limit %q; expected n or offset,count", s)
	}
	if err := l.validate(); err != nil {
		return NoLimit, err
	}
	return l, nil
}
