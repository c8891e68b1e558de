// Package value provides the closed set of values that can be bound to a
// statement parameter and resolves each one to its binding type code.
package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/satishbabariya/simplesql/query"
)

// TimeLayout is the canonical textual form of temporal values.
const TimeLayout = "2006-01-02 15:04:05"

// Kind is the variant held by a Value
type Kind uint8

const (
	KindInteger Kind = iota + 1
	KindFloat
	KindText
	KindTemporal
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindTemporal:
		return "temporal"
	default:
		return "invalid"
	}
}

// TypeCode is the parameter-binding tag of a value. Floats have their own
// code rather than sharing the integer one.
type TypeCode byte

const (
	TypeInteger TypeCode = 'i'
	TypeFloat   TypeCode = 'd'
	TypeString  TypeCode = 's'
)

func (c TypeCode) String() string {
	return string(rune(c))
}

// Value is a tagged union of Integer, Float, Text and Temporal.
// The zero Value is invalid and cannot be bound.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	t    time.Time
}

// Int creates an Integer value
func Int(v int64) Value { return Value{kind: KindInteger, i: v} }

// Float creates a Float value
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text creates a Text value
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Time creates a Temporal value
func Time(v time.Time) Value { return Value{kind: KindTemporal, t: v} }

// Kind returns the variant
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool { return v.kind != 0 }

// Int64 returns the integer payload; ok is false for other kinds.
func (v Value) Int64() (int64, bool) { return v.i, v.kind == KindInteger }

// Float64 returns the float payload; ok is false for other kinds.
func (v Value) Float64() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the text payload; ok is false for other kinds.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindText }

// Temporal returns the time payload; ok is false for other kinds.
func (v Value) Temporal() (time.Time, bool) { return v.t, v.kind == KindTemporal }

// In returns v with a temporal payload moved to loc, so it renders as that
// zone's wall clock. Other kinds are returned unchanged.
func (v Value) In(loc *time.Location) Value {
	if v.kind != KindTemporal || loc == nil {
		return v
	}
	v.t = v.t.In(loc)
	return v
}

func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindTemporal:
		return v.t.Format(TimeLayout)
	default:
		return "<invalid>"
	}
}

// Resolve maps a value to its binding type code. Temporal values bind as
// strings.
func Resolve(v Value) (TypeCode, error) {
	switch v.kind {
	case KindInteger:
		return TypeInteger, nil
	case KindFloat:
		return TypeFloat, nil
	case KindText, KindTemporal:
		return TypeString, nil
	default:
		return 0, query.NewArgumentError("resolve", "value has no variant")
	}
}

// Normalize converts v into the driver argument for code. Temporal values are
// rendered in TimeLayout; an integer may widen to a float code. Any other
// pairing is rejected.
func Normalize(v Value, code TypeCode) (any, error) {
	switch code {
	case TypeInteger:
		if v.kind == KindInteger {
			return v.i, nil
		}
	case TypeFloat:
		switch v.kind {
		case KindFloat:
			return v.f, nil
		case KindInteger:
			return float64(v.i), nil
		}
	case TypeString:
		switch v.kind {
		case KindText:
			return v.s, nil
		case KindTemporal:
			return v.t.Format(TimeLayout), nil
		}
	}
	return nil, query.NewArgumentError("normalize", "cannot bind %s value as type %q", v.kind, code)
}

// Bind resolves and normalizes v in one step.
func Bind(v Value) (TypeCode, any, error) {
	code, err := Resolve(v)
	if err != nil {
		return 0, nil, err
	}
	arg, err := Normalize(v, code)
	if err != nil {
		return 0, nil, err
	}
	return code, arg, nil
}

// Of converts a dynamically typed Go value. It is the only way to obtain an
// UnsupportedTypeError; callers holding typed data should use the
// constructors instead.
func Of(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		if !v.IsValid() {
			return Value{}, query.NewArgumentError("value", "value has no variant")
		}
		return v, nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return uintValue(uint64(v), "uint")
	case uint64:
		return uintValue(v, "uint64")
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return Text(v), nil
	case []byte:
		return Text(string(v)), nil
	case time.Time:
		return Time(v), nil
	case *time.Time:
		if v != nil {
			return Time(*v), nil
		}
	}
	return Value{}, &query.UnsupportedTypeError{TypeName: typeName(x)}
}

// MustOf is like Of but panics on error. Intended for literals in tests and
// static tables.
func MustOf(x any) Value {
	v, err := Of(x)
	if err != nil {
		panic(fmt.Sprintf("value.MustOf: %v", err))
	}
	return v
}

func uintValue(n uint64, name string) (Value, error) {
	if n > math.MaxInt64 {
		return Value{}, query.NewArgumentError("value", "%s %d overflows a 64-bit integer", name, n)
	}
	return Int(int64(n)), nil
}

func typeName(x any) string {
	if x == nil {
		return "nil"
	}
	return reflect.TypeOf(x).String()
}
