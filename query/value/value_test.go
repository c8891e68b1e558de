package value

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/simplesql/query"
)

func TestBind(t *testing.T) {
	created := time.Date(2001, 1, 1, 11, 11, 11, 0, time.UTC)

	tests := []struct {
		name     string
		value    Value
		wantCode TypeCode
		wantArg  any
	}{
		{"integer", Int(11), TypeInteger, int64(11)},
		{"float", Float(1.11), TypeFloat, 1.11},
		{"text", Text("fred"), TypeString, "fred"},
		{"temporal", Time(created), TypeString, "2001-01-01 11:11:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, arg, err := Bind(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantArg, arg)
		})
	}
}

func TestBind_Deterministic(t *testing.T) {
	v := Time(time.Date(2012, 12, 12, 12, 12, 12, 0, time.UTC))

	code1, arg1, err := Bind(v)
	require.NoError(t, err)
	code2, arg2, err := Bind(v)
	require.NoError(t, err)

	assert.Equal(t, code1, code2)
	assert.Equal(t, arg1, arg2)
}

func TestBind_ZeroValue(t *testing.T) {
	_, _, err := Bind(Value{})
	assert.ErrorIs(t, err, query.ErrInvalidArgument)
}

func TestNormalize_Mismatch(t *testing.T) {
	_, err := Normalize(Text("eleven"), TypeInteger)
	assert.ErrorIs(t, err, query.ErrInvalidArgument)

	arg, err := Normalize(Int(3), TypeFloat)
	require.NoError(t, err)
	assert.Equal(t, float64(3), arg)
}

func TestOf(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"int", 11, KindInteger},
		{"int64", int64(11), KindInteger},
		{"uint8", uint8(1), KindInteger},
		{"uint", uint(7), KindInteger},
		{"uint64", uint64(math.MaxInt64), KindInteger},
		{"float32", float32(1.5), KindFloat},
		{"float64", 1.11, KindFloat},
		{"string", "fred", KindText},
		{"bytes", []byte("fred"), KindText},
		{"time", now, KindTemporal},
		{"time pointer", &now, KindTemporal},
		{"value", Int(4), KindInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Of(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Kind())
		})
	}
}

func TestOf_Unsupported(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		typeName string
	}{
		{"struct", struct{ A int }{1}, "struct { A int }"},
		{"map", map[string]int{}, "map[string]int"},
		{"bool", true, "bool"},
		{"nil", nil, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Of(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, query.ErrUnsupportedType)

			var typed *query.UnsupportedTypeError
			require.True(t, errors.As(err, &typed))
			assert.Equal(t, tt.typeName, typed.TypeName)
		})
	}
}

func TestOf_UnsignedOverflow(t *testing.T) {
	_, err := Of(uint64(math.MaxInt64) + 1)
	assert.ErrorIs(t, err, query.ErrInvalidArgument)
	assert.NotErrorIs(t, err, query.ErrUnsupportedType)
}

func TestValue_In(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	at := time.Date(2023, 11, 5, 14, 30, 0, 0, cet)

	moved := Time(at).In(time.UTC)
	ts, ok := moved.Temporal()
	require.True(t, ok)
	assert.True(t, at.Equal(ts))
	assert.Equal(t, "2023-11-05 13:30:00", moved.String())

	assert.Equal(t, Int(3), Int(3).In(cet))
	assert.Equal(t, "2023-11-05 14:30:00", Time(at).In(nil).String())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "11", Int(11).String())
	assert.Equal(t, "1.11", Float(1.11).String())
	assert.Equal(t, "fred", Text("fred").String())
	assert.Equal(t, "1990-04-21 21:21:21", Time(time.Date(1990, 4, 21, 21, 21, 21, 0, time.UTC)).String())
	assert.Equal(t, "<invalid>", Value{}.String())
}
