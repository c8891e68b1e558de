package query

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	driverErr := errors.New("near \"SELCT\": syntax error")

	tests := []struct {
		name    string
		err     error
		matches []error
		not     []error
		message string
	}{
		{
			name:    "missing settings",
			err:     &ConfigError{Missing: []string{"host", "schema"}},
			matches: []error{ErrConfiguration},
			not:     []error{ErrConnection},
			message: "configuration error: missing required settings: host, schema",
		},
		{
			name:    "bad setting",
			err:     &ConfigError{Reason: "unknown driver"},
			matches: []error{ErrConfiguration},
			message: "configuration error: unknown driver",
		},
		{
			name:    "connection",
			err:     &ConnectionError{Driver: "mysql", Err: driverErr},
			matches: []error{ErrConnection, driverErr},
		},
		{
			name:    "argument",
			err:     NewArgumentError("limit", "malformed limit %q", "x"),
			matches: []error{ErrInvalidArgument},
			not:     []error{ErrInvalidCondition},
			message: `limit: invalid argument: malformed limit "x"`,
		},
		{
			name:    "condition",
			err:     &ConditionError{Key: "age ~", Operator: "~", Reason: "is not allowed"},
			matches: []error{ErrInvalidCondition, ErrInvalidArgument},
			message: `invalid condition "age ~": operator "~" is not allowed`,
		},
		{
			name:    "prepare",
			err:     &StatementError{Phase: PhasePrepare, SQL: "SELCT 1", Err: driverErr},
			matches: []error{ErrPrepare, driverErr},
			not:     []error{ErrExecution},
			message: `could not prepare query, error: near "SELCT": syntax error for query: SELCT 1`,
		},
		{
			name:    "execute",
			err:     &StatementError{Phase: PhaseExecute, SQL: "SELECT 1", Err: driverErr},
			matches: []error{ErrExecution, driverErr},
			not:     []error{ErrPrepare},
		},
		{
			name:    "unsupported type",
			err:     &UnsupportedTypeError{TypeName: "bool"},
			matches: []error{ErrUnsupportedType},
			message: "unsupported type: bool",
		},
		{
			name:    "conversion",
			err:     &ConversionError{Column: "createdDate", Row: 2, Raw: "yesterday", Err: driverErr},
			matches: []error{ErrResultConversion, driverErr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("select people: %w", tt.err)
			for _, target := range tt.matches {
				assert.ErrorIs(t, wrapped, target)
			}
			for _, target := range tt.not {
				assert.NotErrorIs(t, wrapped, target)
			}
			if tt.message != "" {
				assert.Equal(t, tt.message, tt.err.Error())
			}
		})
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("update: %w", &StatementError{Phase: PhaseExecute, SQL: "UPDATE t SET a = ?", Err: errors.New("locked")})

	var stmtErr *StatementError
	if assert.True(t, errors.As(err, &stmtErr)) {
		assert.Equal(t, "UPDATE t SET a = ?", stmtErr.SQL)
		assert.Equal(t, PhaseExecute, stmtErr.Phase)
	}
}
