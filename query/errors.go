package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrConnection       = errors.New("connection error")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidCondition = errors.New("invalid condition")
	ErrPrepare          = errors.New("prepare failed")
	ErrExecution        = errors.New("execution failed")
	ErrUnsupportedType  = errors.New("unsupported type")
	ErrResultConversion = errors.New("result conversion failed")
)

// ConfigError reports required connection settings that are missing or
// hold a value the client cannot use.
type ConfigError struct {
	Missing []string
	Reason  string
}

func (e *ConfigError) Error() string {
	if len(e.Missing) == 0 {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: missing required settings: %s", strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// ConnectionError wraps a driver failure while establishing the connection.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error (%s): %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// ArgumentError is a caller-supplied shape violation.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Op == "" {
		return "invalid argument: " + e.Reason
	}
	return fmt.Sprintf("%s: invalid argument: %s", e.Op, e.Reason)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewArgumentError creates an ArgumentError
func NewArgumentError(op, format string, args ...any) *ArgumentError {
	return &ArgumentError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ConditionError is raised for a malformed filter key. It matches both
// ErrInvalidCondition and ErrInvalidArgument.
type ConditionError struct {
	Key      string
	Operator string
	Reason   string
}

func (e *ConditionError) Error() string {
	if e.Operator != "" {
		return fmt.Sprintf("invalid condition %q: operator %q %s", e.Key, e.Operator, e.Reason)
	}
	return fmt.Sprintf("invalid condition %q: %s", e.Key, e.Reason)
}

func (e *ConditionError) Is(target error) bool {
	return target == ErrInvalidCondition || target == ErrInvalidArgument
}

// Phase identifies where a statement failed.
type Phase string

const (
	PhasePrepare Phase = "prepare"
	PhaseExecute Phase = "execute"
)

// StatementError carries the SQL text and the native driver error of a failed
// prepare or execute.
type StatementError struct {
	Phase Phase
	SQL   string
	Err   error
}

func (e *StatementError) Error() string {
	msg := "could not prepare query"
	if e.Phase == PhaseExecute {
		msg = "error executing query"
	}
	return fmt.Sprintf("%s, error: %v for query: %s", msg, e.Err, e.SQL)
}

func (e *StatementError) Unwrap() error { return e.Err }

func (e *StatementError) Is(target error) bool {
	switch e.Phase {
	case PhasePrepare:
		return target == ErrPrepare
	case PhaseExecute:
		return target == ErrExecution
	}
	return false
}

// UnsupportedTypeError names a runtime type with no parameter binding.
type UnsupportedTypeError struct {
	TypeName string
}

func (e *UnsupportedTypeError) Error() string {
	return "unsupported type: " + e.TypeName
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ConversionError is raised when a fetched column value cannot be converted
// to its structured type. Row is zero-based.
type ConversionError struct {
	Column string
	Row    int
	Raw    string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert column %q in row %d (%q): %v", e.Column, e.Row, e.Raw, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool {
	return target == ErrResultConversion
}
