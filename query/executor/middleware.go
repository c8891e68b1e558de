package executor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event describes one statement passing through the executor.
type Event struct {
	SQL      string
	Types    string
	Args     []any
	Raw      bool
	Duration time.Duration
	Error    error
	Start    time.Time
	End      time.Time
}

// DebugText renders the event as "<sql> [types=<codes>] [args=<v1, v2>]".
func (e *Event) DebugText() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%s [types=%s] [args=%s]", e.SQL, e.Types, strings.Join(args, ", "))
}

// Middleware intercepts statement execution
type Middleware func(ctx context.Context, event *Event, next func() error) error

// run executes exec through the middleware chain
func run(ctx context.Context, middlewares []Middleware, event *Event, exec func() error) error {
	event.Start = time.Now()

	var next func() error
	index := 0

	next = func() error {
		if index >= len(middlewares) {
			err := exec()
			event.End = time.Now()
			event.Duration = event.End.Sub(event.Start)
			event.Error = err
			return err
		}

		middleware := middlewares[index]
		index++
		return middleware(ctx, event, next)
	}

	return next()
}

// LoggingMiddleware emits one record per executed statement, at info level on
// success and warn on failure.
func LoggingMiddleware(logger zerolog.Logger) Middleware {
	return func(ctx context.Context, event *Event, next func() error) error {
		err := next()

		var e *zerolog.Event
		if err != nil {
			e = logger.Warn().Err(err)
		} else {
			e = logger.Info()
		}
		e.Str("sql", event.SQL).
			Str("types", event.Types).
			Interface("args", event.Args).
			Bool("raw", event.Raw).
			Dur("duration", event.Duration).
			Msg("statement executed")
		return err
	}
}

// LastQuery holds the debug text of the most recent statement.
type LastQuery struct {
	mu   sync.Mutex
	text string
}

// Get returns the stored text, or "" if nothing ran yet.
func (l *LastQuery) Get() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

func (l *LastQuery) set(text string) {
	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
}

// StoreLastMiddleware records every statement into store before it runs, so a
// failed statement is retained as well.
func StoreLastMiddleware(store *LastQuery) Middleware {
	return func(ctx context.Context, event *Event, next func() error) error {
		store.set(event.DebugText())
		return next()
	}
}

// TimingMiddleware reports statement durations
func TimingMiddleware(onTiming func(sql string, duration time.Duration)) Middleware {
	return func(ctx context.Context, event *Event, next func() error) error {
		err := next()
		if onTiming != nil {
			onTiming(event.SQL, event.Duration)
		}
		return err
	}
}
