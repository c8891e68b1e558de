// Package debug provides the process-wide diagnostic logger using zerolog
package debug

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config contains logger configuration.
type Config struct {
	// Level sets the logging level (debug, info, warn, error).
	Level string
	// Pretty enables human-readable console output.
	Pretty bool
	// Output sets the output writer (defaults to os.Stderr).
	Output io.Writer
}

var (
	// logger is the global debug logger instance
	logger = zerolog.Nop()
	// enabled indicates if debug logging is enabled
	enabled bool
	// mu protects the logger and enabled flag
	mu sync.RWMutex
)

// Init initializes the debug logger.
// If enable is true, debug logs are written to os.Stderr in console form.
// If enable is false, all logs are discarded.
func Init(enable bool) {
	if !enable {
		mu.Lock()
		logger = zerolog.Nop()
		enabled = false
		mu.Unlock()
		return
	}
	Configure(Config{Level: "debug", Pretty: true, Output: os.Stderr})
}

// Configure replaces the global logger with one built from cfg and enables it.
func Configure(cfg Config) {
	l := New(cfg)
	mu.Lock()
	defer mu.Unlock()
	logger = l
	enabled = true
}

// New creates a zerolog logger with the given configuration.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.DebugLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Enabled returns whether debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Debug logs a debug message with key/value pairs
func Debug(msg string, args ...any) {
	l := Logger()
	l.Debug().Fields(args).Msg(msg)
}

// Info logs an info message
func Info(msg string, args ...any) {
	l := Logger()
	l.Info().Fields(args).Msg(msg)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	l := Logger()
	l.Warn().Fields(args).Msg(msg)
}

// Error logs an error message
func Error(msg string, args ...any) {
	l := Logger()
	l.Error().Fields(args).Msg(msg)
}

// With returns a child logger carrying a component field.
func With(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}

// Logger returns the underlying zerolog.Logger
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
