// Package log provides structured logging for lmfit on top of zerolog.
//
// The package keeps a single global logger configured by Setup. Errors built
// by pkg/errors carry cockroachdb stack traces; Err attaches both the error
// and its extracted stacktrace to an event so the fitting context survives
// into the log output.
package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// Setup configures the global logger with the given level and output.
// Unknown level strings fall back to info.
func Setup(level string, out io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stderr
	}
	logger = zerolog.New(out).With().Timestamp().Logger().Level(ToLevel(level))
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// With returns the global logger extended with a component field.
func With(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}

// ToLevel converts a level string to a zerolog level.
func ToLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
