// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	// Set global log level
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	// Configure output
	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output}
	}

	// Create logger with timestamp
	logger := zerolog.New(output).With().Timestamp().Logger()

	// Set as global logger
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LevelForSilent maps the scraper's silent flag to a log level: silent
// runs report warnings and errors only, verbose runs include per-fetch
// debug output.
func LevelForSilent(silent bool) LogLevel {
	if silent {
		return LevelWarn
	}
	return LevelDebug
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Per-identifier fetch results (identifier, duration)
//   - Cache operations (hit/miss, key, TTL)
//   - Shard assignment and sizes
//
// Info: Normal operation events
//   - Run start/completion with result counts
//   - Sink writes (file path, row count)
//   - Server startup/shutdown
//
// Warn: Warning conditions that don't prevent operation
//   - Transient fetch failures (timeout, transport error)
//   - Cache errors (fallback to direct fetch)
//   - Shards completing with missing identifiers
//
// Error: Error conditions requiring attention
//   - Failure budget exhaustion (shard halted)
//   - Fatal payload decode failures
//   - Configuration errors
//
// Context Fields:
//   - run_id: UUID of the scrape run
//   - keyword: Run name tag
//   - identifier: Fetch target key
//   - url: Target URL
//   - shard: Shard index
//   - failures: Transient failures recorded so far
//   - cache_hit: Boolean indicating cache hit
//   - duration: Fetch duration
