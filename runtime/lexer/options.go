package lexer

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// LexerOpt represents a lexer configuration option
type LexerOpt func(*LexerConfig)

// TelemetryMode controls telemetry collection
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token counts only
	TelemetryTiming                      // Token counts + timing per type
)

// DebugLevel controls debug tracing
type DebugLevel int

const (
	DebugOff   DebugLevel = iota // No debug info (default)
	DebugPaths                   // Dispatch decisions and scan entry points
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	telemetry         TelemetryMode
	debug             DebugLevel
	logger            *slog.Logger
	lenientSeparators bool
}

// WithTelemetryBasic enables basic telemetry (token counts only)
func WithTelemetryBasic() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + timing per type)
func WithTelemetryTiming() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths records a DebugEvent for every dispatch decision and logs
// it at debug level.
func WithDebugPaths() LexerOpt {
	return func(c *LexerConfig) {
		c.debug = DebugPaths
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(logger *slog.Logger) LexerOpt {
	return func(c *LexerConfig) {
		c.logger = logger
	}
}

// WithLenientSeparators accepts '_' anywhere inside a numeric literal
// without checking that it sits between two digits.
func WithLenientSeparators() LexerOpt {
	return func(c *LexerConfig) {
		c.lenientSeparators = true
	}
}

// DebugEnvVar enables debug-level lexer logging when set to any value.
const DebugEnvVar = "JSFRONT_DEBUG_LEXER"

// NewDefaultLogger builds the lexer's stderr logger. The level is Info unless
// JSFRONT_DEBUG_LEXER is set.
func NewDefaultLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv(DebugEnvVar) != "" {
		logLevel = slog.LevelDebug
	}
	return NewLogger(logLevel)
}

// NewLogger builds a text logger on stderr without timestamps or levels,
// which keeps traces diffable between runs.
func NewLogger(level slog.Level) *slog.Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo is NewLogger writing to w.
func NewLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// TokenTelemetry holds per-token type telemetry
type TokenTelemetry struct {
	Type      TokenType
	Count     int
	TotalTime time.Duration
	AvgTime   time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// DebugEvent holds debug tracing information
type DebugEvent struct {
	Event    string   // "dispatch", "enter_lexString", "finish"
	Position Position // Cursor position when recorded
	Context  string   // Current character, lexeme, etc.
}
