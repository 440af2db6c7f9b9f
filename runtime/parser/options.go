package parser

import (
	"log/slog"
	"time"

	"github.com/aledsdavies/jsfront/runtime/lexer"
)

// ParserOpt represents a parser configuration option
type ParserOpt func(*ParserConfig)

// TelemetryMode controls telemetry collection
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token and statement counts only
	TelemetryTiming                      // Counts + total parse time
)

// DebugLevel controls debug tracing
type DebugLevel int

const (
	DebugOff   DebugLevel = iota // No debug info (default)
	DebugPaths                   // Statement and expression entry tracing
)

// ParserConfig holds parser configuration
type ParserConfig struct {
	telemetry TelemetryMode
	debug     DebugLevel
	logger    *slog.Logger
	lexerOpts []lexer.LexerOpt
}

// WithTelemetryBasic enables basic telemetry (counts only)
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + parse time)
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths records a DebugEvent on entry to every grammar rule.
func WithDebugPaths() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugPaths
	}
}

// WithLogger sets the logger used by the parser and its lexer.
func WithLogger(logger *slog.Logger) ParserOpt {
	return func(c *ParserConfig) {
		c.logger = logger
	}
}

// WithLexerOptions forwards options to the underlying lexer.
func WithLexerOptions(opts ...lexer.LexerOpt) ParserOpt {
	return func(c *ParserConfig) {
		c.lexerOpts = append(c.lexerOpts, opts...)
	}
}

// ParseTelemetry holds parser metrics
type ParseTelemetry struct {
	TokenCount     int           // Tokens received from the lexer, EOF included
	StatementCount int           // Statements completed
	ErrorCount     int           // 0 or 1; parsing stops at the first error
	TotalTime      time.Duration // Wall time of Parse (TelemetryTiming only)
}

// DebugEvent holds debug tracing information
type DebugEvent struct {
	Timestamp time.Time
	Event     string         // "enter_statement", "enter_declaration", etc.
	Position  lexer.Position // Position of the lookahead token
	Context   string
}
