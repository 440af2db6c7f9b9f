package lexer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aledsdavies/jsfront/core/invariant"
)

// Lexer converts JavaScript source text into tokens, one per Advance call.
//
// The lexer owns its Cursor exclusively and keeps no lexeme state between
// calls: every scan builds its text in a local buffer that is handed to
// finish. It buffers no lookahead tokens; a parser that needs lookahead
// caches the tokens it has already received.
type Lexer struct {
	cur *Cursor

	lenientSeparators bool

	logger   *slog.Logger
	logDebug bool

	// Telemetry (nil when disabled)
	telemetryMode  TelemetryMode
	tokenTelemetry map[TokenType]*TokenTelemetry

	// Debug (nil when disabled)
	debugLevel  DebugLevel
	debugEvents []DebugEvent
}

// NewLexer creates a new lexer over input with optional configuration
func NewLexer(input string, opts ...LexerOpt) *Lexer {
	config := &LexerConfig{}
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = NewDefaultLogger()
	}

	l := &Lexer{
		cur:               NewCursor(input),
		lenientSeparators: config.lenientSeparators,
		logger:            logger,
		telemetryMode:     config.telemetry,
		debugLevel:        config.debug,
	}
	l.logDebug = config.debug > DebugOff || logger.Enabled(context.Background(), slog.LevelDebug)

	if config.telemetry > TelemetryOff {
		l.tokenTelemetry = make(map[TokenType]*TokenTelemetry)
	}
	if config.debug > DebugOff {
		l.debugEvents = make([]DebugEvent, 0, 256)
	}
	return l
}

// Init resets the lexer with new input, keeping its configuration.
func (l *Lexer) Init(input string) {
	l.cur.Reset(input)

	if l.tokenTelemetry != nil {
		for k := range l.tokenTelemetry {
			delete(l.tokenTelemetry, k)
		}
	}
	if l.debugEvents != nil {
		l.debugEvents = l.debugEvents[:0]
	}
}

// Position returns the cursor position of the next unread character.
func (l *Lexer) Position() Position {
	return l.cur.Position()
}

// TokenTelemetry returns a copy of the per-type telemetry, or nil when
// telemetry is off.
func (l *Lexer) TokenTelemetry() map[TokenType]*TokenTelemetry {
	if l.tokenTelemetry == nil {
		return nil
	}
	result := make(map[TokenType]*TokenTelemetry, len(l.tokenTelemetry))
	for k, v := range l.tokenTelemetry {
		c := *v
		result[k] = &c
	}
	return result
}

// DebugEvents returns a copy of the recorded debug events, or nil when
// debug tracing is off.
func (l *Lexer) DebugEvents() []DebugEvent {
	if l.debugEvents == nil {
		return nil
	}
	result := make([]DebugEvent, len(l.debugEvents))
	copy(result, l.debugEvents)
	return result
}

// Advance scans and returns the next token.
//
// At end of input it returns a token of type EOF and a nil error, and keeps
// doing so on every further call. A failure aborts only the current call;
// the cursor is left just past the offending character and no
// resynchronisation is attempted.
func (l *Lexer) Advance() (Token, error) {
	var start time.Time
	if l.telemetryMode >= TelemetryTiming {
		start = time.Now()
	}

	tok, err := l.lexToken()
	if err != nil {
		if l.logDebug {
			l.logger.Debug("[LEXER] Scan failed", "error", err)
		}
		return Token{}, err
	}
	invariant.Positive(tok.Position.Line, "token line")
	invariant.Positive(tok.Position.Column, "token column")

	if l.telemetryMode > TelemetryOff {
		var elapsed time.Duration
		if l.telemetryMode >= TelemetryTiming {
			elapsed = time.Since(start)
		}
		l.recordTokenTelemetry(tok.Type, elapsed)
	}
	return tok, nil
}

// Tokenize returns every remaining token up to and including EOF. On failure
// it returns the tokens scanned so far together with the error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Advance()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// lexToken runs the dispatch loop: skip trivia, then pick a scan routine
// from the class of the next character.
func (l *Lexer) lexToken() (Token, error) {
	for {
		ch, ok := l.cur.Peek()
		if !ok {
			l.trace("found_EOF", "end of input")
			return Token{Type: EOF, Position: l.cur.Position()}, nil
		}

		if IsWhitespace(ch) || IsLineTerminator(ch) {
			l.cur.Next()
			continue
		}

		if ch == '/' {
			next, _ := l.cur.PeekAt(1)
			if next == '/' || next == '*' {
				if err := l.skipComment(); err != nil {
					return Token{}, err
				}
				continue
			}
		}

		start := l.cur.Position()
		l.trace("dispatch", string(ch))

		if t, ok := SingleCharTokens[ch]; ok {
			l.cur.Next()
			return Token{Type: t, Text: string(ch), Position: start}, nil
		}

		switch {
		case ch == '\'' || ch == '"':
			l.cur.Next()
			return l.lexString(start, ch)
		case IsIdentifierStart(ch) || ch == '\\':
			return l.lexIdentifier(start)
		case ch == '0':
			return l.lexZeroPrefixed(start)
		case '1' <= ch && ch <= '9':
			return l.lexDecimal(start)
		case ch == '.':
			if next, ok := l.cur.PeekAt(1); ok && IsDecimalDigit(next) {
				return l.lexDecimal(start)
			}
			return l.lexPunctuator(start)
		default:
			if _, ok := Punctuators[string(ch)]; ok {
				return l.lexPunctuator(start)
			}
			l.cur.Next()
			return Token{}, newError(IllegalCharacter, string(ch), start)
		}
	}
}

// lexPunctuator matches the longest punctuator at the cursor.
func (l *Lexer) lexPunctuator(start Position) (Token, error) {
	var candidate [maxPunctuatorLen]rune
	n := 0
	for ; n < maxPunctuatorLen; n++ {
		ch, ok := l.cur.PeekAt(n)
		if !ok {
			break
		}
		candidate[n] = ch
	}

	for size := n; size > 0; size-- {
		text := string(candidate[:size])
		t, ok := Punctuators[text]
		if !ok {
			continue
		}
		// "?." followed by a digit is a conditional operator and a decimal
		if t == OPTIONAL && size < n && IsDecimalDigit(candidate[size]) {
			continue
		}
		for i := 0; i < size; i++ {
			l.cur.Next()
		}
		return Token{Type: t, Text: text, Position: start}, nil
	}

	ch, _ := l.cur.Next()
	return Token{}, newError(IllegalCharacter, string(ch), start)
}

// skipComment consumes a // or /* */ comment starting at the cursor.
func (l *Lexer) skipComment() error {
	start := l.cur.Position()
	l.cur.Next() // '/'
	kind, _ := l.cur.Next()

	if kind == '/' {
		l.trace("skip_line_comment", "")
		for {
			ch, ok := l.cur.Peek()
			if !ok || IsLineTerminator(ch) {
				return nil
			}
			l.cur.Next()
		}
	}

	l.trace("skip_block_comment", "")
	for {
		ch, ok := l.cur.Next()
		if !ok {
			return newError(UnterminatedComment, "/*", start)
		}
		if ch == '*' {
			if next, ok := l.cur.Peek(); ok && next == '/' {
				l.cur.Next()
				return nil
			}
		}
	}
}

// finish builds a token from a lexeme buffer. The buffer belongs to the scan
// that created it and is not reused afterwards.
func (l *Lexer) finish(t TokenType, buf *strings.Builder, start Position) Token {
	text := buf.String()
	l.trace("finish", text)
	return Token{Type: t, Text: text, Position: start}
}

func (l *Lexer) recordTokenTelemetry(tokenType TokenType, elapsed time.Duration) {
	telemetry, exists := l.tokenTelemetry[tokenType]
	if !exists {
		telemetry = &TokenTelemetry{
			Type:    tokenType,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		l.tokenTelemetry[tokenType] = telemetry
	}

	telemetry.Count++

	if l.telemetryMode >= TelemetryTiming {
		telemetry.TotalTime += elapsed
		telemetry.AvgTime = telemetry.TotalTime / time.Duration(telemetry.Count)
		if elapsed < telemetry.MinTime {
			telemetry.MinTime = elapsed
		}
		if elapsed > telemetry.MaxTime {
			telemetry.MaxTime = elapsed
		}
	}
}

// trace records a debug event and logs it when debugging is enabled.
func (l *Lexer) trace(event, detail string) {
	if !l.logDebug {
		return
	}
	pos := l.cur.Position()
	if l.debugEvents != nil {
		l.debugEvents = append(l.debugEvents, DebugEvent{
			Event:    event,
			Position: pos,
			Context:  detail,
		})
	}
	l.logger.Debug("[LEXER] "+event, "detail", detail, "line", pos.Line, "column", pos.Column)
}
