package lexer

import "fmt"

// ErrorKind enumerates lexical failure categories.
type ErrorKind int

const (
	InvalidUnicodeSequence    ErrorKind = iota // malformed \u escape, or escape decoding to a non-identifier char
	UnicodeOverflow                            // escaped code point above U+10FFFF
	UnicodeSurrogateCodePoint                  // escaped code point in U+D800..U+DFFF
	InvalidHexEscape                           // \x not followed by two hex digits
	InvalidNumber                              // empty radix body, misplaced separator, unparsable literal
	UnexpectedToken                            // character that may not follow the previous lexeme
	UnterminatedString                         // end of input or raw line break before the closing quote
	UnterminatedComment                        // end of input before */
	IllegalCharacter                           // character that starts no token
)

var errorKindNames = map[ErrorKind]string{
	InvalidUnicodeSequence:    "invalid unicode escape sequence",
	UnicodeOverflow:           "unicode code point out of range",
	UnicodeSurrogateCodePoint: "unicode surrogate code point",
	InvalidHexEscape:          "invalid hexadecimal escape sequence",
	InvalidNumber:             "invalid numeric literal",
	UnexpectedToken:           "unexpected token",
	UnterminatedString:        "unterminated string literal",
	UnterminatedComment:       "unterminated block comment",
	IllegalCharacter:          "illegal character",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// LexError is the single error type returned by the lexer. Detail names the
// offending character or lexeme when there is one.
type LexError struct {
	Kind     ErrorKind
	Detail   string
	Position Position
}

// Error implements the error interface
func (e *LexError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s %q", e.Position, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Position, e.Kind)
}

// Is matches any *LexError of the same kind, so callers can write
// errors.Is(err, lexer.ErrUnterminatedString).
func (e *LexError) Is(target error) bool {
	t, ok := target.(*LexError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons. They carry no position.
var (
	ErrInvalidUnicodeSequence    = &LexError{Kind: InvalidUnicodeSequence}
	ErrUnicodeOverflow           = &LexError{Kind: UnicodeOverflow}
	ErrUnicodeSurrogateCodePoint = &LexError{Kind: UnicodeSurrogateCodePoint}
	ErrInvalidHexEscape          = &LexError{Kind: InvalidHexEscape}
	ErrInvalidNumber             = &LexError{Kind: InvalidNumber}
	ErrUnexpectedToken           = &LexError{Kind: UnexpectedToken}
	ErrUnterminatedString        = &LexError{Kind: UnterminatedString}
	ErrUnterminatedComment       = &LexError{Kind: UnterminatedComment}
	ErrIllegalCharacter          = &LexError{Kind: IllegalCharacter}
)

func newError(kind ErrorKind, detail string, pos Position) *LexError {
	return &LexError{Kind: kind, Detail: detail, Position: pos}
}

// describeRune renders ch for an error detail, using "EOF" at end of input.
func describeRune(ch rune, ok bool) string {
	if !ok {
		return "EOF"
	}
	return string(ch)
}
