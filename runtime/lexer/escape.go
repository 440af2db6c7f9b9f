package lexer

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/jsfront/core/invariant"
)

const (
	maxCodePoint     = 0x10FFFF
	surrogateMin     = 0xD800
	surrogateMax     = 0xDFFF
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
)

// CodePointToRune validates an escaped code point. It is shared by string
// and identifier escapes.
func CodePointToRune(v uint32) (rune, ErrorKind, bool) {
	switch {
	case v > maxCodePoint:
		return 0, UnicodeOverflow, false
	case v >= surrogateMin && v <= surrogateMax:
		return 0, UnicodeSurrogateCodePoint, false
	default:
		return rune(v), 0, true
	}
}

func (l *Lexer) codePoint(v uint32, pos Position) (rune, error) {
	r, kind, ok := CodePointToRune(v)
	if !ok {
		return 0, newError(kind, fmt.Sprintf("U+%04X", v), pos)
	}
	return r, nil
}

// scanEscape decodes one escape sequence inside a string literal. The
// backslash at pos has already been consumed.
func (l *Lexer) scanEscape(buf *strings.Builder, pos Position) error {
	ch, ok := l.cur.Next()
	if !ok {
		return newError(UnterminatedString, "\\", pos)
	}

	switch ch {
	case 'b':
		buf.WriteRune('\b')
	case 't':
		buf.WriteRune('\t')
	case 'n':
		buf.WriteRune('\n')
	case 'v':
		buf.WriteRune('\v')
	case 'f':
		buf.WriteRune('\f')
	case 'r':
		buf.WriteRune('\r')
	case '\r':
		// line continuation; CR LF is one break
		if next, ok := l.cur.Peek(); ok && next == '\n' {
			l.cur.Next()
		}
	case '\n', ls, ps:
		// line continuation
	case 'x':
		v, err := l.scanFixedHex(2, InvalidHexEscape)
		if err != nil {
			return err
		}
		buf.WriteRune(rune(v))
	case '0', '1', '2', '3', '4', '5', '6', '7':
		buf.WriteRune(l.scanLegacyOctal(ch))
	case 'u':
		r, err := l.scanStringUnicodeEscape(pos)
		if err != nil {
			return err
		}
		buf.WriteRune(r)
	default:
		// identity escape: quotes, backslash, and anything else
		buf.WriteRune(ch)
	}
	return nil
}

// scanLegacyOctal reads up to three octal digits in total, stopping early
// before a digit that would push the value above 255.
func (l *Lexer) scanLegacyOctal(first rune) rune {
	v := uint32(first - '0')
	for count := 1; count < 3; count++ {
		ch, ok := l.cur.Peek()
		if !ok || ch < '0' || ch > '7' {
			break
		}
		next := v*8 + uint32(ch-'0')
		if next > 0xFF {
			break
		}
		l.cur.Next()
		v = next
	}
	return rune(v)
}

// scanStringUnicodeEscape decodes \u inside a string. A fixed-width high
// surrogate immediately followed by a fixed-width low surrogate escape
// combines into one code point; any other surrogate fails.
func (l *Lexer) scanStringUnicodeEscape(pos Position) (rune, error) {
	v, braced, err := l.scanUnicodeEscapeValue()
	if err != nil {
		return 0, err
	}
	if !braced && v >= surrogateMin && v <= highSurrogateMax {
		if low, ok := l.peekLowSurrogateEscape(); ok {
			for i := 0; i < 6; i++ {
				l.cur.Next()
			}
			r := (v-surrogateMin)<<10 + (low - lowSurrogateMin) + 0x10000
			invariant.InRange(int(r), 0x10000, maxCodePoint, "combined surrogate pair")
			return rune(r), nil
		}
	}
	return l.codePoint(v, pos)
}

// peekLowSurrogateEscape looks for \uDC00-\uDFFF at the cursor without
// consuming it.
func (l *Lexer) peekLowSurrogateEscape() (uint32, bool) {
	if ch, ok := l.cur.PeekAt(0); !ok || ch != '\\' {
		return 0, false
	}
	if ch, ok := l.cur.PeekAt(1); !ok || ch != 'u' {
		return 0, false
	}
	var v uint32
	for i := 2; i < 6; i++ {
		ch, ok := l.cur.PeekAt(i)
		if !ok || !IsHexDigit(ch) {
			return 0, false
		}
		v = v<<4 | digitValue(ch)
	}
	if v < lowSurrogateMin || v > surrogateMax {
		return 0, false
	}
	return v, true
}

// scanIdentifierEscape decodes an escape inside an identifier; only the \u
// forms are allowed there. The backslash at pos has already been consumed.
func (l *Lexer) scanIdentifierEscape(pos Position) (rune, error) {
	ch, ok := l.cur.Next()
	if !ok || ch != 'u' {
		return 0, newError(InvalidUnicodeSequence, "\\"+describeRune(ch, ok), pos)
	}
	v, _, err := l.scanUnicodeEscapeValue()
	if err != nil {
		return 0, err
	}
	return l.codePoint(v, pos)
}

// scanUnicodeEscapeValue reads the part after "\u": either four hex digits
// or a braced hex sequence. The value is not yet range-checked, except that
// a braced value above U+10FFFF is reported as overflow.
func (l *Lexer) scanUnicodeEscapeValue() (uint32, bool, error) {
	if ch, ok := l.cur.Peek(); ok && ch == '{' {
		l.cur.Next()
		v, err := l.scanBracedCodePoint()
		return v, true, err
	}
	v, err := l.scanFixedHex(4, InvalidUnicodeSequence)
	return v, false, err
}

// scanBracedCodePoint reads hex digits up to and including the closing
// brace. The opening brace has been consumed.
func (l *Lexer) scanBracedCodePoint() (uint32, error) {
	start := l.cur.Position()
	var v uint32
	digits := 0
	overflow := false
	for {
		pos := l.cur.Position()
		ch, ok := l.cur.Next()
		if !ok {
			return 0, newError(InvalidUnicodeSequence, "EOF", pos)
		}
		if ch == '}' {
			break
		}
		if !IsHexDigit(ch) {
			return 0, newError(InvalidUnicodeSequence, string(ch), pos)
		}
		digits++
		if !overflow {
			v = v<<4 | digitValue(ch)
			overflow = v > maxCodePoint
		}
	}
	if digits == 0 {
		return 0, newError(InvalidUnicodeSequence, "{}", start)
	}
	if overflow {
		return 0, newError(UnicodeOverflow, "code point above U+10FFFF", start)
	}
	return v, nil
}

// scanFixedHex reads exactly n hex digits.
func (l *Lexer) scanFixedHex(n int, kind ErrorKind) (uint32, error) {
	var v uint32
	for i := 0; i < n; i++ {
		pos := l.cur.Position()
		ch, ok := l.cur.Peek()
		if !ok || !IsHexDigit(ch) {
			return 0, newError(kind, describeRune(ch, ok), pos)
		}
		l.cur.Next()
		v = v<<4 | digitValue(ch)
	}
	return v, nil
}
