package lexer

import "unicode"

// ASCII character lookup tables for fast classification.
//
// Use inline bounds-checked lookups on the hot path:
//
//	if ch < 128 && isDigit[ch] { ... }
//
// Characters >= 128 fall back to the unicode package.
var (
	isWhitespaceASCII [128]bool // TAB, VT, FF, SPACE
	isDigit           [128]bool // 0-9
	isHexDigit        [128]bool // 0-9, a-f, A-F
	isIdentStart      [128]bool // a-z, A-Z, _, $
	isIdentPart       [128]bool // identStart + 0-9
	hexValue          [128]uint32
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		isWhitespaceASCII[i] = ch == '\t' || ch == '\v' || ch == '\f' || ch == ' '
		isDigit[i] = '0' <= ch && ch <= '9'
		isHexDigit[i] = isDigit[i] || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
		isIdentStart[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch == '$'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]

		switch {
		case isDigit[i]:
			hexValue[i] = uint32(ch - '0')
		case 'a' <= ch && ch <= 'f':
			hexValue[i] = uint32(ch-'a') + 10
		case 'A' <= ch && ch <= 'F':
			hexValue[i] = uint32(ch-'A') + 10
		}
	}
}

const (
	zwnj = '\u200C' // ZERO WIDTH NON-JOINER
	zwj  = '\u200D' // ZERO WIDTH JOINER
	nbsp = '\u00A0' // NO-BREAK SPACE
	bom  = '\uFEFF' // ZERO WIDTH NO-BREAK SPACE
	ls   = '\u2028' // LINE SEPARATOR
	ps   = '\u2029' // PARAGRAPH SEPARATOR
)

// IsWhitespace reports whether ch is ECMAScript white space: TAB, VT, FF,
// SPACE, NO-BREAK SPACE, ZWNBSP, or any Unicode space separator (Zs).
// Line terminators are not white space.
func IsWhitespace(ch rune) bool {
	if ch < 128 {
		return ch >= 0 && isWhitespaceASCII[ch]
	}
	return ch == nbsp || ch == bom || unicode.Is(unicode.Zs, ch)
}

// IsLineTerminator reports whether ch is LF, CR, LINE SEPARATOR or
// PARAGRAPH SEPARATOR.
func IsLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == ls || ch == ps
}

// IsIdentifierStart reports whether ch may begin an identifier: ASCII
// letters, '_' and '$', or a non-ASCII character with the XID_Start property.
func IsIdentifierStart(ch rune) bool {
	if ch < 128 {
		return ch >= 0 && isIdentStart[ch]
	}
	return isXIDStart(ch)
}

// IsIdentifierContinue reports whether ch may appear after the first
// character of an identifier: ASCII alphanumerics, '_' and '$', ZWNJ, ZWJ,
// or a non-ASCII character with the XID_Continue property.
func IsIdentifierContinue(ch rune) bool {
	if ch < 128 {
		return ch >= 0 && isIdentPart[ch]
	}
	if ch == zwnj || ch == zwj {
		return true
	}
	return isXIDContinue(ch)
}

// IsHexDigit reports whether ch is 0-9, a-f or A-F.
func IsHexDigit(ch rune) bool {
	return ch >= 0 && ch < 128 && isHexDigit[ch]
}

// IsDecimalDigit reports whether ch is an ASCII digit.
func IsDecimalDigit(ch rune) bool {
	return ch >= 0 && ch < 128 && isDigit[ch]
}

// isRadixDigit reports whether ch is a valid digit in radix 2, 8, 10 or 16.
func isRadixDigit(ch rune, radix int) bool {
	switch radix {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return '0' <= ch && ch <= '7'
	case 16:
		return IsHexDigit(ch)
	default:
		return IsDecimalDigit(ch)
	}
}

// digitValue returns the numeric value of a hex-or-lower digit.
func digitValue(ch rune) uint32 {
	if ch < 0 || ch >= 128 {
		return 0
	}
	return hexValue[ch]
}

// XID_Start is derived here as ID_Start (L, Nl, Other_ID_Start) minus
// Pattern_Syntax and Pattern_White_Space. XID_Continue adds Mn, Mc, Nd, Pc
// and Other_ID_Continue. The handful of NFKC-unstable characters where XID
// and ID differ are accepted.
func isXIDStart(ch rune) bool {
	if unicode.In(ch, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(ch, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

func isXIDContinue(ch rune) bool {
	if isXIDStart(ch) {
		return true
	}
	if unicode.In(ch, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}
