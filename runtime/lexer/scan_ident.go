package lexer

import "strings"

// lexIdentifier scans an identifier or keyword. Unicode escapes are decoded
// into the token text, and each decoded character must itself be valid at
// its place in the identifier.
func (l *Lexer) lexIdentifier(start Position) (Token, error) {
	l.trace("enter_lexIdentifier", "")
	var buf strings.Builder
	first := true

	for {
		ch, ok := l.cur.Peek()
		if !ok {
			break
		}

		if ch == '\\' {
			pos := l.cur.Position()
			l.cur.Next()
			r, err := l.scanIdentifierEscape(pos)
			if err != nil {
				return Token{}, err
			}
			valid := IsIdentifierContinue(r)
			if first {
				valid = IsIdentifierStart(r)
			}
			if !valid {
				return Token{}, newError(InvalidUnicodeSequence, string(r), pos)
			}
			buf.WriteRune(r)
			first = false
			continue
		}

		if first && !IsIdentifierStart(ch) || !first && !IsIdentifierContinue(ch) {
			break
		}
		l.cur.Next()
		buf.WriteRune(ch)
		first = false
	}

	return l.finish(LookupIdentifier(buf.String()), &buf, start), nil
}
