package lexer

import "strings"

// lexString scans a string literal whose opening quote has been consumed.
// The token text is the decoded body without quotes.
func (l *Lexer) lexString(start Position, quote rune) (Token, error) {
	l.trace("enter_lexString", string(quote))
	var buf strings.Builder

	for {
		pos := l.cur.Position()
		ch, ok := l.cur.Next()
		if !ok {
			return Token{}, newError(UnterminatedString, string(quote), start)
		}

		switch {
		case ch == quote:
			return l.finish(STRING_LITERAL, &buf, start), nil
		case ch == '\\':
			if err := l.scanEscape(&buf, pos); err != nil {
				return Token{}, err
			}
		case IsLineTerminator(ch):
			return Token{}, newError(UnterminatedString, string(quote), start)
		default:
			buf.WriteRune(ch)
		}
	}
}
