package lexer

import "strings"

// numberScan accumulates one numeric literal. raw is the lexeme exactly as
// written (the token text); digits drops the radix prefix and separators and
// is what the numeric parser sees.
type numberScan struct {
	start  Position
	raw    strings.Builder
	digits strings.Builder
}

func (s *numberScan) write(ch rune) {
	s.raw.WriteRune(ch)
	s.digits.WriteRune(ch)
}

// lexZeroPrefixed dispatches on the character after a leading '0'.
func (l *Lexer) lexZeroPrefixed(start Position) (Token, error) {
	l.trace("enter_lexZeroPrefixed", "")
	s := &numberScan{start: start}
	l.cur.Next()
	s.write('0')

	next, ok := l.cur.Peek()
	if !ok {
		return l.finishNumber(NUMERIC_DECIMAL, s)
	}

	switch next {
	case 'x', 'X':
		return l.lexRadix(s, next, NUMERIC_HEX)
	case 'o', 'O':
		return l.lexRadix(s, next, NUMERIC_OCTAL)
	case 'b', 'B':
		return l.lexRadix(s, next, NUMERIC_BINARY)
	case '.', 'e', 'E':
		if err := l.scanDecimalTail(s); err != nil {
			return Token{}, err
		}
		return l.finishNumber(NUMERIC_DECIMAL, s)
	}

	if IsDecimalDigit(next) || next == '_' {
		return l.lexLegacyOctal(s)
	}
	return l.finishNumber(NUMERIC_DECIMAL, s)
}

// lexRadix scans the body of a 0x, 0o or 0b literal. The prefix letter is
// still unread.
func (l *Lexer) lexRadix(s *numberScan, prefix rune, t TokenType) (Token, error) {
	l.cur.Next()
	s.raw.WriteRune(prefix)
	s.digits.Reset()

	count, err := l.scanDigits(s, t.Radix(), true)
	if err != nil {
		return Token{}, err
	}
	if count == 0 {
		return Token{}, newError(InvalidNumber, s.raw.String(), s.start)
	}
	return l.finishNumber(t, s)
}

// lexLegacyOctal scans a literal such as 017 or 089. Any 8 or 9 makes it a
// decimal literal, which may then carry a fraction or exponent.
func (l *Lexer) lexLegacyOctal(s *numberScan) (Token, error) {
	if _, err := l.scanDigits(s, 10, false); err != nil {
		return Token{}, err
	}
	if strings.ContainsAny(s.digits.String(), "89") {
		if err := l.scanDecimalTail(s); err != nil {
			return Token{}, err
		}
		return l.finishNumber(NUMERIC_DECIMAL, s)
	}
	return l.finishNumber(NUMERIC_OCTAL, s)
}

// lexDecimal scans a decimal literal starting with 1-9 or with a '.'
// followed by a digit.
func (l *Lexer) lexDecimal(start Position) (Token, error) {
	l.trace("enter_lexDecimal", "")
	s := &numberScan{start: start}

	if ch, _ := l.cur.Peek(); ch != '.' {
		if _, err := l.scanDigits(s, 10, true); err != nil {
			return Token{}, err
		}
	}
	if err := l.scanDecimalTail(s); err != nil {
		return Token{}, err
	}
	return l.finishNumber(NUMERIC_DECIMAL, s)
}

// scanDecimalTail reads an optional fraction and an optional exponent.
func (l *Lexer) scanDecimalTail(s *numberScan) error {
	if ch, ok := l.cur.Peek(); ok && ch == '.' {
		l.cur.Next()
		s.write('.')
		if _, err := l.scanDigits(s, 10, true); err != nil {
			return err
		}
	}

	ch, ok := l.cur.Peek()
	if !ok || (ch != 'e' && ch != 'E') {
		return nil
	}
	l.cur.Next()
	s.write(ch)
	if sign, ok := l.cur.Peek(); ok && (sign == '+' || sign == '-') {
		l.cur.Next()
		s.write(sign)
	}

	pos := l.cur.Position()
	count, err := l.scanDigits(s, 10, true)
	if err != nil {
		return err
	}
	if count == 0 {
		return newError(InvalidNumber, s.raw.String(), pos)
	}
	return nil
}

// scanDigits consumes digits of the given radix and returns how many it
// read. Separators are skipped when the lexer is lenient; otherwise each '_'
// must sit between two digits, and is refused outright when allowSep is
// false.
func (l *Lexer) scanDigits(s *numberScan, radix int, allowSep bool) (int, error) {
	count := 0
	prevDigit := false
	for {
		ch, ok := l.cur.Peek()
		if !ok {
			return count, nil
		}

		if ch == '_' {
			pos := l.cur.Position()
			if !l.lenientSeparators {
				next, nok := l.cur.PeekAt(1)
				if !allowSep || !prevDigit || !nok || !isRadixDigit(next, radix) {
					l.cur.Next()
					return count, newError(InvalidNumber, "_", pos)
				}
			}
			l.cur.Next()
			s.raw.WriteRune(ch)
			prevDigit = false
			continue
		}

		if !isRadixDigit(ch, radix) {
			return count, nil
		}
		l.cur.Next()
		s.write(ch)
		count++
		prevDigit = true
	}
}

// finishNumber runs the trailing-character check and computes the value.
func (l *Lexer) finishNumber(t TokenType, s *numberScan) (Token, error) {
	if ch, ok := l.cur.Peek(); ok && (IsIdentifierStart(ch) || ch == '\\' || IsDecimalDigit(ch)) {
		pos := l.cur.Position()
		l.cur.Next()
		return Token{}, newError(UnexpectedToken, string(ch), pos)
	}

	v, err := ParseNumeric(s.digits.String(), t)
	if err != nil {
		return Token{}, newError(InvalidNumber, s.raw.String(), s.start)
	}

	tok := l.finish(t, &s.raw, s.start)
	tok.Value = v
	tok.HasValue = true
	return tok, nil
}
