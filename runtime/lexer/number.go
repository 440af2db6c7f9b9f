package lexer

import (
	"errors"
	"fmt"
	"strconv"
)

// A JavaScript number is an IEEE 754 double. Binary, octal and hex literals
// are folded digit by digit (value = value*radix + digit), which is exact up
// to 2^53 and silently rounds beyond it. Decimal literals go through
// strconv.ParseFloat so fractions and exponents are correctly rounded.

// ParseBinary folds a string of binary digits.
func ParseBinary(digits string) (float64, error) {
	return fold(digits, 2)
}

// ParseOctal folds a string of octal digits.
func ParseOctal(digits string) (float64, error) {
	return fold(digits, 8)
}

// ParseHex folds a string of hexadecimal digits.
func ParseHex(digits string) (float64, error) {
	return fold(digits, 16)
}

// ParseDecimal converts a decimal literal body (digits with an optional
// fraction and exponent, no separators). Literals that overflow a double
// become +Inf, matching JavaScript.
func ParseDecimal(text string) (float64, error) {
	if !isDecimalBody(text) {
		return 0, fmt.Errorf("invalid decimal literal %q", text)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("invalid decimal literal %q: %w", text, err)
	}
	return v, nil
}

// ParseNumeric dispatches on the numeric token type.
func ParseNumeric(digits string, t TokenType) (float64, error) {
	switch t {
	case NUMERIC_BINARY:
		return ParseBinary(digits)
	case NUMERIC_OCTAL:
		return ParseOctal(digits)
	case NUMERIC_DECIMAL:
		return ParseDecimal(digits)
	case NUMERIC_HEX:
		return ParseHex(digits)
	default:
		return 0, fmt.Errorf("%s is not a numeric token type", t)
	}
}

func fold(digits string, radix int) (float64, error) {
	if digits == "" {
		return 0, fmt.Errorf("empty base-%d literal", radix)
	}
	var v float64
	for _, ch := range digits {
		if !isRadixDigit(ch, radix) {
			return 0, fmt.Errorf("invalid digit %q in base-%d literal %q", ch, radix, digits)
		}
		v = v*float64(radix) + float64(digitValue(ch))
	}
	return v, nil
}

// isDecimalBody accepts digits [ "." digits ] [ e [+-] digits ] with at
// least one mantissa digit, as produced by the scanner.
func isDecimalBody(s string) bool {
	i, mantissa := 0, 0
	for i < len(s) && isASCIIDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isASCIIDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isASCIIDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isASCIIDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
