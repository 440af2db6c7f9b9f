package parser

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/jsfront/core/invariant"
	"github.com/aledsdavies/jsfront/runtime/lexer"
)

// TokenMatcher accepts one token type or any of a list.
type TokenMatcher struct {
	types []lexer.TokenType
}

// Match builds a matcher for the given token types.
func Match(types ...lexer.TokenType) TokenMatcher {
	invariant.Precondition(len(types) > 0, "matcher must name at least one type")
	return TokenMatcher{types: types}
}

// Matches reports whether t is accepted
func (m TokenMatcher) Matches(t lexer.TokenType) bool {
	for _, want := range m.types {
		if want == t {
			return true
		}
	}
	return false
}

// String renders the matcher for error messages: "';'" or "one of '<', '>'".
func (m TokenMatcher) String() string {
	if len(m.types) == 1 {
		return describeType(m.types[0])
	}
	names := make([]string, len(m.types))
	for i, t := range m.types {
		names[i] = describeType(t)
	}
	return "one of " + strings.Join(names, ", ")
}

var (
	declarationKeyword = Match(lexer.LET, lexer.VAR, lexer.CONST)
	unaryOperator      = Match(lexer.ADD, lexer.SUB, lexer.NOT)
	identifier         = Match(lexer.IDENTIFIER)
	semicolon          = Match(lexer.SEMICOLON)
	closeParen         = Match(lexer.RPAREN)
)

// punctuatorText maps punctuator types back to their source text.
var punctuatorText = func() map[lexer.TokenType]string {
	m := make(map[lexer.TokenType]string, len(lexer.Punctuators)+len(lexer.SingleCharTokens))
	for text, t := range lexer.Punctuators {
		m[t] = text
	}
	for ch, t := range lexer.SingleCharTokens {
		m[t] = string(ch)
	}
	return m
}()

// describeType names a token category the way a user would write it.
func describeType(t lexer.TokenType) string {
	switch {
	case t == lexer.EOF:
		return "end of input"
	case t == lexer.IDENTIFIER:
		return "identifier"
	case t == lexer.STRING_LITERAL:
		return "string literal"
	case t.IsNumeric():
		return "number"
	case t.IsKeyword():
		return fmt.Sprintf("keyword '%s'", strings.ToLower(strings.TrimSuffix(t.String(), "_LITERAL")))
	case t.IsPunctuator():
		if text, ok := punctuatorText[t]; ok {
			return "'" + text + "'"
		}
	}
	return t.String()
}

// describeToken names a concrete token, including its text where that helps.
func describeToken(tok lexer.Token) string {
	switch {
	case tok.Type == lexer.IDENTIFIER:
		return fmt.Sprintf("identifier %q", tok.Text)
	case tok.Type.IsNumeric():
		return "number " + tok.Text
	case tok.Type == lexer.STRING_LITERAL:
		return fmt.Sprintf("string %q", tok.Text)
	default:
		return describeType(tok.Type)
	}
}
