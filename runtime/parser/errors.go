package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/jsfront/runtime/lexer"
)

// ParseError represents a parsing error with location and context information
type ParseError struct {
	Type        ErrorType
	Message     string
	Token       lexer.Token // Token the error points at
	Input       string
	Suggestions []string // Possible fixes
	Cause       error    // *lexer.LexError for ErrorLexer
}

// ErrorType represents different categories of parsing errors
type ErrorType int

const (
	ErrorLexer ErrorType = iota
	ErrorAlreadyDeclared
	ErrorUnexpected
	ErrorMissing
)

func (e ErrorType) String() string {
	switch e {
	case ErrorLexer:
		return "lexical error"
	case ErrorAlreadyDeclared:
		return "already declared"
	case ErrorUnexpected:
		return "unexpected token"
	case ErrorMissing:
		return "missing"
	default:
		return "error"
	}
}

// Error returns the formatted error message with line/column and code snippet
func (e ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Type, e.Message)
	if snippet := e.createCodeSnippet(); snippet != "" {
		b.WriteByte('\n')
		b.WriteString(snippet)
	}
	if len(e.Suggestions) > 0 {
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = "'" + s + "'"
		}
		fmt.Fprintf(&b, "\n   = help: did you mean %s?", strings.Join(quoted, " or "))
	}
	return b.String()
}

// Unwrap exposes the lexer error behind an ErrorLexer, so errors.Is works
// against the lexer sentinels.
func (e ParseError) Unwrap() error {
	return e.Cause
}

// createCodeSnippet creates a code snippet showing the error location
func (e ParseError) createCodeSnippet() string {
	pos := e.Token.Position
	if e.Input == "" || pos.Line == 0 {
		return ""
	}

	lineContent, ok := sourceLine(e.Input, pos.Line)
	if !ok {
		return ""
	}

	var snippet strings.Builder
	fmt.Fprintf(&snippet, "  --> %d:%d\n", pos.Line, pos.Column)
	snippet.WriteString("   |\n")
	fmt.Fprintf(&snippet, "%2d | %s\n", pos.Line, lineContent)
	snippet.WriteString("   | ")
	if pos.Column > 0 && pos.Column <= len([]rune(lineContent))+1 {
		snippet.WriteString(strings.Repeat(" ", pos.Column-1) + "^")
	}
	return snippet.String()
}

// sourceLine returns the 1-based line of input, splitting on the same line
// terminators the lexer counts (CR LF as one).
func sourceLine(input string, line int) (string, bool) {
	current, start := 1, 0
	for i, r := range input {
		if !lexer.IsLineTerminator(r) {
			continue
		}
		if r == '\n' && i > 0 && input[i-1] == '\r' {
			start = i + 1
			continue
		}
		if current == line {
			return input[start:i], true
		}
		current++
		start = i + len(string(r))
	}
	if current == line {
		return input[start:], true
	}
	return "", false
}

// NewLexerError wraps a lexer failure on input so it renders with a source
// snippet like any other ParseError.
func NewLexerError(input string, err *lexer.LexError) ParseError {
	message := err.Kind.String()
	if err.Detail != "" {
		message = fmt.Sprintf("%s %q", message, err.Detail)
	}
	return ParseError{
		Type:    ErrorLexer,
		Message: message,
		Token:   lexer.Token{Position: err.Position},
		Input:   input,
		Cause:   err,
	}
}

func (p *Parser) newLexerError(err *lexer.LexError) error {
	return NewLexerError(p.input, err)
}

func (p *Parser) newAlreadyDeclaredError(name lexer.Token) error {
	return ParseError{
		Type:    ErrorAlreadyDeclared,
		Message: fmt.Sprintf("identifier %q has already been declared", name.Text),
		Token:   name,
		Input:   p.input,
	}
}

// newUnexpectedTokenError reports got where expected was required. End of
// input is reported as missing rather than unexpected.
func (p *Parser) newUnexpectedTokenError(expected string, got lexer.Token) error {
	if got.Type == lexer.EOF {
		return p.newMissingTokenError(expected, got)
	}
	return ParseError{
		Type:    ErrorUnexpected,
		Message: fmt.Sprintf("expected %s, got %s", expected, describeToken(got)),
		Token:   got,
		Input:   p.input,
	}
}

func (p *Parser) newMissingTokenError(expected string, at lexer.Token) error {
	return ParseError{
		Type:    ErrorMissing,
		Message: "expected " + expected,
		Token:   at,
		Input:   p.input,
	}
}

// newMisspelledKeywordError handles `word name ...` at statement start, which
// is almost always a mistyped keyword.
func (p *Parser) newMisspelledKeywordError(word, next lexer.Token) error {
	return ParseError{
		Type:        ErrorUnexpected,
		Message:     fmt.Sprintf("unexpected %s after %q", describeToken(next), word.Text),
		Token:       word,
		Input:       p.input,
		Suggestions: suggestKeywords(word.Text),
	}
}

const maxSuggestions = 3

// statementKeywords are the reserved words a misspelled statement-leading
// word is compared against, in alphabetical order.
var statementKeywords = func() []string {
	var words []string
	for text, t := range lexer.Keywords {
		if t.IsKeyword() && !strings.HasSuffix(t.String(), "_LITERAL") {
			words = append(words, text)
		}
	}
	sort.Strings(words)
	return words
}()

// suggestKeywords ranks keywords that contain word as a subsequence; when
// none do it falls back to keywords within edit distance 2.
func suggestKeywords(word string) []string {
	ranks := fuzzy.RankFindFold(word, statementKeywords)
	sort.Stable(ranks)

	var suggestions []string
	for _, r := range ranks {
		suggestions = append(suggestions, r.Target)
	}

	if len(suggestions) == 0 {
		type candidate struct {
			word     string
			distance int
		}
		var near []candidate
		for _, kw := range statementKeywords {
			if d := fuzzy.LevenshteinDistance(strings.ToLower(word), kw); d <= 2 {
				near = append(near, candidate{kw, d})
			}
		}
		sort.SliceStable(near, func(i, j int) bool { return near[i].distance < near[j].distance })
		for _, c := range near {
			suggestions = append(suggestions, c.word)
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
