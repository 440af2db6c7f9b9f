// Package parser builds a core/ast Program from JavaScript source.
//
// It covers a deliberately small grammar:
//
//	Program     := Statement* EOF
//	Statement   := ("let" | "var" | "const") Declarator ("," Declarator)* ";"
//	             | Expression ";"
//	Declarator  := IDENTIFIER ("=" Expression)?
//	Expression  := relational, additive and multiplicative binary operators
//	               over unary + - ! and primaries
//	Primary     := literal | IDENTIFIER | "(" Expression ")"
//
// Parsing stops at the first error; there is no recovery.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aledsdavies/jsfront/core/ast"
	"github.com/aledsdavies/jsfront/core/invariant"
	"github.com/aledsdavies/jsfront/runtime/lexer"
)

// Parser pulls tokens from a lexer one at a time and keeps a single cached
// lookahead token.
type Parser struct {
	lex   *lexer.Lexer
	input string

	lookahead    lexer.Token
	hasLookahead bool

	scopes []*Scope

	config   *ParserConfig
	logger   *slog.Logger
	logDebug bool

	// Telemetry (nil when disabled)
	telemetry *ParseTelemetry

	// Debug (nil when disabled)
	debugEvents []DebugEvent
}

// Parse is a convenience wrapper around New(input, opts...).Parse().
func Parse(input string, opts ...ParserOpt) (*ast.Program, error) {
	return New(input, opts...).Parse()
}

// New creates a parser over input.
func New(input string, opts ...ParserOpt) *Parser {
	config := &ParserConfig{}
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = lexer.NewDefaultLogger()
	}

	lexOpts := append([]lexer.LexerOpt{lexer.WithLogger(logger)}, config.lexerOpts...)
	p := &Parser{
		lex:    lexer.NewLexer(input, lexOpts...),
		input:  input,
		config: config,
		logger: logger,
	}
	p.logDebug = config.debug > DebugOff || logger.Enabled(context.Background(), slog.LevelDebug)
	return p
}

// Telemetry returns a copy of the metrics from the last Parse, or nil when
// telemetry is off.
func (p *Parser) Telemetry() *ParseTelemetry {
	if p.telemetry == nil {
		return nil
	}
	t := *p.telemetry
	return &t
}

// DebugEvents returns a copy of the recorded debug events, or nil when
// debug tracing is off.
func (p *Parser) DebugEvents() []DebugEvent {
	if p.debugEvents == nil {
		return nil
	}
	result := make([]DebugEvent, len(p.debugEvents))
	copy(result, p.debugEvents)
	return result
}

// Parse parses the whole input. Calling it again re-parses from the start.
//
// The returned error is a ParseError; for lexical failures it wraps the
// *lexer.LexError, so errors.Is(err, lexer.ErrUnterminatedString) holds.
func (p *Parser) Parse() (*ast.Program, error) {
	p.reset()

	var start time.Time
	if p.config.telemetry >= TelemetryTiming {
		start = time.Now()
	}

	prog, err := p.parseProgram()

	if p.telemetry != nil {
		if err != nil {
			p.telemetry.ErrorCount = 1
		}
		if p.config.telemetry >= TelemetryTiming {
			p.telemetry.TotalTime = time.Since(start)
		}
	}
	if err != nil {
		if p.logDebug {
			p.logger.Debug("[PARSER] Parse failed", "error", err)
		}
		return nil, err
	}
	return prog, nil
}

func (p *Parser) reset() {
	p.lex.Init(p.input)
	p.hasLookahead = false
	p.scopes = p.scopes[:0]
	if p.config.telemetry > TelemetryOff {
		p.telemetry = &ParseTelemetry{}
	}
	if p.config.debug > DebugOff {
		p.debugEvents = make([]DebugEvent, 0, 64)
	}
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	p.pushScope(ScopeTop)
	defer p.popScope()

	prog := &ast.Program{Pos: ast.Position{Line: 1, Column: 1}}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.EOF {
			return prog, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
		if p.telemetry != nil {
			p.telemetry.StatementCount++
		}
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	p.recordDebugEvent("enter_statement", tok.String())

	if declarationKeyword.Matches(tok.Type) {
		return p.parseDeclaration()
	}
	return p.parseExpressionStatement()
}

var declarationKinds = map[lexer.TokenType]ast.DeclarationKind{
	lexer.LET:   ast.DeclLet,
	lexer.VAR:   ast.DeclVar,
	lexer.CONST: ast.DeclConst,
}

func (p *Parser) parseDeclaration() (*ast.VariableDeclaration, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	p.recordDebugEvent("enter_declaration", kw.Text)

	kind, ok := declarationKinds[kw.Type]
	invariant.Precondition(ok, "declaration must start with let, var or const, got %s", kw.Type)

	decl := &ast.VariableDeclaration{Kind: kind, Pos: position(kw.Position)}
	for {
		v, err := p.parseDeclarator(kind)
		if err != nil {
			return nil, err
		}
		decl.List = append(decl.List, v)

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != lexer.COMMA {
			break
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(semicolon, fmt.Sprintf("after %s declaration", kind)); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseDeclarator(kind ast.DeclarationKind) (*ast.Variable, error) {
	name, err := p.expect(identifier, fmt.Sprintf("in %s declaration", kind))
	if err != nil {
		return nil, err
	}
	if err := p.currentScope().Declare(name.Text, kind); err != nil {
		if errors.Is(err, ErrAlreadyDeclared) {
			return nil, p.newAlreadyDeclaredError(name)
		}
		return nil, err
	}

	v := &ast.Variable{
		Name: &ast.Identifier{Name: name.Text, Pos: position(name.Position)},
		Pos:  position(name.Position),
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != lexer.ASSIGN {
		if kind == ast.DeclConst {
			return nil, p.newMissingTokenError(fmt.Sprintf("initializer for const %q", name.Text), tok)
		}
		return v, nil
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}

	v.Init, err = p.parseExpression()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Parser) parseExpressionStatement() (*ast.ExpressionStatement, error) {
	first, err := p.peek()
	if err != nil {
		return nil, err
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if _, bare := expr.(*ast.Identifier); bare && first.Type == lexer.IDENTIFIER && tok.Type == lexer.IDENTIFIER {
		return nil, p.newMisspelledKeywordError(first, tok)
	}

	if _, err := p.expect(semicolon, "after expression"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr, Pos: position(first.Position)}, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseBinary(1)
}

// binaryOperator returns the AST operator and precedence for t. Precedence
// 0 means t is not a binary operator.
func binaryOperator(t lexer.TokenType) (ast.BinaryOperator, int) {
	switch t {
	case lexer.LT:
		return ast.BinaryLt, 1
	case lexer.GT:
		return ast.BinaryGt, 1
	case lexer.LTE:
		return ast.BinaryLte, 1
	case lexer.GTE:
		return ast.BinaryGte, 1
	case lexer.ADD:
		return ast.BinaryAdd, 2
	case lexer.SUB:
		return ast.BinarySub, 2
	case lexer.MUL:
		return ast.BinaryMul, 3
	case lexer.DIV:
		return ast.BinaryDiv, 3
	case lexer.MOD:
		return ast.BinaryMod, 3
	default:
		return 0, 0
	}
}

// parseBinary parses left-associative binary expressions whose operators
// bind at least as tightly as minPrec.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		op, prec := binaryOperator(tok.Type)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Operator: op, Left: left, Right: right, Pos: left.Position()}
	}
}

var unaryOperators = map[lexer.TokenType]ast.UnaryOperator{
	lexer.ADD: ast.UnaryPlus,
	lexer.SUB: ast.UnaryMinus,
	lexer.NOT: ast.UnaryNot,
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !unaryOperator.Matches(tok.Type) {
		return p.parsePrimary()
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}

	arg, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Operator: unaryOperators[tok.Type], Argument: arg, Pos: position(tok.Position)}, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	pos := position(tok.Position)

	switch {
	case tok.Type == lexer.STRING_LITERAL:
		return &ast.StringLiteral{Value: tok.Text, Pos: pos}, nil
	case tok.Type.IsNumeric():
		value, ok := tok.NumericValue()
		invariant.Postcondition(ok, "numeric token %s must carry a value", tok)
		return &ast.NumberLiteral{Value: value, Raw: tok.Text, Pos: pos}, nil
	case tok.Type == lexer.TRUE_LITERAL, tok.Type == lexer.FALSE_LITERAL:
		return &ast.BooleanLiteral{Value: tok.Type == lexer.TRUE_LITERAL, Pos: pos}, nil
	case tok.Type == lexer.NULL_LITERAL:
		return &ast.NullLiteral{Pos: pos}, nil
	case tok.Type == lexer.UNDEFINED_LITERAL:
		return &ast.UndefinedLiteral{Pos: pos}, nil
	case tok.Type == lexer.IDENTIFIER:
		return &ast.Identifier{Name: tok.Text, Pos: pos}, nil
	case tok.Type == lexer.LPAREN:
		p.recordDebugEvent("enter_parenthesized", "")
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(closeParen, fmt.Sprintf("to close '(' at %s", tok.Position)); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.newUnexpectedTokenError("expression", tok)
	}
}

// peek returns the lookahead token without consuming it.
func (p *Parser) peek() (lexer.Token, error) {
	if p.hasLookahead {
		return p.lookahead, nil
	}
	tok, err := p.lex.Advance()
	if err != nil {
		var lexErr *lexer.LexError
		if errors.As(err, &lexErr) {
			return lexer.Token{}, p.newLexerError(lexErr)
		}
		return lexer.Token{}, err
	}
	if p.telemetry != nil {
		p.telemetry.TokenCount++
	}
	p.lookahead, p.hasLookahead = tok, true
	return tok, nil
}

// next consumes and returns the lookahead token.
func (p *Parser) next() (lexer.Token, error) {
	tok, err := p.peek()
	if err != nil {
		return lexer.Token{}, err
	}
	if tok.Type != lexer.EOF {
		p.hasLookahead = false
	}
	return tok, nil
}

// expect consumes the lookahead token if m accepts it.
func (p *Parser) expect(m TokenMatcher, context string) (lexer.Token, error) {
	tok, err := p.peek()
	if err != nil {
		return lexer.Token{}, err
	}
	if !m.Matches(tok.Type) {
		return lexer.Token{}, p.newUnexpectedTokenError(m.String()+" "+context, tok)
	}
	return p.next()
}

func (p *Parser) pushScope(kind ScopeKind) {
	p.scopes = append(p.scopes, NewScope(kind))
}

func (p *Parser) popScope() {
	invariant.Precondition(len(p.scopes) > 0, "scope stack underflow")
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) currentScope() *Scope {
	invariant.Invariant(len(p.scopes) > 0, "no open scope")
	return p.scopes[len(p.scopes)-1]
}

// recordDebugEvent records debug events when debug tracing is enabled
func (p *Parser) recordDebugEvent(event, context string) {
	if p.debugEvents == nil {
		return
	}
	pos := p.lex.Position()
	if p.hasLookahead {
		pos = p.lookahead.Position
	}
	p.debugEvents = append(p.debugEvents, DebugEvent{
		Timestamp: time.Now(),
		Event:     event,
		Position:  pos,
		Context:   context,
	})
	if p.logDebug {
		p.logger.Debug("[PARSER] "+event, "pos", pos.String(), "context", context)
	}
}

func position(pos lexer.Position) ast.Position {
	return ast.Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}
