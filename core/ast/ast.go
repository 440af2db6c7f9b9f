package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node represents any node in the AST
type Node interface {
	String() string
	Position() Position
}

// Position represents source location information
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"` // Byte offset in source
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Statement is a node that can appear at the top level of a Program
type Statement interface {
	Node
	IsStatement() bool
}

// Expression is a node that produces a value
type Expression interface {
	Node
	IsExpression() bool
}

// Program represents the root of the AST (an entire source file)
type Program struct {
	Body []Statement `json:"body"`
	Pos  Position    `json:"pos"`
}

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Body))
	for _, stmt := range p.Body {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, "\n")
}

func (p *Program) Position() Position {
	return p.Pos
}

// DeclarationKind is the keyword that introduced a declaration
type DeclarationKind int

const (
	DeclLet DeclarationKind = iota
	DeclVar
	DeclConst
)

func (k DeclarationKind) String() string {
	switch k {
	case DeclLet:
		return "let"
	case DeclVar:
		return "var"
	case DeclConst:
		return "const"
	default:
		return fmt.Sprintf("DeclarationKind(%d)", int(k))
	}
}

// MarshalText renders the keyword, so JSON output reads "let" rather than 0.
func (k DeclarationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// VariableDeclaration represents `let a = 1, b;` and its var/const forms
type VariableDeclaration struct {
	Kind DeclarationKind `json:"kind"`
	List []*Variable     `json:"list"`
	Pos  Position        `json:"pos"`
}

func (v *VariableDeclaration) String() string {
	parts := make([]string, 0, len(v.List))
	for _, decl := range v.List {
		parts = append(parts, decl.String())
	}
	return fmt.Sprintf("%s %s;", v.Kind, strings.Join(parts, ", "))
}

func (v *VariableDeclaration) Position() Position {
	return v.Pos
}

func (v *VariableDeclaration) IsStatement() bool {
	return true
}

// Variable is one declarator: a name with an optional initializer
type Variable struct {
	Name *Identifier `json:"name"`
	Init Expression  `json:"init,omitempty"`
	Pos  Position    `json:"pos"`
}

func (v *Variable) String() string {
	if v.Init == nil {
		return v.Name.String()
	}
	return fmt.Sprintf("%s = %s", v.Name, v.Init)
}

func (v *Variable) Position() Position {
	return v.Pos
}

// ExpressionStatement wraps an expression used as a statement
type ExpressionStatement struct {
	Expression Expression `json:"expression"`
	Pos        Position   `json:"pos"`
}

func (e *ExpressionStatement) String() string {
	return e.Expression.String() + ";"
}

func (e *ExpressionStatement) Position() Position {
	return e.Pos
}

func (e *ExpressionStatement) IsStatement() bool {
	return true
}

// Identifier represents a name reference
type Identifier struct {
	Name string   `json:"name"`
	Pos  Position `json:"pos"`
}

func (i *Identifier) String() string {
	return i.Name
}

func (i *Identifier) Position() Position {
	return i.Pos
}

func (i *Identifier) IsExpression() bool {
	return true
}

// StringLiteral holds the decoded value of a quoted string
type StringLiteral struct {
	Value string   `json:"value"`
	Pos   Position `json:"pos"`
}

func (s *StringLiteral) String() string {
	return strconv.Quote(s.Value)
}

func (s *StringLiteral) Position() Position {
	return s.Pos
}

func (s *StringLiteral) IsExpression() bool {
	return true
}

// NumberLiteral holds a numeric value together with the text it was written as
type NumberLiteral struct {
	Value float64  `json:"value"`
	Raw   string   `json:"raw"`
	Pos   Position `json:"pos"`
}

func (n *NumberLiteral) String() string {
	if n.Raw != "" {
		return n.Raw
	}
	return formatNumber(n.Value)
}

func (n *NumberLiteral) Position() Position {
	return n.Pos
}

func (n *NumberLiteral) IsExpression() bool {
	return true
}

// BooleanLiteral represents true or false
type BooleanLiteral struct {
	Value bool     `json:"value"`
	Pos   Position `json:"pos"`
}

func (b *BooleanLiteral) String() string {
	return strconv.FormatBool(b.Value)
}

func (b *BooleanLiteral) Position() Position {
	return b.Pos
}

func (b *BooleanLiteral) IsExpression() bool {
	return true
}

// NullLiteral represents null
type NullLiteral struct {
	Pos Position `json:"pos"`
}

func (n *NullLiteral) String() string {
	return "null"
}

func (n *NullLiteral) Position() Position {
	return n.Pos
}

func (n *NullLiteral) IsExpression() bool {
	return true
}

// UndefinedLiteral represents undefined
type UndefinedLiteral struct {
	Pos Position `json:"pos"`
}

func (u *UndefinedLiteral) String() string {
	return "undefined"
}

func (u *UndefinedLiteral) Position() Position {
	return u.Pos
}

func (u *UndefinedLiteral) IsExpression() bool {
	return true
}

// UnaryOperator is a prefix operator
type UnaryOperator int

const (
	UnaryPlus UnaryOperator = iota
	UnaryMinus
	UnaryNot
)

var unaryOperatorText = map[UnaryOperator]string{
	UnaryPlus:  "+",
	UnaryMinus: "-",
	UnaryNot:   "!",
}

func (op UnaryOperator) String() string {
	if s, ok := unaryOperatorText[op]; ok {
		return s
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(op))
}

func (op UnaryOperator) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnaryExpr represents a prefix operation such as -x or !done
type UnaryExpr struct {
	Operator UnaryOperator `json:"operator"`
	Argument Expression    `json:"argument"`
	Pos      Position      `json:"pos"`
}

func (u *UnaryExpr) String() string {
	return u.Operator.String() + u.Argument.String()
}

func (u *UnaryExpr) Position() Position {
	return u.Pos
}

func (u *UnaryExpr) IsExpression() bool {
	return true
}

// BinaryOperator is an infix operator
type BinaryOperator int

const (
	BinaryAdd BinaryOperator = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryLt
	BinaryGt
	BinaryLte
	BinaryGte
)

var binaryOperatorText = map[BinaryOperator]string{
	BinaryAdd: "+",
	BinarySub: "-",
	BinaryMul: "*",
	BinaryDiv: "/",
	BinaryMod: "%",
	BinaryLt:  "<",
	BinaryGt:  ">",
	BinaryLte: "<=",
	BinaryGte: ">=",
}

func (op BinaryOperator) String() string {
	if s, ok := binaryOperatorText[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

func (op BinaryOperator) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// BinaryExpr represents an infix operation; String() parenthesises it so
// the tree shape is visible.
type BinaryExpr struct {
	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
	Pos      Position       `json:"pos"`
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Operator, b.Right)
}

func (b *BinaryExpr) Position() Position {
	return b.Pos
}

func (b *BinaryExpr) IsExpression() bool {
	return true
}

func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
