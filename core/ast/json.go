package ast

import (
	"encoding/json"
	"math"
)

// JSON encoding tags every node with its "type" so interface-typed fields
// (statements, expressions) stay distinguishable in the output.

func (p *Program) MarshalJSON() ([]byte, error) {
	type alias Program
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"Program", (*alias)(p)})
}

func (v *VariableDeclaration) MarshalJSON() ([]byte, error) {
	type alias VariableDeclaration
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"VariableDeclaration", (*alias)(v)})
}

func (v *Variable) MarshalJSON() ([]byte, error) {
	type alias Variable
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"Variable", (*alias)(v)})
}

func (e *ExpressionStatement) MarshalJSON() ([]byte, error) {
	type alias ExpressionStatement
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"ExpressionStatement", (*alias)(e)})
}

func (i *Identifier) MarshalJSON() ([]byte, error) {
	type alias Identifier
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"Identifier", (*alias)(i)})
}

func (s *StringLiteral) MarshalJSON() ([]byte, error) {
	type alias StringLiteral
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"StringLiteral", (*alias)(s)})
}

// MarshalJSON writes non-finite values as strings, since JSON numbers
// cannot hold them.
func (n *NumberLiteral) MarshalJSON() ([]byte, error) {
	var value any = n.Value
	if math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		value = formatNumber(n.Value)
	}
	return json.Marshal(struct {
		Type  string   `json:"type"`
		Value any      `json:"value"`
		Raw   string   `json:"raw"`
		Pos   Position `json:"pos"`
	}{"NumberLiteral", value, n.Raw, n.Pos})
}

func (b *BooleanLiteral) MarshalJSON() ([]byte, error) {
	type alias BooleanLiteral
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"BooleanLiteral", (*alias)(b)})
}

func (n *NullLiteral) MarshalJSON() ([]byte, error) {
	type alias NullLiteral
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"NullLiteral", (*alias)(n)})
}

func (u *UndefinedLiteral) MarshalJSON() ([]byte, error) {
	type alias UndefinedLiteral
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"UndefinedLiteral", (*alias)(u)})
}

func (u *UnaryExpr) MarshalJSON() ([]byte, error) {
	type alias UnaryExpr
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"UnaryExpr", (*alias)(u)})
}

func (b *BinaryExpr) MarshalJSON() ([]byte, error) {
	type alias BinaryExpr
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"BinaryExpr", (*alias)(b)})
}
