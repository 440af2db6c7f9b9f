package parser

import (
	"errors"
	"fmt"

	"github.com/aledsdavies/jsfront/core/ast"
)

// ScopeKind distinguishes the program scope from function scopes
type ScopeKind int

const (
	ScopeTop ScopeKind = iota
	ScopeFunction
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeTop:
		return "top-level"
	case ScopeFunction:
		return "function"
	default:
		return fmt.Sprintf("ScopeKind(%d)", int(k))
	}
}

// ErrAlreadyDeclared is returned by Scope.Declare for a conflicting binding.
var ErrAlreadyDeclared = errors.New("already declared")

// Scope records the names bound in one lexical scope and how they were bound.
type Scope struct {
	Kind  ScopeKind
	names map[string]ast.DeclarationKind
}

// NewScope creates an empty scope
func NewScope(kind ScopeKind) *Scope {
	return &Scope{Kind: kind, names: make(map[string]ast.DeclarationKind)}
}

// Declare binds name. Rebinding an existing name is allowed only when both
// the old and new bindings are var.
func (s *Scope) Declare(name string, kind ast.DeclarationKind) error {
	if prev, ok := s.names[name]; ok {
		if prev == ast.DeclVar && kind == ast.DeclVar {
			return nil
		}
		return fmt.Errorf("%q (%s, previously %s): %w", name, kind, prev, ErrAlreadyDeclared)
	}
	s.names[name] = kind
	return nil
}

// Lookup reports how name was bound in this scope.
func (s *Scope) Lookup(name string) (ast.DeclarationKind, bool) {
	kind, ok := s.names[name]
	return kind, ok
}

// Len returns the number of distinct names bound.
func (s *Scope) Len() int {
	return len(s.names)
}
