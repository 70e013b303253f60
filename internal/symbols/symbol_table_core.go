package symbols

import (
	"github.com/funvibe/tower/internal/typesystem"
)

type SymbolKind int

type ScopeType int

const (
	ScopePrelude ScopeType = iota // Built-in symbols
	ScopeGlobal                   // User code top-level
	ScopeFunction
	ScopeBlock
	ScopeMember // Members of a type
)

func (t ScopeType) String() string {
	switch t {
	case ScopePrelude:
		return "prelude"
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeMember:
		return "member"
	default:
		return "unknown"
	}
}

const (
	PropertySymbol SymbolKind = iota
	FunctionSymbol
	ClassifierSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case PropertySymbol:
		return "property"
	case FunctionSymbol:
		return "function"
	case ClassifierSymbol:
		return "classifier"
	default:
		return "unknown"
	}
}

type Symbol struct {
	Name         string
	Kind         SymbolKind
	Type         typesystem.Type // TFunc for functions; the declared type otherwise
	TypeParams   []string        // Explicit type parameters, in declaration order
	ReceiverType typesystem.Type // Extension receiver; nil for members and plain declarations
	Owner        string          // Declaring type for members
	IsHidden     bool            // Not visible from call sites (e.g. hidden deprecation)
	IsSynthetic  bool            // Generated by the compiler rather than declared

	OriginModule string // Scope or module the symbol was declared in
}

// SymbolName implements resolve.Symbol.
func (s *Symbol) SymbolName() string {
	if s.Owner != "" {
		return s.Owner + "." + s.Name
	}
	return s.Name
}

// IsExtension returns true if the symbol must be called on a receiver found lexically.
func (s *Symbol) IsExtension() bool {
	return s.ReceiverType != nil
}

// IsMember returns true if the symbol is declared inside a type.
func (s *Symbol) IsMember() bool {
	return s.Owner != ""
}

// FuncType returns the symbol's function type, if it has one.
func (s *Symbol) FuncType() (typesystem.TFunc, bool) {
	fn, ok := s.Type.(typesystem.TFunc)
	return fn, ok
}

func (s *Symbol) String() string {
	out := s.Kind.String() + " " + s.SymbolName()
	if s.ReceiverType != nil {
		out = s.Kind.String() + " " + s.ReceiverType.String() + "." + s.Name
	}
	if s.Type != nil {
		out += ": " + s.Type.String()
	}
	return out
}

// getTypeConstructorName extracts the constructor name from a type
func getTypeConstructorName(t typesystem.Type) string {
	switch tt := t.(type) {
	case typesystem.TCon:
		return tt.Name
	case typesystem.TApp:
		return getTypeConstructorName(tt.Constructor)
	default:
		return ""
	}
}
