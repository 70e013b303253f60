package resolve

import "github.com/funvibe/tower/internal/typesystem"

// Signal tells a lookup whether to keep iterating over matches.
type Signal int

const (
	Continue Signal = iota
	Stop
)

// Symbol is an opaque reference to a declaration supplied by the scope system.
// Resolution only relies on its identity and name.
type Symbol interface {
	SymbolName() string
}

// SymbolFunc is invoked once per matching symbol.
type SymbolFunc func(Symbol) Signal

// Scope is an ambient lexical scope, enumerating its own declarations by name.
// Implementations must return Stop as soon as fn does.
type Scope interface {
	Properties(name string, fn SymbolFunc) Signal
	Functions(name string, fn SymbolFunc) Signal
	Classifiers(name string, fn SymbolFunc) Signal
}

// MemberScope enumerates the members reachable through a value of some type.
type MemberScope interface {
	MemberProperties(name string, fn SymbolFunc) Signal
	MemberFunctions(name string, fn SymbolFunc) Signal
}

// TypeScopes maps a type to its member scope, if it exposes one.
type TypeScopes interface {
	MemberScope(t typesystem.Type) (MemberScope, bool)
}

// Token selects the category of symbol sought in a level.
type Token int

const (
	TokenProperties Token = iota
	TokenFunctions
	TokenClassifiers
)

func (t Token) String() string {
	switch t {
	case TokenProperties:
		return "properties"
	case TokenFunctions:
		return "functions"
	case TokenClassifiers:
		return "classifiers"
	default:
		return "unknown"
	}
}

// TokenFor returns the token a call of the given kind is looked up with.
func TokenFor(kind CallKind) Token {
	if kind == CallVariable {
		return TokenProperties
	}
	return TokenFunctions
}
