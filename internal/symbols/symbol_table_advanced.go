package symbols

import (
	"github.com/funvibe/tower/internal/typesystem"
)

// SymbolTable is one lexical scope, or the member scope of a type.
type SymbolTable struct {
	name      string
	store     map[string][]*Symbol // overload sets by name, in declaration order
	aliases   map[string]typesystem.Type
	outer     *SymbolTable
	scopeType ScopeType // Type of this scope
}
