package symbols

import (
	"fmt"

	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/typesystem"
)

// TypeRegistry maps type constructor names to their member tables.
// It is read-only once built and may then be shared between resolutions.
type TypeRegistry struct {
	members map[string]*SymbolTable
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{members: make(map[string]*SymbolTable)}
}

// DeclareType creates the member table of name. When super is not empty the table
// inherits super's members, and super must already be declared.
func (r *TypeRegistry) DeclareType(name, super string) (*SymbolTable, error) {
	if _, exists := r.members[name]; exists {
		return nil, fmt.Errorf("type %s declared twice", name)
	}
	var outer *SymbolTable
	if super != "" {
		st, ok := r.members[super]
		if !ok {
			return nil, fmt.Errorf("type %s: unknown supertype %s", name, super)
		}
		outer = st
	}
	st := NewEnclosedSymbolTable(outer, ScopeMember, name)
	r.members[name] = st
	return st, nil
}

// DefineMember adds a member to a declared type, recording the owner on the symbol.
func (r *TypeRegistry) DefineMember(typeName string, sym *Symbol) (*Symbol, error) {
	st, ok := r.members[typeName]
	if !ok {
		return nil, typesystem.NewSymbolNotFoundError(typeName)
	}
	sym.Owner = typeName
	return st.Define(sym), nil
}

// IsSubtype reports whether sub names sup or a type inheriting from it.
func (r *TypeRegistry) IsSubtype(sub, sup string) bool {
	for cur, ok := r.members[sub]; ok && cur != nil; cur = cur.outer {
		if cur.name == sup {
			return true
		}
	}
	return sub == sup
}

// MemberScope implements resolve.TypeScopes. Type variables, the error type and
// undeclared types expose no member scope.
func (r *TypeRegistry) MemberScope(t typesystem.Type) (resolve.MemberScope, bool) {
	if typesystem.IsError(t) {
		return nil, false
	}
	name := getTypeConstructorName(t)
	if name == "" {
		return nil, false
	}
	st, ok := r.members[name]
	if !ok {
		return nil, false
	}
	return st, true
}
