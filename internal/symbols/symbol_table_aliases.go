package symbols

import (
	"github.com/funvibe/tower/internal/typesystem"
)

// DefineTypeAlias makes name stand for underlying in this scope and every scope it encloses.
func (s *SymbolTable) DefineTypeAlias(name string, underlying typesystem.Type) {
	s.aliases[name] = underlying
}

// GetTypeAlias returns the underlying type for a type alias.
func (s *SymbolTable) GetTypeAlias(name string) (typesystem.Type, bool) {
	t, ok := s.aliases[name]
	if !ok && s.outer != nil {
		return s.outer.GetTypeAlias(name)
	}
	return t, ok
}

// ResolveTypeAlias replaces every alias in t by its underlying type, recursively.
// An alias reached again while it is being expanded is left unexpanded.
func (s *SymbolTable) ResolveTypeAlias(t typesystem.Type) typesystem.Type {
	return s.resolveTypeAliasWithCycleCheck(t, make(map[string]bool))
}

func (s *SymbolTable) resolveTypeAliasWithCycleCheck(t typesystem.Type, visiting map[string]bool) typesystem.Type {
	return typesystem.MapTCon(t, func(c typesystem.TCon) typesystem.Type {
		if visiting[c.Name] {
			return c
		}
		underlying, ok := s.GetTypeAlias(c.Name)
		if !ok {
			return c
		}
		visiting[c.Name] = true
		defer delete(visiting, c.Name)
		return s.resolveTypeAliasWithCycleCheck(underlying, visiting)
	})
}
