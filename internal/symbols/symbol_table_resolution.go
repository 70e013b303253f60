package symbols

import (
	"github.com/funvibe/tower/internal/resolve"
)

// each calls fn for every symbol of kind declared under name in this scope only.
func (s *SymbolTable) each(name string, kind SymbolKind, fn resolve.SymbolFunc) resolve.Signal {
	for _, sym := range s.store[name] {
		if sym.Kind != kind {
			continue
		}
		if fn(sym) == resolve.Stop {
			return resolve.Stop
		}
	}
	return resolve.Continue
}

// Properties implements resolve.Scope.
func (s *SymbolTable) Properties(name string, fn resolve.SymbolFunc) resolve.Signal {
	return s.each(name, PropertySymbol, fn)
}

// Functions implements resolve.Scope.
func (s *SymbolTable) Functions(name string, fn resolve.SymbolFunc) resolve.Signal {
	return s.each(name, FunctionSymbol, fn)
}

// Classifiers implements resolve.Scope.
func (s *SymbolTable) Classifiers(name string, fn resolve.SymbolFunc) resolve.Signal {
	return s.each(name, ClassifierSymbol, fn)
}

// MemberProperties implements resolve.MemberScope. Member tables chain to the member
// table of their supertype, so inherited members are found too.
func (s *SymbolTable) MemberProperties(name string, fn resolve.SymbolFunc) resolve.Signal {
	return s.eachMember(name, PropertySymbol, fn)
}

// MemberFunctions implements resolve.MemberScope.
func (s *SymbolTable) MemberFunctions(name string, fn resolve.SymbolFunc) resolve.Signal {
	return s.eachMember(name, FunctionSymbol, fn)
}

// eachMember walks the member table chain. A supertype member whose signature is
// already declared by a nearer table is overridden and not reported.
func (s *SymbolTable) eachMember(name string, kind SymbolKind, fn resolve.SymbolFunc) resolve.Signal {
	overridden := make(map[string]bool)
	for cur := s; cur != nil && cur.scopeType == ScopeMember; cur = cur.outer {
		var declared []string
		for _, sym := range cur.store[name] {
			if sym.Kind != kind {
				continue
			}
			sig := signatureOf(sym)
			if overridden[sig] {
				continue
			}
			declared = append(declared, sig)
			if fn(sym) == resolve.Stop {
				return resolve.Stop
			}
		}
		for _, sig := range declared {
			overridden[sig] = true
		}
	}
	return resolve.Continue
}

func signatureOf(sym *Symbol) string {
	if sym.Type == nil {
		return ""
	}
	if fn, ok := sym.FuncType(); ok {
		// Return types do not distinguish overrides.
		fn.ReturnType = nil
		return fn.String()
	}
	return ""
}
