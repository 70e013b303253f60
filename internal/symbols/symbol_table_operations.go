package symbols

import (
	"sort"

	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/typesystem"
)

func NewEmptySymbolTable(name string) *SymbolTable {
	return &SymbolTable{
		name:      name,
		store:     make(map[string][]*Symbol),
		aliases:   make(map[string]typesystem.Type),
		scopeType: ScopeGlobal, // Default to global
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType, name string) *SymbolTable {
	st := NewEmptySymbolTable(name)
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

func (s *SymbolTable) Name() string {
	return s.name
}

func (s *SymbolTable) ScopeType() ScopeType {
	return s.scopeType
}

func (s *SymbolTable) String() string {
	return s.scopeType.String() + " " + s.name
}

// Define adds sym to this scope's overload set for its name and returns it.
func (s *SymbolTable) Define(sym *Symbol) *Symbol {
	s.store[sym.Name] = append(s.store[sym.Name], sym)
	return sym
}

func (s *SymbolTable) DefineProperty(name string, t typesystem.Type, origin string) *Symbol {
	return s.Define(&Symbol{Name: name, Kind: PropertySymbol, Type: t, OriginModule: origin})
}

func (s *SymbolTable) DefineFunction(name string, t typesystem.TFunc, origin string) *Symbol {
	return s.Define(&Symbol{Name: name, Kind: FunctionSymbol, Type: t, OriginModule: origin})
}

// DefineExtension declares a function callable as recv.name(...) from this scope.
func (s *SymbolTable) DefineExtension(recv typesystem.Type, name string, t typesystem.TFunc, origin string) *Symbol {
	return s.Define(&Symbol{Name: name, Kind: FunctionSymbol, Type: t, ReceiverType: recv, OriginModule: origin})
}

func (s *SymbolTable) DefineClassifier(name string, t typesystem.Type, origin string) *Symbol {
	return s.Define(&Symbol{Name: name, Kind: ClassifierSymbol, Type: t, OriginModule: origin})
}

// FindWithScope returns the overload set for name and the innermost scope declaring it
func (s *SymbolTable) FindWithScope(name string) ([]*Symbol, *SymbolTable, bool) {
	syms, ok := s.store[name]
	if ok && len(syms) > 0 {
		return syms, s, true
	}
	if s.outer != nil {
		return s.outer.FindWithScope(name)
	}
	return nil, nil, false
}

func (s *SymbolTable) Find(name string) ([]*Symbol, bool) {
	syms, _, ok := s.FindWithScope(name)
	return syms, ok
}

// Lookup is Find reporting a missing name as an error.
func (s *SymbolTable) Lookup(name string) ([]*Symbol, error) {
	syms, ok := s.Find(name)
	if !ok {
		return nil, typesystem.NewSymbolNotFoundError(name)
	}
	return syms, nil
}

// GetAllNames returns all symbol names in scope, sorted (for error suggestions)
func (s *SymbolTable) GetAllNames() []string {
	seen := make(map[string]bool)
	var names []string
	for cur := s; cur != nil; cur = cur.outer {
		for name := range cur.store {
			if !seen[name] {
				names = append(names, name)
				seen[name] = true
			}
		}
	}
	sort.Strings(names)
	return names
}

// FindSimilarNames suggests visible names within maxDistance edits of name,
// closest first.
func (s *SymbolTable) FindSimilarNames(name string, maxDistance int) []string {
	type match struct {
		name     string
		distance int
	}
	var matches []match
	for _, candidate := range s.GetAllNames() {
		if candidate == name {
			continue
		}
		if d := levenshteinDistance(name, candidate); d <= maxDistance {
			matches = append(matches, match{candidate, d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Chain returns this scope and its outer scopes, innermost first, as the ambient
// scope list of a call site.
func (s *SymbolTable) Chain() []resolve.Scope {
	var chain []resolve.Scope
	for cur := s; cur != nil; cur = cur.outer {
		chain = append(chain, cur)
	}
	return chain
}
