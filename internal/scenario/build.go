package scenario

import (
	"fmt"
	"sort"

	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/symbols"
	"github.com/funvibe/tower/internal/typesystem"
)

// World is a scenario turned into resolver input.
type World struct {
	Types  *symbols.TypeRegistry
	Scopes map[string]*symbols.SymbolTable
	Sites  []resolve.Site

	// CallScopes holds the scope each site's call occurs in, aligned with Sites.
	CallScopes []*symbols.SymbolTable

	// Innermost is the scope calls occur in by default.
	Innermost *symbols.SymbolTable
}

// Build declares the scenario's types and scopes and prepares one site per call.
// The scenario must be valid.
func (s *Scenario) Build() (*World, error) {
	w := &World{
		Types:  symbols.NewBuiltinTypeRegistry(),
		Scopes: make(map[string]*symbols.SymbolTable, len(s.Scopes)),
	}

	// Scopes are listed innermost first; build them outermost first so each can
	// enclose the previous one.
	if len(s.Scopes) == 0 {
		return nil, fmt.Errorf("%s: no scopes defined", s.path)
	}
	var outer *symbols.SymbolTable
	if !s.NoPrelude {
		outer = symbols.GetPrelude()
	}
	tables := make([]*symbols.SymbolTable, len(s.Scopes))
	for i := len(s.Scopes) - 1; i >= 0; i-- {
		decl := s.Scopes[i]
		st := symbols.NewEnclosedSymbolTable(outer, scopeType(decl.Kind), decl.Name)
		tables[i] = st
		w.Scopes[decl.Name] = st
		outer = st
	}
	w.Innermost = outer

	// Aliases belong to the outermost scenario scope, so every call site sees them.
	global := tables[len(tables)-1]
	for _, name := range sortedKeys(s.Aliases) {
		t, err := typesystem.ParseType(s.Aliases[name])
		if err != nil {
			return nil, fmt.Errorf("%s: aliases[%s]: %w", s.path, name, err)
		}
		global.DefineTypeAlias(name, t)
	}
	parse := func(expr string) (typesystem.Type, error) {
		t, err := typesystem.ParseType(expr)
		if err != nil {
			return nil, err
		}
		return global.ResolveTypeAlias(t), nil
	}

	for _, t := range s.Types {
		if _, err := w.Types.DeclareType(t.Name, t.Super); err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
		for _, m := range t.Members {
			sym, err := s.symbol(m, parse)
			if err != nil {
				return nil, err
			}
			if _, err := w.Types.DefineMember(t.Name, sym); err != nil {
				return nil, fmt.Errorf("%s: %w", s.path, err)
			}
		}
	}

	for i, decl := range s.Scopes {
		for _, d := range decl.Symbols {
			sym, err := s.symbol(d, parse)
			if err != nil {
				return nil, err
			}
			sym.OriginModule = decl.Name
			tables[i].Define(sym)
		}
	}

	vars := make(map[string]typesystem.Type, len(s.Vars))
	for name, expr := range s.Vars {
		t, err := parse(expr)
		if err != nil {
			return nil, fmt.Errorf("%s: vars[%s]: %w", s.path, name, err)
		}
		vars[name] = t
	}
	typeOf := func(e resolve.Expr) (typesystem.Type, bool) {
		t, ok := vars[e.String()]
		return t, ok
	}

	for i, c := range s.Calls {
		call := &resolve.Call{
			Kind:   resolve.CallFunction,
			Name:   c.Name,
			TypeOf: typeOf,
		}
		if c.Kind == KindVariable {
			call.Kind = resolve.CallVariable
		}
		if c.Receiver != "" {
			call.ExplicitReceiver = resolve.Ident(c.Receiver)
		}
		for _, a := range c.Args {
			call.Args = append(call.Args, resolve.Ident(a))
		}
		for j, ta := range c.TypeArgs {
			t, err := parse(ta)
			if err != nil {
				return nil, fmt.Errorf("%s: calls[%d].type_args[%d]: %w", s.path, i, j, err)
			}
			call.TypeArgs = append(call.TypeArgs, t)
		}

		at := w.Innermost
		if c.Scope != "" {
			st, ok := w.Scopes[c.Scope]
			if !ok {
				return nil, fmt.Errorf("%s: calls[%d]: %w", s.path, i, typesystem.NewSymbolNotFoundError(c.Scope))
			}
			at = st
		}
		w.Sites = append(w.Sites, resolve.Site{Call: call, Scopes: at.Chain()})
		w.CallScopes = append(w.CallScopes, at)
	}
	return w, nil
}

func (s *Scenario) symbol(d SymbolDecl, parse func(string) (typesystem.Type, error)) (*symbols.Symbol, error) {
	sym := &symbols.Symbol{
		Name:        d.Name,
		TypeParams:  d.TypeParams,
		IsHidden:    d.Hidden,
		IsSynthetic: d.Synthetic,
	}
	switch d.Kind {
	case KindProperty:
		sym.Kind = symbols.PropertySymbol
	case KindClassifier:
		sym.Kind = symbols.ClassifierSymbol
	default:
		sym.Kind = symbols.FunctionSymbol
	}
	t, err := parse(d.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: symbol %s: %w", s.path, d.Name, err)
	}
	sym.Type = t
	if d.Receiver != "" {
		recv, err := parse(d.Receiver)
		if err != nil {
			return nil, fmt.Errorf("%s: symbol %s receiver: %w", s.path, d.Name, err)
		}
		sym.ReceiverType = recv
	}
	return sym, nil
}

func scopeType(kind string) symbols.ScopeType {
	switch kind {
	case ScopeFunction:
		return symbols.ScopeFunction
	case ScopeBlock:
		return symbols.ScopeBlock
	default:
		return symbols.ScopeGlobal
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
