package resolve

import (
	"io"
	"log/slog"

	"github.com/funvibe/tower/internal/typesystem"
)

type fakeSymbol struct {
	name string
	id   int
}

func (s *fakeSymbol) SymbolName() string { return s.name }

// fakeScope is a lexical scope keyed by token and name.
type fakeScope struct {
	entries map[Token]map[string][]Symbol
	queries []string
}

func newFakeScope() *fakeScope {
	return &fakeScope{entries: make(map[Token]map[string][]Symbol)}
}

func (s *fakeScope) add(token Token, sym *fakeSymbol) *fakeSymbol {
	if s.entries[token] == nil {
		s.entries[token] = make(map[string][]Symbol)
	}
	s.entries[token][sym.name] = append(s.entries[token][sym.name], sym)
	return sym
}

func (s *fakeScope) each(token Token, name string, fn SymbolFunc) Signal {
	s.queries = append(s.queries, token.String()+":"+name)
	for _, sym := range s.entries[token][name] {
		if fn(sym) == Stop {
			return Stop
		}
	}
	return Continue
}

func (s *fakeScope) Properties(name string, fn SymbolFunc) Signal {
	return s.each(TokenProperties, name, fn)
}

func (s *fakeScope) Functions(name string, fn SymbolFunc) Signal {
	return s.each(TokenFunctions, name, fn)
}

func (s *fakeScope) Classifiers(name string, fn SymbolFunc) Signal {
	return s.each(TokenClassifiers, name, fn)
}

func (s *fakeScope) MemberProperties(name string, fn SymbolFunc) Signal {
	return s.each(TokenProperties, name, fn)
}

func (s *fakeScope) MemberFunctions(name string, fn SymbolFunc) Signal {
	return s.each(TokenFunctions, name, fn)
}

// fakeTypes maps type strings to member scopes.
type fakeTypes map[string]*fakeScope

func (f fakeTypes) MemberScope(t typesystem.Type) (MemberScope, bool) {
	if typesystem.IsError(t) {
		return nil, false
	}
	s, ok := f[t.String()]
	if !ok {
		return nil, false
	}
	return s, true
}

// fakeChecks returns the same sequence for every call kind.
type fakeChecks []Check

func (f fakeChecks) ChecksFor(CallKind) []Check { return f }

// rankBySymbol reports a fixed applicability per symbol, Resolved otherwise.
func rankBySymbol(ranks map[Symbol]Applicability) Check {
	return CheckFunc{CheckName: "rank", Fn: func(_ *Call, c *Candidate) Applicability {
		if a, ok := ranks[c.Symbol]; ok {
			return c.Report("rank", a, "fixed rank %s", a)
		}
		return Resolved
	}}
}

func acceptAll() Check {
	return CheckFunc{CheckName: "accept", Fn: func(*Call, *Candidate) Applicability { return Resolved }}
}

// recordingProcessor remembers what a level reported and stops after limit matches.
type recordingProcessor struct {
	syms      []Symbol
	dispatch  []*ReceiverValue
	extension []*ReceiverValue
	stopAfter int
}

func (p *recordingProcessor) Process(sym Symbol, dispatch, extension *ReceiverValue) Signal {
	p.syms = append(p.syms, sym)
	p.dispatch = append(p.dispatch, dispatch)
	p.extension = append(p.extension, extension)
	if p.stopAfter > 0 && len(p.syms) >= p.stopAfter {
		return Stop
	}
	return Continue
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func typeT() typesystem.Type { return typesystem.TCon{Name: "T"} }

// receiverCall builds r.name() with r typed T.
func receiverCall(kind CallKind, name string) *Call {
	return &Call{
		Kind:             kind,
		Name:             name,
		ExplicitReceiver: Ident("r"),
		TypeOf: func(e Expr) (typesystem.Type, bool) {
			if e.String() == "r" {
				return typeT(), true
			}
			return nil, false
		},
	}
}

func components(types TypeScopes, checks ...Check) *Components {
	return &Components{Types: types, Checks: fakeChecks(checks), Logger: quietLogger()}
}
