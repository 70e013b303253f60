package checks

import (
	"fmt"

	"github.com/funvibe/tower/internal/inference"
	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/symbols"
	"github.com/funvibe/tower/internal/typesystem"
)

// Names of the checks, as they appear in diagnostics.
const (
	Visibility   = "visibility"
	Receiver     = "receiver"
	TypeArgCount = "type-arguments"
	Arity        = "arity"
	ArgTypes     = "argument-types"
	Synthetic    = "synthetic"
)

// declSuffix marks type variables of a declaration so they cannot capture the call
// site's own type variables.
const declSuffix = "decl"

// Subtyping answers nominal subtype questions between type constructor names.
type Subtyping interface {
	IsSubtype(sub, sup string) bool
}

// Provider is the default resolve.CheckProvider.
type Provider struct {
	subtypes Subtyping

	function []resolve.Check
	variable []resolve.Check
}

// NewProvider builds the check sequences. subtypes may be nil, in which case only
// structural unification is used.
func NewProvider(subtypes Subtyping) *Provider {
	p := &Provider{subtypes: subtypes}
	p.function = []resolve.Check{
		p.check(Visibility, p.visibility),
		p.check(Receiver, p.receiver),
		p.check(TypeArgCount, p.typeArgCount),
		p.check(Arity, p.arity),
		p.check(ArgTypes, p.argTypes),
		p.check(Synthetic, p.synthetic),
	}
	// Variable access has no argument list to map.
	p.variable = []resolve.Check{
		p.check(Visibility, p.visibility),
		p.check(Receiver, p.receiver),
		p.check(TypeArgCount, p.typeArgCount),
		p.check(Synthetic, p.synthetic),
	}
	return p
}

// ChecksFor implements resolve.CheckProvider.
func (p *Provider) ChecksFor(kind resolve.CallKind) []resolve.Check {
	switch kind {
	case resolve.CallFunction:
		return p.function
	case resolve.CallVariable:
		return p.variable
	default:
		panic(fmt.Sprintf("impossible call kind: %d", kind))
	}
}

type checkFn func(call *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) resolve.Applicability

// check adapts fn. Symbols from other scope systems carry nothing to check and pass.
func (p *Provider) check(name string, fn checkFn) resolve.Check {
	return resolve.CheckFunc{CheckName: name, Fn: func(call *resolve.Call, c *resolve.Candidate) resolve.Applicability {
		sym, ok := c.Symbol.(*symbols.Symbol)
		if !ok {
			return resolve.Resolved
		}
		return fn(call, c, sym)
	}}
}

func (p *Provider) visibility(_ *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) resolve.Applicability {
	if sym.IsHidden {
		return c.Report(Visibility, resolve.Hidden, "%s is not visible here", sym.SymbolName())
	}
	return resolve.Resolved
}

func (p *Provider) receiver(call *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) resolve.Applicability {
	switch c.Binding {
	case resolve.BindingDispatch:
		if !sym.IsMember() || sym.IsExtension() {
			return c.Report(Receiver, resolve.WrongReceiver, "%s is not a member", sym.SymbolName())
		}
		return resolve.Resolved
	case resolve.BindingExtension:
		if !sym.IsExtension() {
			return c.Report(Receiver, resolve.WrongReceiver, "%s is not an extension", sym.SymbolName())
		}
		if c.Receiver == nil || typesystem.IsError(c.Receiver.Type) {
			return c.Report(Receiver, resolve.WrongReceiver, "receiver type is unknown")
		}
		if err := p.bind(call, c, sym).receiver; err != nil {
			return c.Report(Receiver, resolve.WrongReceiver, "%s is not a receiver of %s: %v", c.Receiver.Type, sym.SymbolName(), err)
		}
		return resolve.Resolved
	case resolve.BindingNone:
		if sym.IsExtension() {
			return c.Report(Receiver, resolve.WrongReceiver, "%s needs a receiver of type %s", sym.SymbolName(), sym.ReceiverType)
		}
		return resolve.Resolved
	default:
		panic(fmt.Sprintf("impossible receiver binding: %d", c.Binding))
	}
}

func (p *Provider) typeArgCount(call *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) resolve.Applicability {
	if len(call.TypeArgs) == 0 {
		return resolve.Resolved
	}
	if len(call.TypeArgs) != len(sym.TypeParams) {
		return c.Report(TypeArgCount, resolve.ParameterMappingError,
			"%s expects %d type arguments, got %d", sym.SymbolName(), len(sym.TypeParams), len(call.TypeArgs))
	}
	if err := p.bind(call, c, sym).typeArgs; err != nil {
		return c.Report(TypeArgCount, resolve.ParameterMappingError, "%v", err)
	}
	return resolve.Resolved
}

func (p *Provider) arity(call *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) resolve.Applicability {
	fn, ok := sym.FuncType()
	if !ok {
		return c.Report(Arity, resolve.ParameterMappingError, "%s is not callable", sym.SymbolName())
	}
	if !fn.AcceptsArity(len(call.Args)) {
		return c.Report(Arity, resolve.ParameterMappingError,
			"%s cannot take %d arguments", sym.SymbolName(), len(call.Args))
	}
	return resolve.Resolved
}

func (p *Provider) argTypes(call *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) resolve.Applicability {
	if _, ok := sym.FuncType(); !ok || len(call.Args) == 0 {
		return resolve.Resolved
	}
	result := resolve.Resolved
	for _, err := range p.bind(call, c, sym).args {
		if err != nil {
			result = c.Report(ArgTypes, resolve.Inapplicable, "%v", err)
		}
	}
	return result
}

func (p *Provider) synthetic(_ *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) resolve.Applicability {
	if sym.IsSynthetic {
		return c.Report(Synthetic, resolve.SyntheticResolved, "%s is synthetic", sym.SymbolName())
	}
	return resolve.Resolved
}

// bindings holds the outcome of every unification a candidate needs. They are made
// once, in a fixed order, so each check reports the same verdict wherever it sits in
// the sequence.
type bindings struct {
	typeArgs error
	receiver error
	args     []error // by argument index; nil when accepted or untyped
}

const bindingsKey = "checks.bindings"

func (p *Provider) bind(call *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) *bindings {
	return c.Memo(bindingsKey, func() any { return p.unifyAll(call, c, sym) }).(*bindings)
}

// unifyAll records type arguments first, then the extension receiver, then the
// arguments. A failed unification leaves the workspace as it was.
func (p *Provider) unifyAll(call *resolve.Call, c *resolve.Candidate, sym *symbols.Symbol) *bindings {
	b := &bindings{}
	var sys *inference.ConstraintSystem
	workspace := func() *inference.ConstraintSystem {
		if sys == nil {
			sys = c.ConstraintSystem()
		}
		return sys
	}

	if n := len(call.TypeArgs); n > 0 && n == len(sym.TypeParams) {
		for i, name := range sym.TypeParams {
			param := inference.RenameTypeVars(typesystem.TVar{Name: name}, declSuffix)
			if err := workspace().AddUnify(param, call.TypeArgs[i], "type argument "+name); err != nil {
				b.typeArgs = err
				break
			}
		}
	}

	if c.Binding == resolve.BindingExtension && sym.IsExtension() &&
		c.Receiver != nil && !typesystem.IsError(c.Receiver.Type) {
		expected := inference.RenameTypeVars(sym.ReceiverType, declSuffix)
		b.receiver = p.accept(workspace(), expected, c.Receiver.Type, "receiver")
	}

	if fn, ok := sym.FuncType(); ok {
		b.args = make([]error, len(call.Args))
		for i, arg := range call.Args {
			param, ok := fn.ParamFor(i)
			if !ok {
				// Reported by the arity check.
				break
			}
			argType, ok := call.TypeOfExpr(arg)
			if !ok {
				continue
			}
			expected := inference.RenameTypeVars(param, declSuffix)
			b.args[i] = p.accept(workspace(), expected, argType, fmt.Sprintf("argument %d", i+1))
		}
	}
	return b
}

// accept unifies expected with actual, falling back to nominal subtyping when the
// structural match fails.
func (p *Provider) accept(sys *inference.ConstraintSystem, expected, actual typesystem.Type, origin string) error {
	err := sys.AddUnify(expected, actual, origin)
	if err == nil {
		return nil
	}
	if p.subtypes == nil {
		return err
	}
	sub, okSub := actual.(typesystem.TCon)
	sup, okSup := sys.Apply(expected).(typesystem.TCon)
	if okSub && okSup && p.subtypes.IsSubtype(sub.Name, sup.Name) {
		return nil
	}
	return err
}
