package resolve

import (
	"fmt"

	"github.com/funvibe/tower/internal/inference"
	"github.com/funvibe/tower/internal/typesystem"
)

// ReceiverBinding says how the explicit receiver attaches to a matched symbol.
type ReceiverBinding int

const (
	BindingNone ReceiverBinding = iota
	BindingDispatch
	BindingExtension
)

func (b ReceiverBinding) String() string {
	switch b {
	case BindingNone:
		return "none"
	case BindingDispatch:
		return "dispatch"
	case BindingExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Diagnostic is a note a check attached to a candidate.
type Diagnostic struct {
	Check         string
	Applicability Applicability
	Message       string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s]: %s", d.Check, d.Applicability, d.Message)
}

// Candidate pairs a symbol with a receiver binding. Once emitted it is owned by a collector.
type Candidate struct {
	Symbol   Symbol
	Binding  ReceiverBinding
	Receiver *ReceiverValue // dispatch or extension receiver; nil for BindingNone

	Diagnostics []Diagnostic

	base    *inference.ConstraintSystem
	systems inference.Factory
	system  *inference.ConstraintSystem // nil until first access

	substitution typesystem.Subst
	substituted  bool

	applicability Applicability
	evaluated     bool

	memo map[string]any
}

// ConstraintSystem returns the candidate's inference workspace. It is built on first use
// from an empty system merged with the base constraints, and the same instance is
// returned afterwards.
func (c *Candidate) ConstraintSystem() *inference.ConstraintSystem {
	if c.system != nil {
		return c.system
	}
	systems := c.systems
	if systems == nil {
		systems = inference.DefaultFactory{}
	}
	sys := systems.NewSystem()
	sys.Merge(c.base)
	c.system = sys
	return sys
}

// Memo returns the value stored under key, building it with build on first use.
// Checks use it to share work done once per candidate.
func (c *Candidate) Memo(key string, build func() any) any {
	if v, ok := c.memo[key]; ok {
		return v
	}
	if c.memo == nil {
		c.memo = make(map[string]any)
	}
	v := build()
	c.memo[key] = v
	return v
}

// HasConstraintSystem reports whether the workspace has been built.
func (c *Candidate) HasConstraintSystem() bool {
	return c.system != nil
}

// Substitution returns the substitution assigned by inference, if any.
func (c *Candidate) Substitution() (typesystem.Subst, bool) {
	return c.substitution, c.substituted
}

// SetSubstitution records the result of inference. It may be assigned once.
func (c *Candidate) SetSubstitution(s typesystem.Subst) {
	if c.substituted {
		panic(fmt.Sprintf("substitution of candidate %s assigned twice", c))
	}
	c.substitution = s
	c.substituted = true
}

// Applicability returns the rank computed by the collector. ok is false before evaluation.
func (c *Candidate) Applicability() (Applicability, bool) {
	return c.applicability, c.evaluated
}

// Report attaches a diagnostic and returns its applicability, so checks can
// `return c.Report(...)`.
func (c *Candidate) Report(check string, a Applicability, format string, args ...any) Applicability {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		Check:         check,
		Applicability: a,
		Message:       fmt.Sprintf(format, args...),
	})
	return a
}

func (c *Candidate) String() string {
	name := "<nil>"
	if c.Symbol != nil {
		name = c.Symbol.SymbolName()
	}
	if c.Receiver == nil {
		return fmt.Sprintf("%s (%s)", name, c.Binding)
	}
	return fmt.Sprintf("%s (%s %s)", name, c.Binding, c.Receiver)
}

// CandidateFactory builds candidates for matches found during tower search.
type CandidateFactory interface {
	NewCandidate(sym Symbol, receiver *ReceiverValue, binding ReceiverBinding) *Candidate
}

// DefaultCandidateFactory seeds every candidate's workspace from Base, built via Systems.
type DefaultCandidateFactory struct {
	Base    *inference.ConstraintSystem
	Systems inference.Factory
}

func (f DefaultCandidateFactory) NewCandidate(sym Symbol, receiver *ReceiverValue, binding ReceiverBinding) *Candidate {
	return &Candidate{
		Symbol:   sym,
		Binding:  binding,
		Receiver: receiver,
		base:     f.Base,
		systems:  f.Systems,
	}
}
