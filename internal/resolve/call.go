package resolve

import (
	"strings"

	"github.com/funvibe/tower/internal/typesystem"
)

// CallKind distinguishes a function invocation from a variable/property access.
type CallKind int

const (
	CallFunction CallKind = iota
	CallVariable
)

func (k CallKind) String() string {
	switch k {
	case CallFunction:
		return "function"
	case CallVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Expr is an expression at the call site. Resolution never looks inside it;
// types come from the call's TypeLookup.
type Expr interface {
	String() string
}

// TypeLookup maps an expression to its previously computed type.
type TypeLookup func(Expr) (typesystem.Type, bool)

// Call describes one call site. It is built once by the caller and never mutated
// during resolution.
type Call struct {
	Kind             CallKind
	Name             string
	ExplicitReceiver Expr // nil for unqualified calls
	Args             []Expr
	TypeArgs         []typesystem.Type
	TypeOf           TypeLookup
}

// HasExplicitReceiver reports whether the call is qualified, as in r.f().
func (c *Call) HasExplicitReceiver() bool {
	return c.ExplicitReceiver != nil
}

// TypeOfExpr returns the computed type of e, or false if it is unknown.
func (c *Call) TypeOfExpr(e Expr) (typesystem.Type, bool) {
	if c.TypeOf == nil || e == nil {
		return nil, false
	}
	t, ok := c.TypeOf(e)
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

func (c *Call) String() string {
	var sb strings.Builder
	if c.ExplicitReceiver != nil {
		sb.WriteString(c.ExplicitReceiver.String())
		sb.WriteString(".")
	}
	sb.WriteString(c.Name)
	if len(c.TypeArgs) > 0 {
		args := make([]string, len(c.TypeArgs))
		for i, t := range c.TypeArgs {
			args[i] = t.String()
		}
		sb.WriteString("<" + strings.Join(args, ", ") + ">")
	}
	if c.Kind == CallFunction {
		args := make([]string, len(c.Args))
		for i, a := range c.Args {
			args[i] = a.String()
		}
		sb.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	return sb.String()
}

// Ident is a named expression, the simplest Expr.
type Ident string

func (i Ident) String() string { return string(i) }

// ReceiverValue is a receiver expression together with the type it is resolved against.
type ReceiverValue struct {
	Expr Expr
	Type typesystem.Type
}

func (r *ReceiverValue) String() string {
	if r == nil {
		return "<none>"
	}
	var t typesystem.Type = typesystem.TError{}
	if r.Type != nil {
		t = r.Type
	}
	return r.Expr.String() + ": " + t.String()
}
