package resolve

import (
	"fmt"
	"log/slog"

	"github.com/funvibe/tower/internal/typesystem"
)

// Components are the collaborators resolution is parameterized by.
type Components struct {
	Types      TypeScopes       // type -> member scope
	Checks     CheckProvider    // call kind -> ordered checks
	Candidates CandidateFactory // nil means DefaultCandidateFactory{}
	Logger     *slog.Logger     // nil means slog.Default()
}

func (c *Components) withDefaults() *Components {
	out := Components{}
	if c != nil {
		out = *c
	}
	if out.Candidates == nil {
		out.Candidates = DefaultCandidateFactory{}
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// Consumer visits tower levels for one call site and feeds the candidates it finds
// to a collector. A consumer carries per-call-site state and must not be shared
// between resolutions.
type Consumer interface {
	Call() *Call
	Checks() []Check
	Logger() *slog.Logger
	// Consume processes one level. Resolve calls it with EmptyLevel first and then
	// with one ScopeLevel per ambient scope, until a level returns Stop.
	Consume(level Level, collector *Collector) Signal
	// Group is the priority group of the most recently processed level, 0 before any.
	Group() int
}

// NewConsumer picks the consumer variant for call: explicit-receiver when the call is
// qualified, no-explicit-receiver otherwise.
func NewConsumer(call *Call, token Token, comps *Components) Consumer {
	if call == nil {
		panic("resolve: NewConsumer called without a call")
	}
	if call.HasExplicitReceiver() {
		return NewExplicitReceiverConsumer(call, token, comps)
	}
	return NewNoReceiverConsumer(call, token, comps)
}

type consumerBase struct {
	call  *Call
	token Token
	comps *Components
	group int
}

func (b *consumerBase) Call() *Call { return b.call }

func (b *consumerBase) Logger() *slog.Logger { return b.comps.Logger }

func (b *consumerBase) Group() int { return b.group }

func (b *consumerBase) Checks() []Check {
	if b.comps.Checks == nil {
		return nil
	}
	return b.comps.Checks.ChecksFor(b.call.Kind)
}

// nextGroup starts a new phase.
func (b *consumerBase) nextGroup() int {
	b.group++
	return b.group
}

func (b *consumerBase) emitter(collector *Collector, group int, binding ReceiverBinding) candidateEmitter {
	return candidateEmitter{consumer: b, collector: collector, group: group, binding: binding}
}

// explicitConsumer resolves r.f(): r's own members first (dispatch), then every ambient
// scope with r as a candidate extension receiver.
type explicitConsumer struct {
	consumerBase
	receiver *ReceiverValue
}

// NewExplicitReceiverConsumer binds the call's receiver to its computed type, or to the
// error type when none is available so the search still runs.
func NewExplicitReceiverConsumer(call *Call, token Token, comps *Components) Consumer {
	if call == nil || !call.HasExplicitReceiver() {
		panic("resolve: explicit-receiver consumer needs a call with a receiver")
	}
	recvType, ok := call.TypeOfExpr(call.ExplicitReceiver)
	if !ok {
		recvType = typesystem.TError{Reason: fmt.Sprintf("type of %s is unknown", call.ExplicitReceiver)}
	}
	return &explicitConsumer{
		consumerBase: consumerBase{call: call, token: token, comps: comps.withDefaults()},
		receiver:     &ReceiverValue{Expr: call.ExplicitReceiver, Type: recvType},
	}
}

func (c *explicitConsumer) Consume(level Level, collector *Collector) Signal {
	group := c.nextGroup()
	switch l := level.(type) {
	case EmptyLevel:
		members := MemberLevel{Receiver: c.receiver, Types: c.comps.Types}
		return ProcessLevel(members, c.token, c.call.Name, c.receiver, c.emitter(collector, group, BindingDispatch))
	case MemberLevel:
		return ProcessLevel(l, c.token, c.call.Name, c.receiver, c.emitter(collector, group, BindingDispatch))
	case ScopeLevel:
		return ProcessLevel(l, c.token, c.call.Name, c.receiver, c.emitter(collector, group, BindingExtension))
	default:
		panic(fmt.Sprintf("impossible tower level: %T", level))
	}
}

// implicitConsumer resolves f(): there is no receiver to search, so the empty level is
// skipped and ambient scopes are searched without a receiver.
type implicitConsumer struct {
	consumerBase
}

func NewNoReceiverConsumer(call *Call, token Token, comps *Components) Consumer {
	if call == nil {
		panic("resolve: NewNoReceiverConsumer called without a call")
	}
	return &implicitConsumer{
		consumerBase: consumerBase{call: call, token: token, comps: comps.withDefaults()},
	}
}

func (c *implicitConsumer) Consume(level Level, collector *Collector) Signal {
	switch l := level.(type) {
	case EmptyLevel:
		return Continue
	case ScopeLevel:
		group := c.nextGroup()
		return ProcessLevel(l, c.token, c.call.Name, nil, c.emitter(collector, group, BindingNone))
	case MemberLevel:
		panic("resolve: member level given to a consumer without explicit receiver")
	default:
		panic(fmt.Sprintf("impossible tower level: %T", level))
	}
}

// candidateEmitter is the processor a consumer hands to a level for one phase.
type candidateEmitter struct {
	consumer  *consumerBase
	collector *Collector
	group     int
	binding   ReceiverBinding
}

func (e candidateEmitter) Process(sym Symbol, dispatch, extension *ReceiverValue) Signal {
	var receiver *ReceiverValue
	switch e.binding {
	case BindingDispatch:
		receiver = dispatch
	case BindingExtension:
		receiver = extension
	case BindingNone:
	default:
		panic(fmt.Sprintf("impossible receiver binding: %d", e.binding))
	}
	cand := e.consumer.comps.Candidates.NewCandidate(sym, receiver, e.binding)
	e.collector.Consume(e.group, cand)
	return Continue
}
