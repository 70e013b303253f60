package resolve

// Applicability classifies how well a candidate fits a call. Levels are ordered
// from worst to best; only the order is meaningful.
type Applicability int

const (
	Hidden Applicability = iota
	WrongReceiver
	ParameterMappingError
	Inapplicable
	SyntheticResolved
	Resolved
)

// WorstApplicability is where a collector starts before any candidate arrives.
const WorstApplicability = Hidden

func (a Applicability) String() string {
	switch a {
	case Hidden:
		return "hidden"
	case WrongReceiver:
		return "wrong-receiver"
	case ParameterMappingError:
		return "parameter-mapping-error"
	case Inapplicable:
		return "inapplicable"
	case SyntheticResolved:
		return "synthetic-resolved"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// IsSuccess reports whether a candidate with this applicability can be used.
func (a Applicability) IsSuccess() bool {
	return a >= SyntheticResolved
}

// Check is one semantic check of the applicability pipeline.
type Check interface {
	Name() string
	Run(call *Call, c *Candidate) Applicability
}

// CheckFunc adapts a function to Check.
type CheckFunc struct {
	CheckName string
	Fn        func(call *Call, c *Candidate) Applicability
}

func (f CheckFunc) Name() string { return f.CheckName }

func (f CheckFunc) Run(call *Call, c *Candidate) Applicability { return f.Fn(call, c) }

// CheckProvider returns the ordered check sequence for a call kind.
type CheckProvider interface {
	ChecksFor(kind CallKind) []Check
}

// applicabilitySink lowers its value to the worst report it receives.
type applicabilitySink struct {
	current Applicability
}

func newApplicabilitySink() *applicabilitySink {
	return &applicabilitySink{current: Resolved}
}

func (s *applicabilitySink) report(a Applicability) {
	if a < s.current {
		s.current = a
	}
}

// ComputeApplicability runs every check against the candidate and returns the
// worst rank reported. The result does not depend on check order.
func ComputeApplicability(call *Call, c *Candidate, checks []Check) Applicability {
	sink := newApplicabilitySink()
	for _, check := range checks {
		sink.report(check.Run(call, c))
	}
	c.applicability = sink.current
	c.evaluated = true
	return sink.current
}
