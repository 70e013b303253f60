package resolve

// Outcome summarizes a collector for the diagnostic layer. It classifies; it never picks
// one candidate out of several.
type Outcome int

const (
	Unresolved Outcome = iota
	Success
	Ambiguous
	NotApplicable
)

func (o Outcome) String() string {
	switch o {
	case Unresolved:
		return "unresolved"
	case Success:
		return "success"
	case Ambiguous:
		return "ambiguous"
	case NotApplicable:
		return "inapplicable"
	default:
		return "unknown"
	}
}

// Classify maps the collector's best candidates to an outcome. Hidden candidates count
// as not found.
func Classify(c *Collector) Outcome {
	best := c.BestCandidates()
	switch {
	case len(best) == 0 || c.Applicability() == Hidden:
		return Unresolved
	case !c.Applicability().IsSuccess():
		return NotApplicable
	case len(best) > 1:
		return Ambiguous
	default:
		return Success
	}
}
