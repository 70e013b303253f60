package resolve

import (
	"fmt"
	"log/slog"
)

// Collector keeps the most applicable candidates seen so far together with the
// priority group each was found in. It is owned by one resolution.
type Collector struct {
	call   *Call
	checks []Check
	logger *slog.Logger

	groups     []int
	candidates []*Candidate
	best       Applicability
}

// NewCollector creates an empty collector judging candidates against checks.
func NewCollector(call *Call, checks []Check, logger *slog.Logger) *Collector {
	if call == nil {
		panic("resolve: NewCollector called without a call")
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Collector{call: call, checks: checks, logger: logger}
	c.NewDataSet()
	return c
}

// NewDataSet drops everything retained so the collector can be reused for another pass.
func (c *Collector) NewDataSet() {
	c.groups = c.groups[:0]
	c.candidates = c.candidates[:0]
	c.best = WorstApplicability
}

// Consume judges cand and retains it if it is at least as applicable as the current best.
// A strictly better candidate evicts everything retained before it.
func (c *Collector) Consume(group int, cand *Candidate) {
	applicability := ComputeApplicability(c.call, cand, c.checks)
	recordCandidate(c.call.Kind, applicability)

	switch {
	case applicability > c.best:
		if len(c.candidates) > 0 {
			c.logger.Debug("candidates evicted",
				slog.String("call", c.call.Name),
				slog.Int("evicted", len(c.candidates)),
				slog.String("from", c.best.String()),
				slog.String("to", applicability.String()))
		}
		c.groups = c.groups[:0]
		c.candidates = c.candidates[:0]
		c.best = applicability
		c.retain(group, cand)
	case applicability == c.best:
		c.retain(group, cand)
	default:
		c.logger.Debug("candidate discarded",
			slog.String("candidate", cand.String()),
			slog.Int("group", group),
			slog.String("applicability", applicability.String()))
	}
	c.assertAligned()
}

func (c *Collector) retain(group int, cand *Candidate) {
	c.groups = append(c.groups, group)
	c.candidates = append(c.candidates, cand)
	c.logger.Debug("candidate retained",
		slog.String("candidate", cand.String()),
		slog.Int("group", group),
		slog.String("applicability", c.best.String()))
}

func (c *Collector) assertAligned() {
	if len(c.groups) != len(c.candidates) {
		panic(fmt.Sprintf("resolve: collector out of sync: %d groups, %d candidates", len(c.groups), len(c.candidates)))
	}
}

// BestCandidates returns every retained candidate from the lowest retained group.
// Ties within that group are all returned.
func (c *Collector) BestCandidates() []*Candidate {
	c.assertAligned()
	if len(c.candidates) == 0 {
		return nil
	}
	minGroup := c.groups[0]
	for _, g := range c.groups[1:] {
		if g < minGroup {
			minGroup = g
		}
	}
	var out []*Candidate
	for i, g := range c.groups {
		if g == minGroup {
			out = append(out, c.candidates[i])
		}
	}
	return out
}

// Applicability is the running best applicability.
func (c *Collector) Applicability() Applicability {
	return c.best
}

// Len is the number of retained candidates.
func (c *Collector) Len() int {
	return len(c.candidates)
}

// RetainedCandidate is a retained candidate with the group it was found in.
type RetainedCandidate struct {
	Group     int
	Candidate *Candidate
}

// Retained returns a copy of every retained candidate in arrival order.
func (c *Collector) Retained() []RetainedCandidate {
	c.assertAligned()
	out := make([]RetainedCandidate, len(c.candidates))
	for i := range c.candidates {
		out[i] = RetainedCandidate{Group: c.groups[i], Candidate: c.candidates[i]}
	}
	return out
}

// Call is the call descriptor the collector judges against.
func (c *Collector) Call() *Call {
	return c.call
}
