package pipeline

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/scenario"
	"github.com/funvibe/tower/internal/symbols"
	"github.com/funvibe/tower/internal/typesystem"
)

// suggestDistance bounds the edit distance of "did you mean" suggestions.
const suggestDistance = 2

// Report is the outcome of every call of a scenario.
type Report struct {
	Scenario string
	Calls    []CallReport
}

// CallReport describes the resolution of one call.
type CallReport struct {
	Call          string
	Outcome       resolve.Outcome
	Applicability resolve.Applicability
	Best          []CandidateReport
	Retained      int

	// Hint explains an unresolved call, e.g. a likely misspelling.
	Hint string

	// Mismatch is set when the result differs from the scenario's expectation.
	Mismatch string
}

// CandidateReport describes one best candidate.
type CandidateReport struct {
	Symbol        string
	Origin        string // declaring scope; empty for type members
	Binding       resolve.ReceiverBinding
	Group         int
	Applicability resolve.Applicability
	Substitution  string
	Diagnostics   []string
}

// buildReport summarizes results, which are aligned with the scenario's calls. Calls
// left unresolved by an interrupted run are nil and skipped.
func buildReport(s *scenario.Scenario, w *scenario.World, results []*resolve.Collector) *Report {
	r := &Report{Scenario: s.Name}
	for i, c := range results {
		if c == nil {
			continue
		}
		groups := make(map[*resolve.Candidate]int)
		for _, rc := range c.Retained() {
			groups[rc.Candidate] = rc.Group
		}
		cr := CallReport{
			Call:          c.Call().String(),
			Outcome:       resolve.Classify(c),
			Applicability: c.Applicability(),
			Retained:      c.Len(),
		}
		for _, cand := range c.BestCandidates() {
			app, _ := cand.Applicability()
			report := CandidateReport{
				Symbol:        cand.Symbol.SymbolName(),
				Origin:        origin(cand.Symbol),
				Binding:       cand.Binding,
				Group:         groups[cand],
				Applicability: app,
			}
			if subst, ok := cand.Substitution(); ok {
				report.Substitution = formatSubst(subst)
			}
			for _, d := range cand.Diagnostics {
				report.Diagnostics = append(report.Diagnostics, d.String())
			}
			cr.Best = append(cr.Best, report)
		}
		if cr.Outcome == resolve.Unresolved && w != nil && i < len(w.CallScopes) {
			cr.Hint = hint(w.CallScopes[i], c.Call())
		}
		if i < len(s.Calls) {
			cr.Mismatch = mismatch(s.Calls[i].Expect, cr)
		}
		r.Calls = append(r.Calls, cr)
	}
	return r
}

func origin(sym resolve.Symbol) string {
	if s, ok := sym.(*symbols.Symbol); ok && !s.IsMember() {
		return s.OriginModule
	}
	return ""
}

// hint looks the name up in the scope the call occurs in. Names reached through a
// receiver live in member scopes and get no hint.
func hint(scope *symbols.SymbolTable, call *resolve.Call) string {
	if call.HasExplicitReceiver() {
		return ""
	}
	syms, err := scope.Lookup(call.Name)
	var notFound *typesystem.SymbolNotFoundError
	if errors.As(err, &notFound) {
		if similar := scope.FindSimilarNames(call.Name, suggestDistance); len(similar) > 0 {
			return "did you mean: " + similar[0] + "?"
		}
		return err.Error()
	}
	if err != nil {
		return ""
	}
	var kinds []string
	for _, sym := range syms {
		if k := sym.Kind.String(); !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	return fmt.Sprintf("%s is declared as %s", call.Name, strings.Join(kinds, ", "))
}

func mismatch(expect *scenario.Expectation, cr CallReport) string {
	if expect == nil {
		return ""
	}
	var problems []string
	if expect.Outcome != "" && expect.Outcome != cr.Outcome.String() {
		problems = append(problems, fmt.Sprintf("expected outcome %s, got %s", expect.Outcome, cr.Outcome))
	}
	if expect.Best != nil {
		got := make([]string, len(cr.Best))
		for i, b := range cr.Best {
			got[i] = b.Symbol
		}
		if strings.Join(got, ",") != strings.Join(expect.Best, ",") {
			problems = append(problems, fmt.Sprintf("expected best [%s], got [%s]",
				strings.Join(expect.Best, ", "), strings.Join(got, ", ")))
		}
	}
	return strings.Join(problems, "; ")
}

// formatSubst prints s sorted by variable, as "a := Int, b := Bool".
func formatSubst(s typesystem.Subst) string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " := " + s[name].Apply(s).String()
	}
	return strings.Join(parts, ", ")
}

// Failed counts calls whose result contradicts the scenario.
func (r *Report) Failed() int {
	n := 0
	for _, c := range r.Calls {
		if c.Mismatch != "" {
			n++
		}
	}
	return n
}

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// Write prints the report. color enables ANSI colors.
func (r *Report) Write(w io.Writer, color bool) error {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "scenario %s\n", r.Scenario)
	for _, c := range r.Calls {
		status := paint(colorGreen, c.Outcome.String())
		if c.Mismatch != "" {
			status = paint(colorRed, c.Outcome.String())
		}
		fmt.Fprintf(&sb, "  %s: %s (%s, %d retained)\n", c.Call, status, c.Applicability, c.Retained)
		for _, b := range c.Best {
			fmt.Fprintf(&sb, "    %s", b.Symbol)
			if b.Origin != "" {
				fmt.Fprintf(&sb, " from %s", b.Origin)
			}
			fmt.Fprintf(&sb, " [%s, group %d, %s]", b.Binding, b.Group, b.Applicability)
			if b.Substitution != "" {
				fmt.Fprintf(&sb, " %s", paint(colorGray, b.Substitution))
			}
			sb.WriteString("\n")
			for _, d := range b.Diagnostics {
				fmt.Fprintf(&sb, "      %s\n", paint(colorGray, d))
			}
		}
		if c.Hint != "" {
			fmt.Fprintf(&sb, "    %s\n", paint(colorGray, c.Hint))
		}
		if c.Mismatch != "" {
			fmt.Fprintf(&sb, "    %s\n", paint(colorRed, c.Mismatch))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
