package pipeline

import (
	"errors"
	"log/slog"

	"github.com/funvibe/tower/internal/checks"
	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/scenario"
)

var errNoWorld = errors.New("nothing to resolve: scenario was not built")

// LoadProcessor parses and validates the scenario.
type LoadProcessor struct{}

func (LoadProcessor) Name() string { return "load" }

func (LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	var (
		s   *scenario.Scenario
		err error
	)
	if ctx.Source != nil {
		s, err = scenario.Parse(ctx.Source, ctx.FilePath)
	} else {
		s, err = scenario.Load(ctx.FilePath)
	}
	if err != nil {
		ctx.addError(err)
		return ctx
	}
	ctx.Scenario = s
	ctx.Logger().Info("scenario loaded",
		slog.String("scenario", s.Name),
		slog.Int("types", len(s.Types)),
		slog.Int("scopes", len(s.Scopes)),
		slog.Int("calls", len(s.Calls)))
	return ctx
}

// BuildProcessor turns the scenario into symbol tables and call sites.
type BuildProcessor struct{}

func (BuildProcessor) Name() string { return "build" }

func (BuildProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Scenario == nil {
		return ctx
	}
	w, err := ctx.Scenario.Build()
	if err != nil {
		ctx.addError(err)
		return ctx
	}
	ctx.World = w
	return ctx
}

// ResolveProcessor resolves every call site of the built scenario.
type ResolveProcessor struct {
	// Concurrency bounds parallel resolution, see resolve.BatchOptions.
	Concurrency int
}

func (ResolveProcessor) Name() string { return "resolve" }

func (p ResolveProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.World == nil {
		if len(ctx.Errors) == 0 {
			ctx.addError(errNoWorld)
		}
		return ctx
	}
	results, err := resolve.ResolveAll(ctx.Context(), ctx.World.Sites, resolve.BatchOptions{
		Components: &resolve.Components{
			Types:  ctx.World.Types,
			Checks: checks.NewProvider(ctx.World.Types),
			Logger: ctx.Logger(),
		},
		Concurrency: p.Concurrency,
	})
	if err != nil {
		ctx.addError(err)
	}
	// After cancellation the sites that did resolve are still reported.
	ctx.Results = results
	return ctx
}

// ReportProcessor summarizes the results and checks the scenario's expectations.
// It assigns each best candidate the substitution its constraint system inferred.
type ReportProcessor struct{}

func (ReportProcessor) Name() string { return "report" }

func (ReportProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Results == nil || ctx.Scenario == nil {
		return ctx
	}
	for _, c := range ctx.Results {
		if c == nil {
			continue
		}
		for _, cand := range c.BestCandidates() {
			if _, ok := cand.Substitution(); !ok {
				cand.SetSubstitution(cand.ConstraintSystem().Substitution())
			}
		}
	}
	ctx.Report = buildReport(ctx.Scenario, ctx.World, ctx.Results)
	ctx.Logger().Info("scenario resolved",
		slog.String("scenario", ctx.Scenario.Name),
		slog.Int("calls", len(ctx.Report.Calls)),
		slog.Int("failed", ctx.Report.Failed()))
	return ctx
}

// ResolvePipeline loads, builds, resolves and reports.
func ResolvePipeline(concurrency int) *Pipeline {
	return New(LoadProcessor{}, BuildProcessor{}, ResolveProcessor{Concurrency: concurrency}, ReportProcessor{})
}

// ValidatePipeline only loads and builds.
func ValidatePipeline() *Pipeline {
	return New(LoadProcessor{}, BuildProcessor{})
}
