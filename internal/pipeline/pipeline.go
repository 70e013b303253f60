package pipeline

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/funvibe/tower/internal/config"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Name() string
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	logger := ctx.Logger()
	for _, processor := range p.processors {
		errorsBefore := len(ctx.Errors)
		spanCtx, span := otel.Tracer(config.TracerName).Start(ctx.Context(), "pipeline."+processor.Name(),
			trace.WithAttributes(
				attribute.String("run_id", ctx.RunID),
				attribute.String("file", ctx.FilePath),
			))
		parent := ctx.ctx
		ctx.ctx = spanCtx
		start := time.Now()

		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.

		ctx.ctx = parent
		if added := ctx.Errors[errorsBefore:]; len(added) > 0 {
			for _, err := range added {
				span.RecordError(err)
			}
			span.SetStatus(codes.Error, added[0].Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		logger.Debug("stage finished",
			slog.String("stage", processor.Name()),
			slog.Int("errors", len(ctx.Errors)-errorsBefore),
			slog.Duration("duration", time.Since(start)))
	}
	return ctx
}
