package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/funvibe/tower/internal/resolve"
	"github.com/funvibe/tower/internal/scenario"
)

// PipelineContext carries one scenario through the stages.
type PipelineContext struct {
	RunID    string
	FilePath string
	Source   []byte // when set, parsed instead of reading FilePath

	Scenario *scenario.Scenario
	World    *scenario.World
	Results  []*resolve.Collector // index-aligned with World.Sites
	Report   *Report

	Errors []error

	ctx    context.Context
	logger *slog.Logger
}

// NewPipelineContext prepares a run over the scenario at path. logger may be nil.
func NewPipelineContext(ctx context.Context, path string, logger *slog.Logger) *PipelineContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New().String()
	return &PipelineContext{
		RunID:    runID,
		FilePath: path,
		ctx:      ctx,
		logger:   logger.With(slog.String("run_id", runID), slog.String("file", path)),
	}
}

// Context is the context of the stage being run.
func (c *PipelineContext) Context() context.Context {
	return c.ctx
}

// Logger is tagged with the run id and file.
func (c *PipelineContext) Logger() *slog.Logger {
	return c.logger
}

func (c *PipelineContext) addError(err error) {
	c.Errors = append(c.Errors, err)
}
