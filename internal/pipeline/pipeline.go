package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/ytcomments/internal/model"
)

// Step is one stage of an export.
// Steps are executed in sequence, each receiving the export filled in by
// the previous steps.
type Step interface {
	// Do executes the step. Any error aborts the export.
	Do(ctx context.Context, exp *model.Export) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order and stops at the first error.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence.
// The context is checked before each step; steps are expected to honor it
// while they run. The first error is returned unchanged and no later step runs.
func (p *Pipeline) Execute(ctx context.Context, exp *model.Export) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("export cancelled",
				"step", step.Name(),
				"video", exp.VideoID,
				"reason", err,
			)
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"video", exp.VideoID,
		)

		if err := step.Do(ctx, exp); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"video", exp.VideoID,
				"error", err,
			)
			return err
		}
	}

	exp.FinishedAt = time.Now()
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
