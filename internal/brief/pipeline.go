package brief

import (
	"context"
	"log/slog"

	"github.com/glitchsec/osintkit/internal/model"
)

// Step defines the interface that all briefing steps must implement.
// Steps are executed in sequence, with each step receiving the
// accumulated brief from previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state (provider, limits)
// 2. It provides a Name() method for logging and error attribution
// 3. It's more extensible for future features (e.g., step dependencies)
type Step interface {
	// Do executes the briefing step.
	// It receives the context for cancellation, and the brief to modify.
	// Returns an error if the step fails critically; non-critical errors
	// should be recorded on the brief and return nil.
	Do(ctx context.Context, b *model.Brief) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. Failed steps are logged and their errors
// recorded on the brief, but subsequent steps still execute.
//
// Design decision: Briefing defaults to continue-on-error, the opposite
// of a scan pipeline. Each step hits a different provider, so a missing
// Hunter key should never block the Shodan and Perplexity sections.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: true,
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
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It respects context cancellation and logs each step's execution.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps ran (step errors are recorded on the brief).
func (p *Pipeline) Execute(ctx context.Context, b *model.Brief) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("briefing cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"subject", b.Name,
		)

		if err := step.Do(ctx, b); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"subject", b.Name,
				"error", err,
			)

			b.RecordStepError(step.Name(), err)

			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed",
				"step", step.Name(),
				"subject", b.Name,
			)
		}

		b.PerformedSteps = append(b.PerformedSteps, step.Name())
	}

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
