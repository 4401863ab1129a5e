package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/axsetup/internal/adapters/logging"
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// WarnMarker prefixes log messages for tolerated failures.
const WarnMarker = "⚠"

// Observer is notified as steps start and finish. Callbacks run on the
// runner's goroutine.
type Observer interface {
	StepStarted(step compiler.Step, index, total int)
	StepFinished(result StepResult, index, total int)
}

// RunResult is the outcome of a run.
type RunResult struct {
	Results []StepResult
	// Fatal is set when a fatal step failed and the run stopped.
	Fatal *FatalError
	// Cancelled is set when the context ended before all steps ran.
	Cancelled bool
}

// Err returns the error that stopped the run, if any.
func (r RunResult) Err() error {
	if r.Fatal != nil {
		return r.Fatal
	}
	if r.Cancelled {
		return context.Canceled
	}
	return nil
}

// Count returns the number of results matching fn.
func (r RunResult) Count(fn func(StepResult) bool) int {
	n := 0
	for _, res := range r.Results {
		if fn(res) {
			n++
		}
	}
	return n
}

// Applied returns the number of steps whose Apply succeeded.
func (r RunResult) Applied() int { return r.Count(StepResult.Applied) }

// Failed returns the number of failed steps.
func (r RunResult) Failed() int { return r.Count(StepResult.Failed) }

// Skipped returns the number of steps skipped because a dependency failed.
func (r RunResult) Skipped() int { return r.Count(StepResult.Skipped) }

// Unchanged returns the number of steps whose check was already satisfied.
func (r RunResult) Unchanged() int {
	return r.Count(func(res StepResult) bool {
		return res.Success() && res.Phase() == PhaseSkipped
	})
}

// Runner runs steps strictly in order, one at a time.
type Runner struct {
	dryRun    bool
	logger    ports.Logger
	observers []Observer
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(logger ports.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{logger: logger}
}

// WithDryRun returns a Runner that checks and plans steps without applying them.
func (r *Runner) WithDryRun(dryRun bool) *Runner {
	c := *r
	c.dryRun = dryRun
	return &c
}

// WithObserver returns a Runner that also notifies o.
func (r *Runner) WithObserver(o Observer) *Runner {
	c := *r
	c.observers = append(append([]Observer(nil), r.observers...), o)
	return &c
}

// Run executes the steps. Tolerated failures are logged and the run
// continues; a fatal failure stops it. Steps depending on a failed or
// skipped step are skipped without being checked.
func (r *Runner) Run(ctx context.Context, steps []compiler.Step) RunResult {
	result := RunResult{Results: make([]StepResult, 0, len(steps))}
	blocked := make(map[string]bool)

	runCtx := compiler.NewRunContext(ports.ContextWithLogger(ctx, r.logger)).WithDryRun(r.dryRun)
	total := len(steps)

	for i, step := range steps {
		if ctx.Err() != nil {
			result.Cancelled = true
			r.logger.Warn(ctx, "run cancelled", ports.F("remaining", total-i))
			return result
		}

		for _, o := range r.observers {
			o.StepStarted(step, i, total)
		}

		res := r.runStep(ctx, runCtx, step, blocked)
		result.Results = append(result.Results, res)

		for _, o := range r.observers {
			o.StepFinished(res, i, total)
		}

		if res.Failed() || res.Skipped() {
			blocked[step.ID().String()] = true
		}

		if res.Failed() && res.Policy() == compiler.PolicyFatal {
			result.Fatal = &FatalError{StepID: step.ID(), Err: res.Error()}
			r.logger.Error(ctx, "fatal step failed, aborting run",
				ports.F("step", step.ID().String()), ports.Err(res.Error()))
			return result
		}
	}

	return result
}

func (r *Runner) runStep(ctx context.Context, runCtx compiler.RunContext, step compiler.Step, blocked map[string]bool) StepResult {
	id := step.ID()
	policy := compiler.PolicyOf(step)

	base := NewStepResult(id, compiler.StatusUnknown, nil).
		WithPolicy(policy).
		WithComponent(compiler.ComponentName(step))

	lc, err := NewLifecycle(id)
	if err != nil {
		return r.fail(ctx, base, err, 0)
	}
	defer lc.Close()

	finish := func(status compiler.StepStatus, err error) StepResult {
		res := base.WithPhase(lc.Phase()).WithDuration(lc.Duration())
		res.status = status
		res.err = err
		return res
	}

	for _, dep := range step.DependsOn() {
		if blocked[dep.String()] {
			lc.Fire(EventSkip)
			r.logger.Info(ctx, "skipping step, dependency did not complete",
				ports.F("step", id.String()), ports.F("dependency", dep.String()))
			return finish(compiler.StatusSkipped, nil)
		}
	}

	lc.Fire(EventCheck)
	status, err := step.Check(runCtx)
	if err != nil {
		lc.Fire(EventFail)
		return r.fail(ctx, finish(compiler.StatusFailed, nil), fmt.Errorf("check: %w", err), lc.Duration())
	}

	if status == compiler.StatusSatisfied {
		lc.Fire(EventSatisfied)
		r.logger.Debug(ctx, "step already satisfied", ports.F("step", id.String()))
		return finish(compiler.StatusSatisfied, nil)
	}

	diff, err := step.Plan(runCtx)
	if err != nil {
		r.logger.Debug(ctx, "could not plan step", ports.F("step", id.String()), ports.Err(err))
	}

	if r.dryRun {
		r.logger.Info(ctx, "would apply step", ports.F("step", id.String()), ports.F("change", diff.Summary()))
		return finish(status, nil).WithDiff(diff)
	}

	lc.Fire(EventAct)
	r.logger.Info(ctx, "applying step", ports.F("step", id.String()))
	start := time.Now()
	if err := step.Apply(runCtx); err != nil {
		lc.Fire(EventFail)
		return r.fail(ctx, finish(compiler.StatusFailed, nil), err, time.Since(start))
	}
	lc.Fire(EventSucceed)
	return finish(compiler.StatusSatisfied, nil).WithDiff(diff)
}

// fail marks res as failed and logs it according to its policy.
func (r *Runner) fail(ctx context.Context, res StepResult, err error, d time.Duration) StepResult {
	res.status = compiler.StatusFailed
	res.err = err
	res.phase = PhaseFailed
	if d > 0 {
		res.duration = d
	}

	if res.policy == compiler.PolicyTolerated && !errors.Is(err, context.Canceled) {
		r.logger.Warn(ctx, WarnMarker+" step failed, continuing",
			ports.F("step", res.stepID.String()), ports.Err(err))
	}
	return res
}
