// Package execution runs compiled steps in order and records their outcome.
package execution

import (
	"time"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
)

// StepResult captures the outcome of running a single step.
type StepResult struct {
	stepID    compiler.StepID
	component string
	status    compiler.StepStatus
	phase     Phase
	policy    compiler.FailurePolicy
	err       error
	duration  time.Duration
	diff      compiler.Diff
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID compiler.StepID, status compiler.StepStatus, err error) StepResult {
	return StepResult{
		stepID: stepID,
		status: status,
		err:    err,
		phase:  phaseForStatus(status),
	}
}

func phaseForStatus(status compiler.StepStatus) Phase {
	switch status {
	case compiler.StatusSatisfied:
		return PhaseSucceeded
	case compiler.StatusFailed:
		return PhaseFailed
	case compiler.StatusSkipped:
		return PhaseSkipped
	case compiler.StatusNeedsApply, compiler.StatusUnknown:
		return PhaseChecking
	}
	return PhasePending
}

// StepID returns the ID of the step that was executed.
func (r StepResult) StepID() compiler.StepID {
	return r.stepID
}

// Component returns the component name the step reports under.
func (r StepResult) Component() string {
	return r.component
}

// Status returns the final status of the step.
func (r StepResult) Status() compiler.StepStatus {
	return r.status
}

// Phase returns the lifecycle phase the step ended in.
func (r StepResult) Phase() Phase {
	return r.phase
}

// Policy returns how a failure of the step is treated.
func (r StepResult) Policy() compiler.FailurePolicy {
	return r.policy
}

// Error returns any error that occurred during execution.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step took to execute.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Diff returns the diff that was applied or, in dry-run mode, planned.
func (r StepResult) Diff() compiler.Diff {
	return r.diff
}

// Success returns true if the step's desired state is met.
func (r StepResult) Success() bool {
	return r.status == compiler.StatusSatisfied
}

// Applied returns true if Apply ran and succeeded.
func (r StepResult) Applied() bool {
	return r.phase == PhaseSucceeded
}

// Skipped returns true if the step was skipped because a dependency failed.
func (r StepResult) Skipped() bool {
	return r.status == compiler.StatusSkipped
}

// Failed returns true if Check or Apply failed.
func (r StepResult) Failed() bool {
	return r.status == compiler.StatusFailed
}

// Tolerated returns true for a failure that did not stop the run.
func (r StepResult) Tolerated() bool {
	return r.Failed() && r.policy == compiler.PolicyTolerated
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// WithDiff returns a new StepResult with diff set.
func (r StepResult) WithDiff(d compiler.Diff) StepResult {
	r.diff = d
	return r
}

// WithPhase returns a new StepResult with the lifecycle phase set.
func (r StepResult) WithPhase(p Phase) StepResult {
	r.phase = p
	return r
}

// WithPolicy returns a new StepResult with the failure policy set.
func (r StepResult) WithPolicy(p compiler.FailurePolicy) StepResult {
	r.policy = p
	return r
}

// WithComponent returns a new StepResult with the component name set.
func (r StepResult) WithComponent(name string) StepResult {
	r.component = name
	return r
}
