package execution

import (
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
)

// Phase is a position in a step's lifecycle.
type Phase string

const (
	// PhasePending is the initial phase of every step.
	PhasePending Phase = "pending"
	// PhaseChecking means the idempotency check is running.
	PhaseChecking Phase = "checking"
	// PhaseSkipped means the step had nothing to do: the check was
	// satisfied or a dependency failed.
	PhaseSkipped Phase = "skipped"
	// PhaseActing means Apply is running.
	PhaseActing Phase = "acting"
	// PhaseSucceeded means Apply completed.
	PhaseSucceeded Phase = "succeeded"
	// PhaseFailed means Check or Apply returned an error.
	PhaseFailed Phase = "failed"
)

// IsTerminal reports whether no further transitions leave the phase.
func (p Phase) IsTerminal() bool {
	return p == PhaseSkipped || p == PhaseSucceeded || p == PhaseFailed
}

// Lifecycle events.
const (
	EventCheck     = "CHECK"
	EventSatisfied = "SATISFIED"
	EventAct       = "ACT"
	EventSucceed   = "SUCCEED"
	EventFail      = "FAIL"
	EventSkip      = "SKIP"
)

// lifecycleContext is the statekit context type. Actions write through the
// captured *Lifecycle instead.
type lifecycleContext struct{}

// Lifecycle is the per-step state machine:
//
//	pending -> checking -> skipped
//	                    -> acting -> succeeded | failed
//	pending -> skipped (dependency failed)
//	checking -> failed (check error)
//
// Transitions only move forward. Events that are not valid in the current
// phase are ignored.
type Lifecycle struct {
	stepID compiler.StepID
	interp *statekit.Interpreter[lifecycleContext]

	mu         sync.Mutex
	history    []Phase
	startedAt  time.Time
	finishedAt time.Time
}

// NewLifecycle builds and starts the state machine for one step.
func NewLifecycle(stepID compiler.StepID) (*Lifecycle, error) {
	l := &Lifecycle{stepID: stepID}

	machine, err := statekit.NewMachine[lifecycleContext]("step-lifecycle").
		WithInitial("pending").
		WithContext(lifecycleContext{}).
		WithAction("markStarted", func(_ *lifecycleContext, _ statekit.Event) {
			l.markStarted()
		}).
		WithAction("markFinished", func(_ *lifecycleContext, _ statekit.Event) {
			l.markFinished()
		}).
		State("pending").
		On(EventCheck).Target("checking").
		On(EventSkip).Target("skipped").Done().
		State("checking").
		OnEntry("markStarted").
		On(EventSatisfied).Target("skipped").
		On(EventAct).Target("acting").
		On(EventFail).Target("failed").Done().
		State("acting").
		On(EventSucceed).Target("succeeded").
		On(EventFail).Target("failed").Done().
		State("skipped").
		OnEntry("markFinished").Done().
		State("succeeded").
		OnEntry("markFinished").Done().
		State("failed").
		OnEntry("markFinished").Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("build lifecycle for %s: %w", stepID, err)
	}

	l.interp = statekit.NewInterpreter(machine)
	l.interp.Start()
	l.history = []Phase{PhasePending}
	return l, nil
}

// StepID returns the step this lifecycle tracks.
func (l *Lifecycle) StepID() compiler.StepID {
	return l.stepID
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	return Phase(l.interp.State().Value)
}

// Fire sends an event and reports whether it caused a transition.
func (l *Lifecycle) Fire(event string) bool {
	before := l.Phase()
	if before.IsTerminal() {
		return false
	}
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
	after := l.Phase()
	if after == before {
		return false
	}

	l.mu.Lock()
	l.history = append(l.history, after)
	l.mu.Unlock()
	return true
}

// History returns the phases the step passed through, starting with pending.
func (l *Lifecycle) History() []Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Phase, len(l.history))
	copy(out, l.history)
	return out
}

// Duration returns the time between entering checking and reaching a
// terminal phase. It is zero for steps skipped before checking.
func (l *Lifecycle) Duration() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.startedAt.IsZero() || l.finishedAt.IsZero() {
		return 0
	}
	return l.finishedAt.Sub(l.startedAt)
}

// Close stops the interpreter.
func (l *Lifecycle) Close() {
	l.interp.Stop()
}

func (l *Lifecycle) markStarted() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startedAt = time.Now()
}

func (l *Lifecycle) markFinished() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.finishedAt = time.Now()
}
