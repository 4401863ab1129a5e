package execution

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
)

// PlanEntry is one step's checked state and the change Apply would make.
type PlanEntry struct {
	step   compiler.Step
	status compiler.StepStatus
	diff   compiler.Diff
	err    error
}

// NewPlanEntry creates a new PlanEntry.
func NewPlanEntry(step compiler.Step, status compiler.StepStatus, diff compiler.Diff) PlanEntry {
	return PlanEntry{step: step, status: status, diff: diff}
}

// Step returns the checked step.
func (e PlanEntry) Step() compiler.Step { return e.step }

// Status returns the status Check reported.
func (e PlanEntry) Status() compiler.StepStatus { return e.status }

// Diff returns the planned change. It is empty unless the step needs apply.
func (e PlanEntry) Diff() compiler.Diff { return e.diff }

// Err returns the error that made the step's state undeterminable.
func (e PlanEntry) Err() error { return e.err }

// WithErr returns a copy of the entry carrying a check error.
func (e PlanEntry) WithErr(err error) PlanEntry {
	e.err = err
	return e
}

// PlanSummary counts plan entries by status.
type PlanSummary struct {
	Total      int
	NeedsApply int
	Satisfied  int
	Unknown    int
	Failed     int
	Skipped    int
}

func (s *PlanSummary) count(status compiler.StepStatus) {
	s.Total++
	switch status {
	case compiler.StatusNeedsApply:
		s.NeedsApply++
	case compiler.StatusSatisfied:
		s.Satisfied++
	case compiler.StatusUnknown:
		s.Unknown++
	case compiler.StatusFailed:
		s.Failed++
	case compiler.StatusSkipped:
		s.Skipped++
	}
}

// String renders the summary as "6 total, 4 to apply, 2 satisfied".
// Unknown and failed counts are added only when non-zero.
func (s PlanSummary) String() string {
	parts := []string{
		fmt.Sprintf("%d total", s.Total),
		fmt.Sprintf("%d to apply", s.NeedsApply),
		fmt.Sprintf("%d satisfied", s.Satisfied),
	}
	if s.Unknown > 0 {
		parts = append(parts, fmt.Sprintf("%d unknown", s.Unknown))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	return strings.Join(parts, ", ")
}

// Plan is the ordered result of checking every step without applying any.
type Plan struct {
	entries []PlanEntry
	summary PlanSummary
}

// NewExecutionPlan creates an empty Plan.
func NewExecutionPlan() *Plan {
	return &Plan{}
}

// Add appends an entry and counts it in the summary.
func (p *Plan) Add(entry PlanEntry) {
	p.entries = append(p.entries, entry)
	p.summary.count(entry.status)
}

// Len returns the number of entries.
func (p *Plan) Len() int { return len(p.entries) }

// IsEmpty reports whether the plan has no entries.
func (p *Plan) IsEmpty() bool { return len(p.entries) == 0 }

// Entries returns the entries in step order.
func (p *Plan) Entries() []PlanEntry { return p.entries }

// Pending returns the entries Apply would run: those needing apply and
// those whose state could not be determined.
func (p *Plan) Pending() []PlanEntry {
	var pending []PlanEntry
	for _, e := range p.entries {
		if e.status.Pending() {
			pending = append(pending, e)
		}
	}
	return pending
}

// HasChanges reports whether Apply would run any step.
func (p *Plan) HasChanges() bool {
	return p.summary.NeedsApply+p.summary.Unknown > 0
}

// Summary returns the per-status counts.
func (p *Plan) Summary() PlanSummary { return p.summary }
