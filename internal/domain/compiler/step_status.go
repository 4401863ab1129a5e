package compiler

// StepStatus is what Check reports about a step, or how running it ended.
type StepStatus string

const (
	// StatusSatisfied means the desired state already holds.
	StatusSatisfied StepStatus = "satisfied"
	// StatusNeedsApply means Apply must run to reach the desired state.
	StatusNeedsApply StepStatus = "needs-apply"
	// StatusUnknown means the state could not be determined; Apply runs anyway.
	StatusUnknown StepStatus = "unknown"
	// StatusFailed means Check or Apply returned an error.
	StatusFailed StepStatus = "failed"
	// StatusSkipped means a step it depends on did not complete.
	StatusSkipped StepStatus = "skipped"
)

// String returns the string representation of the status.
func (s StepStatus) String() string {
	return string(s)
}

// Pending reports whether Apply would run for a step in this status.
func (s StepStatus) Pending() bool {
	return s == StatusNeedsApply || s == StatusUnknown
}

// Phrase renders the status for people: "up to date", "will change", ...
func (s StepStatus) Phrase() string {
	switch s {
	case StatusSatisfied:
		return "up to date"
	case StatusNeedsApply:
		return "will change"
	case StatusUnknown:
		return "state unknown"
	case StatusFailed, StatusSkipped:
	}
	return string(s)
}
