package compiler

// FailurePolicy says what a failed Apply means for the rest of the run.
type FailurePolicy int

const (
	// PolicyTolerated logs the failure and continues with the next step.
	PolicyTolerated FailurePolicy = iota
	// PolicyFatal aborts the run.
	PolicyFatal
)

// String returns the string representation of the policy.
func (p FailurePolicy) String() string {
	if p == PolicyFatal {
		return "fatal"
	}
	return "tolerated"
}

// PolicyStep is implemented by steps that declare their own failure policy.
type PolicyStep interface {
	Step
	Policy() FailurePolicy
}

// PolicyOf returns the failure policy of a step. Steps that do not declare
// one are tolerated.
func PolicyOf(step Step) FailurePolicy {
	if p, ok := step.(PolicyStep); ok {
		return p.Policy()
	}
	return PolicyTolerated
}

// fatalStep marks a wrapped step as fatal.
type fatalStep struct {
	Step
}

// Fatal wraps a step so that its failure aborts the run.
func Fatal(step Step) Step {
	return fatalStep{Step: step}
}

// Policy returns PolicyFatal.
func (fatalStep) Policy() FailurePolicy {
	return PolicyFatal
}

// Unwrap returns the wrapped step.
func (f fatalStep) Unwrap() Step {
	return f.Step
}
