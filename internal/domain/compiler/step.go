// Package compiler defines the step model that providers compile manifest
// sections into and that the execution engine runs.
package compiler

// Step represents an idempotent unit of provisioning work.
// Each step can check the current state, describe the change it would make,
// and apply that change.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// DependsOn returns the IDs of steps that must succeed before this one.
	DependsOn() []StepID

	// Check determines the current status of this step.
	// Returns StatusSatisfied if no action is needed, StatusNeedsApply otherwise.
	Check(ctx RunContext) (StepStatus, error)

	// Plan returns the diff describing what Apply will change.
	Plan(ctx RunContext) (Diff, error)

	// Apply performs the state transition. Running it again once the desired
	// state holds must have no additional effect.
	Apply(ctx RunContext) error

	// Explain returns human-readable context for this step.
	Explain(ctx ExplainContext) Explanation
}

// ComponentStep is implemented by steps that stand for a named component
// in the installation report (a package set, a tool, a font, ...).
type ComponentStep interface {
	Step

	// Component returns the report name of the component this step provisions.
	Component() string
}

// ComponentName returns the report name for a step, falling back to its ID.
func ComponentName(step Step) string {
	if c, ok := step.(ComponentStep); ok && c.Component() != "" {
		return c.Component()
	}
	if w, ok := step.(interface{ Unwrap() Step }); ok {
		return ComponentName(w.Unwrap())
	}
	return step.ID().String()
}

// VerifyingStep is implemented by steps whose installed state differs from
// their Check result, such as a checkout that exists but is behind upstream.
type VerifyingStep interface {
	Step

	// Verify reports whether the component is installed, with a detail for the report.
	Verify(ctx RunContext) (bool, string)
}

// Verify reports whether a step's component is installed. Steps without a
// Verify method are verified when Check is satisfied.
func Verify(step Step, ctx RunContext) (bool, string) {
	if v, ok := step.(VerifyingStep); ok {
		return v.Verify(ctx)
	}
	if w, ok := step.(interface{ Unwrap() Step }); ok {
		return Verify(w.Unwrap(), ctx)
	}
	status, err := step.Check(ctx)
	if err != nil {
		return false, err.Error()
	}
	if status != StatusSatisfied {
		return false, "not installed"
	}
	return true, ""
}
