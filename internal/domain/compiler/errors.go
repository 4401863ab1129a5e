package compiler

import (
	"fmt"
	"strings"
)

// Error codes for compiler operations.
const (
	ErrCodeProviderFailed    = "PROVIDER_FAILED"
	ErrCodeStepDuplicate     = "STEP_DUPLICATE"
	ErrCodeDependencyMissing = "DEPENDENCY_MISSING"
	ErrCodeDependencyOrder   = "DEPENDENCY_ORDER"
)

// StepError represents a compile error with an actionable suggestion.
type StepError struct {
	Code       string
	Message    string
	Provider   string
	StepID     string
	Suggestion string
	Underlying error
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	var parts []string
	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider %q", e.Provider))
	}
	if e.StepID != "" {
		parts = append(parts, fmt.Sprintf("step %q", e.StepID))
	}

	msg := e.Message
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ") + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying error for error chain support.
func (e *StepError) Unwrap() error {
	return e.Underlying
}

// Is matches another StepError by code.
func (e *StepError) Is(target error) bool {
	t, ok := target.(*StepError)
	return ok && t.Code == e.Code
}

// Format returns a fully formatted error with all details.
func (e *StepError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Provider != "" {
		fmt.Fprintf(&b, "\n  Provider: %s", e.Provider)
	}
	if e.StepID != "" {
		fmt.Fprintf(&b, "\n  Step: %s", e.StepID)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}
	return b.String()
}

// NewProviderFailedError creates an error for provider compilation failure.
func NewProviderFailedError(provider string, err error) *StepError {
	return &StepError{
		Code:       ErrCodeProviderFailed,
		Message:    "provider failed to compile steps",
		Provider:   provider,
		Suggestion: fmt.Sprintf("Check the %s section of the manifest.", provider),
		Underlying: err,
	}
}

// NewStepDuplicateError creates an error for a duplicate step ID.
func NewStepDuplicateError(provider, stepID string) *StepError {
	return &StepError{
		Code:       ErrCodeStepDuplicate,
		Message:    "step with this ID already exists",
		Provider:   provider,
		StepID:     stepID,
		Suggestion: "Give every tool, font and service a unique name.",
	}
}

// NewDependencyMissingError creates an error for a dependency that no
// provider compiled.
func NewDependencyMissingError(stepID, dependsOn string) *StepError {
	return &StepError{
		Code:       ErrCodeDependencyMissing,
		Message:    fmt.Sprintf("step depends on %q which does not exist", dependsOn),
		StepID:     stepID,
		Suggestion: "This may indicate a missing repository entry in the manifest.",
	}
}

// NewDependencyOrderError creates an error for a dependency that would
// only run after the step needing it.
func NewDependencyOrderError(stepID, dependsOn string) *StepError {
	return &StepError{
		Code:       ErrCodeDependencyOrder,
		Message:    fmt.Sprintf("step depends on %q which runs later", dependsOn),
		StepID:     stepID,
		Suggestion: "Register the provider of the dependency first.",
	}
}
