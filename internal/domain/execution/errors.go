package execution

import (
	"fmt"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
)

// FatalError aborts a run. It wraps the error of a step whose failure
// policy is fatal.
type FatalError struct {
	StepID compiler.StepID
	Err    error
}

// Error implements error.
func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal step %s failed: %v", e.StepID, e.Err)
}

// Unwrap returns the step's error.
func (e *FatalError) Unwrap() error {
	return e.Err
}
