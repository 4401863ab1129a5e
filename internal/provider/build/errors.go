package build

import "fmt"

// BuildError is returned when a tool could not be built or installed and no
// fallback was available.
type BuildError struct {
	Tool   string
	Stage  string
	Output string
}

// Error implements error.
func (e *BuildError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("build %s: %s failed", e.Tool, e.Stage)
	}
	return fmt.Sprintf("build %s: %s failed: %s", e.Tool, e.Stage, e.Output)
}
