package repo

import "fmt"

// GitError is returned when a git command fails.
type GitError struct {
	Op     string
	Path   string
	Output string
}

// Error implements error.
func (e *GitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("git %s %s failed", e.Op, e.Path)
	}
	return fmt.Sprintf("git %s %s failed: %s", e.Op, e.Path, e.Output)
}
