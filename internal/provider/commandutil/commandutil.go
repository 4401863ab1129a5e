// Package commandutil classifies errors from running external commands.
package commandutil

import (
	"errors"
	"os"
	"os/exec"
)

// IsCommandNotFound reports whether an error indicates a missing executable.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return false
}

// Describe renders a run error for a report line. A missing executable
// reads as "<name> is not installed" instead of the raw exec error.
func Describe(name string, err error) string {
	if err == nil {
		return ""
	}
	if IsCommandNotFound(err) {
		return name + " is not installed"
	}
	return err.Error()
}
