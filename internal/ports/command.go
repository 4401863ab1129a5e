// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"strings"
)

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Output returns trimmed stderr, falling back to stdout when stderr is empty.
// Used to build error messages from failed commands.
func (r CommandResult) Output() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}

// CommandCall records a command invocation.
type CommandCall struct {
	Dir     string
	Command string
	Args    []string
}

// String returns the command line as a single string.
func (c CommandCall) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// CommandRunner executes shell commands.
// A non-zero exit code is reported through CommandResult, not as an error.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// RunIn executes the command with dir as its working directory.
	RunIn(ctx context.Context, dir, command string, args ...string) (CommandResult, error)
}

// Launcher starts detached background processes.
type Launcher interface {
	// Start launches the command without waiting for it and returns its PID.
	Start(ctx context.Context, command string, args ...string) (int, error)
}
