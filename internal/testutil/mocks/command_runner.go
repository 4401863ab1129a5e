// Package mocks provides test doubles for the ports interfaces.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// CommandHandler computes a result for a command that has no fixed result.
// It lets tests model host state that changes as commands run.
type CommandHandler func(dir string, args []string) (ports.CommandResult, error)

// CommandRunner is a thread-safe test double for ports.CommandRunner.
type CommandRunner struct {
	mu       sync.RWMutex
	results  map[string]ports.CommandResult
	errors   map[string]error
	handlers map[string]CommandHandler
	calls    []ports.CommandCall
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results:  make(map[string]ports.CommandResult),
		errors:   make(map[string]error),
		handlers: make(map[string]CommandHandler),
		calls:    make([]ports.CommandCall, 0),
	}
}

// AddResult registers an expected command and its result.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[buildKey(command, args)] = result
}

// AddError registers an expected command that should return an error.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[buildKey(command, args)] = err
}

// Handle registers a fallback handler for every invocation of command that
// has no exact result or error registered.
func (m *CommandRunner) Handle(command string, handler CommandHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[command] = handler
}

// Run executes a mock command.
func (m *CommandRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	return m.RunIn(ctx, "", command, args...)
}

// RunIn executes a mock command, recording the working directory.
func (m *CommandRunner) RunIn(_ context.Context, dir, command string, args ...string) (ports.CommandResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ports.CommandCall{
		Dir:     dir,
		Command: command,
		Args:    append([]string(nil), args...),
	})
	key := buildKey(command, args)
	err, hasErr := m.errors[key]
	result, hasResult := m.results[key]
	handler := m.handlers[command]
	m.mu.Unlock()

	if hasErr {
		return ports.CommandResult{}, err
	}
	if hasResult {
		return result, nil
	}
	if handler != nil {
		return handler(dir, args)
	}

	return ports.CommandResult{}, fmt.Errorf("no mock result for command: %s %v", command, args)
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallStrings returns the recorded invocations as command lines.
func (m *CommandRunner) CallStrings() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// CountCalls returns how many recorded command lines start with prefix.
func (m *CommandRunner) CountCalls(prefix string) int {
	n := 0
	for _, c := range m.CallStrings() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// ResetCalls clears recorded calls but keeps registered results.
func (m *CommandRunner) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make([]ports.CommandCall, 0)
}

func buildKey(command string, args []string) string {
	return command + ":" + strings.Join(args, ":")
}

// Ensure CommandRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*CommandRunner)(nil)
