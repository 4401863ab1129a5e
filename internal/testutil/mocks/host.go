package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// ErrNotFound is returned by Host.LookPath for binaries that were not added.
var ErrNotFound = errors.New("executable file not found in $PATH")

// Host is a test double for ports.Host.
type Host struct {
	mu   sync.RWMutex
	euid int
	bins map[string]string
	env  map[string]string
	home string
}

// NewHost creates a Host running as an unprivileged user with home /home/tester.
func NewHost() *Host {
	return &Host{
		euid: 1000,
		bins: make(map[string]string),
		env:  make(map[string]string),
		home: "/home/tester",
	}
}

// SetEUID sets the effective user id.
func (h *Host) SetEUID(euid int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.euid = euid
}

// AddBinary makes name resolvable on PATH as /usr/bin/<name>.
func (h *Host) AddBinary(names ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, name := range names {
		h.bins[name] = "/usr/bin/" + name
	}
}

// SetEnv sets an environment variable.
func (h *Host) SetEnv(key, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.env[key] = value
}

// SetHome sets the home directory.
func (h *Host) SetHome(home string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.home = home
}

// EUID returns the configured effective user id.
func (h *Host) EUID() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.euid
}

// LookPath resolves binaries added with AddBinary.
func (h *Host) LookPath(name string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if p, ok := h.bins[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Getenv returns a configured environment variable.
func (h *Host) Getenv(key string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.env[key]
}

// HomeDir returns the configured home directory.
func (h *Host) HomeDir() (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.home, nil
}

// Launcher is a test double for ports.Launcher.
type Launcher struct {
	mu      sync.Mutex
	err     error
	started []ports.CommandCall
}

// NewLauncher creates a new Launcher mock.
func NewLauncher() *Launcher {
	return &Launcher{}
}

// FailWith makes every Start call return err.
func (l *Launcher) FailWith(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

// Start records the launch and returns a fake PID.
func (l *Launcher) Start(_ context.Context, command string, args ...string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return 0, l.err
	}
	l.started = append(l.started, ports.CommandCall{Command: command, Args: append([]string(nil), args...)})
	return 4242 + len(l.started), nil
}

// Started returns the recorded launches.
func (l *Launcher) Started() []ports.CommandCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ports.CommandCall, len(l.started))
	copy(out, l.started)
	return out
}

// Ensure the mocks implement their ports.
var (
	_ ports.Host     = (*Host)(nil)
	_ ports.Launcher = (*Launcher)(nil)
)
