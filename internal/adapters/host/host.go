// Package host provides the ports.Host adapter for the running process.
package host

import (
	"os"
	"os/exec"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// OSHost reads process facts from the operating system.
type OSHost struct{}

// NewOSHost creates a new OSHost.
func NewOSHost() *OSHost {
	return &OSHost{}
}

// EUID returns the effective user id (-1 on platforms without one).
func (h *OSHost) EUID() int {
	return os.Geteuid()
}

// LookPath searches PATH for an executable.
func (h *OSHost) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Getenv returns the value of an environment variable.
func (h *OSHost) Getenv(key string) string {
	return os.Getenv(key)
}

// HomeDir returns the current user's home directory.
func (h *OSHost) HomeDir() (string, error) {
	return os.UserHomeDir()
}

// Ensure OSHost implements ports.Host.
var _ ports.Host = (*OSHost)(nil)
