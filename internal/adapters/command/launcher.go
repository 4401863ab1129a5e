package command

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// RealLauncher starts processes that outlive axsetup.
type RealLauncher struct{}

// NewRealLauncher creates a new RealLauncher.
func NewRealLauncher() *RealLauncher {
	return &RealLauncher{}
}

// Start launches the command detached from the current session.
// The process is not tied to ctx: cancelling the run must not kill the shell.
func (l *RealLauncher) Start(ctx context.Context, command string, args ...string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cmd := exec.Command(command, args...) //nolint:noctx // detached on purpose
	cmd.SysProcAttr = detachedAttr()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", command, err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("release %s: %w", command, err)
	}
	return pid, nil
}

// Ensure RealLauncher implements ports.Launcher.
var _ ports.Launcher = (*RealLauncher)(nil)
