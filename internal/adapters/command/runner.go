// Package command runs and launches host processes.
package command

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// RealRunner runs commands to completion and captures their output.
type RealRunner struct {
	env []string
}

// NewRealRunner creates a RealRunner. Commands run with LC_ALL=C so the
// output steps parse (pacman -Q, systemctl is-enabled, --version) is not
// localized.
func NewRealRunner() *RealRunner {
	return &RealRunner{env: append(os.Environ(), "LC_ALL=C")}
}

// Run executes command in the current working directory.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	return r.RunIn(ctx, "", command, args...)
}

// RunIn executes command in dir. A non-zero exit is reported in the result;
// the error is set only when the command could not run or ctx ended it.
func (r *RealRunner) RunIn(ctx context.Context, dir, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Env = r.env

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := ports.CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		err = nil
	}

	if logger := ports.LoggerFromContext(ctx); logger != nil {
		call := ports.CommandCall{Dir: dir, Command: command, Args: args}
		fields := []ports.Field{
			ports.F("cmd", call.String()),
			ports.F("exit_code", result.ExitCode),
			ports.F("duration", time.Since(start).Round(time.Millisecond).String()),
		}
		if err != nil {
			fields = append(fields, ports.Err(err))
		}
		logger.Debug(ctx, "command finished", fields...)
	}
	return result, err
}

var _ ports.CommandRunner = (*RealRunner)(nil)
