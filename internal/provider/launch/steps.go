// Package launch starts the shell as a detached process at the end of a run.
package launch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// ErrNoCommand is returned when the launch section has no command.
var ErrNoCommand = errors.New("launch command is empty")

// ShellStep starts the shell unless an instance is already running.
type ShellStep struct {
	id        compiler.StepID
	launch    manifest.Launch
	dependsOn []compiler.StepID
	runner    ports.CommandRunner
	host      ports.Host
	launcher  ports.Launcher
}

// NewShellStep creates a new ShellStep.
func NewShellStep(launch manifest.Launch, runner ports.CommandRunner, host ports.Host, launcher ports.Launcher, dependsOn ...compiler.StepID) *ShellStep {
	name := "shell"
	if len(launch.Command) > 0 {
		name = launch.Command[len(launch.Command)-1]
	}
	return &ShellStep{
		id:        compiler.IDFor("launch", "start", name),
		launch:    launch,
		dependsOn: dependsOn,
		runner:    runner,
		host:      host,
		launcher:  launcher,
	}
}

// ID returns the step identifier.
func (s *ShellStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the app checkout the shell runs from.
func (s *ShellStep) DependsOn() []compiler.StepID {
	return s.dependsOn
}

// Component returns the report name.
func (s *ShellStep) Component() string {
	return "shell launch"
}

// Check reports whether a matching process is already running. When pgrep
// itself cannot run the shell is assumed not to be running.
func (s *ShellStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "pgrep", "-f", s.pattern())
	if err != nil {
		ctx.Logger().Debug(ctx.Context(), "pgrep unavailable", ports.Err(err))
		return compiler.StatusNeedsApply, nil
	}
	if result.Success() {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *ShellStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.Add("process", s.pattern(), strings.Join(s.Argv(), " ")), nil
}

// Apply starts the shell in the background.
func (s *ShellStep) Apply(ctx compiler.RunContext) error {
	argv := s.Argv()
	if len(argv) == 0 {
		return ErrNoCommand
	}
	pid, err := s.launcher.Start(ctx.Context(), argv[0], argv[1:]...)
	if err != nil {
		return fmt.Errorf("launch %s: %w", argv[0], err)
	}
	ctx.Logger().Info(ctx.Context(), "shell launched",
		ports.F("pid", pid), ports.F("command", strings.Join(argv, " ")))
	return nil
}

// Explain provides a human-readable explanation.
func (s *ShellStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"Launch shell",
		fmt.Sprintf("Starts %q in the background unless a process matching %q is running.",
			strings.Join(s.Argv(), " "), s.pattern()),
		nil,
	)
}

// Argv returns the command line, prefixed by the wrapper when the
// wrapper's binary is on PATH.
func (s *ShellStep) Argv() []string {
	if len(s.launch.Command) == 0 {
		return nil
	}
	argv := make([]string, 0, len(s.launch.Wrapper)+len(s.launch.Command))
	if len(s.launch.Wrapper) > 0 {
		if _, err := s.host.LookPath(s.launch.Wrapper[0]); err == nil {
			argv = append(argv, s.launch.Wrapper...)
		}
	}
	return append(argv, s.launch.Command...)
}

func (s *ShellStep) pattern() string {
	if s.launch.Match != "" {
		return s.launch.Match
	}
	return strings.Join(s.launch.Command, " ")
}

// Ensure ShellStep implements compiler.Step.
var _ compiler.Step = (*ShellStep)(nil)
