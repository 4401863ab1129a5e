// Package app provides the main application logic for axsetup.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/axsetup/internal/adapters/command"
	"github.com/felixgeelhaar/axsetup/internal/adapters/filesystem"
	"github.com/felixgeelhaar/axsetup/internal/adapters/host"
	"github.com/felixgeelhaar/axsetup/internal/adapters/logging"
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/execution"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/domain/platform"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/provider/build"
	"github.com/felixgeelhaar/axsetup/internal/provider/fonts"
	"github.com/felixgeelhaar/axsetup/internal/provider/launch"
	"github.com/felixgeelhaar/axsetup/internal/provider/packages"
	"github.com/felixgeelhaar/axsetup/internal/provider/rcfile"
	"github.com/felixgeelhaar/axsetup/internal/provider/repo"
	"github.com/felixgeelhaar/axsetup/internal/provider/service"
)

// ErrRunningAsRoot is returned when axsetup is started with euid 0.
var ErrRunningAsRoot = errors.New("axsetup must not be run as root; it calls sudo itself where needed")

// Deps are the host adapters the workflow runs against.
type Deps struct {
	Runner   ports.CommandRunner
	FS       ports.FileSystem
	Host     ports.Host
	Launcher ports.Launcher
	Logger   ports.Logger
}

// RealDeps returns adapters for the local machine.
func RealDeps(logger ports.Logger) Deps {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return Deps{
		Runner:   command.NewRealRunner(),
		FS:       filesystem.NewRealFileSystem(),
		Host:     host.NewOSHost(),
		Launcher: command.NewRealLauncher(),
		Logger:   logger,
	}
}

// ApplyOptions configures a run.
type ApplyOptions struct {
	DryRun    bool
	NoLaunch  bool
	Observers []execution.Observer
}

// RunSummary is the outcome of Apply.
type RunSummary struct {
	RunID   string
	Manager *platform.PackageManager
	Result  execution.RunResult
	Report  *execution.InstallationReport
	// Launch is nil when the shell was not launched.
	Launch *execution.StepResult
}

// Setup is the main application orchestrator.
type Setup struct {
	manifest *manifest.Manifest
	deps     Deps
	logger   ports.Logger
	runID    string
	out      io.Writer
}

// New creates a Setup for m and resolves ~ in its paths against the host's
// home directory. Every run gets a fresh run ID that is attached to all log
// entries.
func New(m *manifest.Manifest, out io.Writer, deps Deps) *Setup {
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	runID := uuid.NewString()
	logger := deps.Logger.With(ports.F("run_id", runID))

	if home, err := deps.Host.HomeDir(); err != nil {
		logger.Warn(context.Background(), execution.WarnMarker+" could not resolve home directory", ports.Err(err))
	} else {
		m.ExpandHome(home)
	}

	return &Setup{
		manifest: m,
		deps:     deps,
		logger:   logger,
		runID:    runID,
		out:      out,
	}
}

// RunID returns the identifier attached to this run's log entries.
func (s *Setup) RunID() string {
	return s.runID
}

// Manifest returns the manifest being provisioned.
func (s *Setup) Manifest() *manifest.Manifest {
	return s.manifest
}

// Preconditions checks the conditions without which nothing can run: the
// process must not be root and a supported package manager must exist.
func (s *Setup) Preconditions() (*platform.PackageManager, error) {
	if s.deps.Host.EUID() == 0 {
		return nil, ErrRunningAsRoot
	}
	pm, err := platform.Detect(s.deps.Host, s.deps.FS)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(context.Background(), "detected package manager",
		ports.F("manager", pm.String()), ports.F("distribution", pm.Release.DisplayName()))
	return pm, nil
}

// Compile builds the ordered provisioning steps: packages, tool checkouts
// with their builds, the app checkout, fonts, services and rc lines.
func (s *Setup) Compile(pm *platform.PackageManager) ([]compiler.Step, error) {
	c := compiler.NewCompiler()
	c.RegisterProvider(packages.NewProvider(s.deps.Runner))
	c.RegisterProvider(build.NewProvider(s.deps.FS, s.deps.Runner, s.deps.Host))
	c.RegisterProvider(repo.NewProvider(s.deps.FS, s.deps.Runner))
	c.RegisterProvider(fonts.NewProvider(s.deps.FS, s.deps.Runner))
	c.RegisterProvider(service.NewProvider(s.deps.Runner))
	c.RegisterProvider(rcfile.NewProvider(s.deps.FS))
	return c.Compile(compiler.NewCompileContext(s.manifest, pm))
}

// compileLaunch returns the launch step, which runs after verification.
func (s *Setup) compileLaunch(pm *platform.PackageManager) ([]compiler.Step, error) {
	p := launch.NewProvider(s.deps.Runner, s.deps.Host, s.deps.Launcher)
	return p.Compile(compiler.NewCompileContext(s.manifest, pm))
}

// Plan checks every step, including the launch, without changing anything.
func (s *Setup) Plan(ctx context.Context) (*execution.Plan, error) {
	pm, err := s.Preconditions()
	if err != nil {
		return nil, err
	}
	steps, err := s.Compile(pm)
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}
	launchSteps, err := s.compileLaunch(pm)
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}

	plan, err := execution.NewPlanner(s.logger).Plan(ctx, append(steps, launchSteps...))
	if err != nil {
		return nil, fmt.Errorf("failed to plan: %w", err)
	}
	return plan, nil
}

// Apply runs the whole workflow: preconditions, every step in order,
// verification and finally the launch. Tolerated step failures are part of
// the summary, not the returned error; the error is set for a failed
// precondition, a compile error, a fatal step or cancellation.
func (s *Setup) Apply(ctx context.Context, opts ApplyOptions) (*RunSummary, error) {
	summary := &RunSummary{RunID: s.runID}

	pm, err := s.Preconditions()
	if err != nil {
		return summary, err
	}
	summary.Manager = pm

	steps, err := s.Compile(pm)
	if err != nil {
		return summary, fmt.Errorf("failed to compile: %w", err)
	}

	runner := execution.NewRunner(s.logger).
		WithDryRun(opts.DryRun).
		WithObserver(newLogObserver(s.logger))
	for _, o := range opts.Observers {
		runner = runner.WithObserver(o)
	}

	s.logger.Info(ctx, "provisioning started",
		ports.F("steps", len(steps)), ports.F("manager", pm.String()), ports.F("dry_run", opts.DryRun))
	summary.Result = runner.Run(ctx, steps)
	if err := summary.Result.Err(); err != nil {
		return summary, err
	}

	summary.Report = s.verify(ctx, steps)

	if opts.NoLaunch {
		return summary, nil
	}
	launchSteps, err := s.compileLaunch(pm)
	if err != nil {
		return summary, fmt.Errorf("failed to compile: %w", err)
	}
	if len(launchSteps) > 0 {
		launched := runner.Run(ctx, launchSteps)
		if len(launched.Results) > 0 {
			summary.Launch = &launched.Results[0]
		}
	}
	return summary, nil
}

// Verify re-checks every step and the manifest's verify section without
// applying anything.
func (s *Setup) Verify(ctx context.Context) (*execution.InstallationReport, error) {
	pm, err := s.Preconditions()
	if err != nil {
		return nil, err
	}
	steps, err := s.Compile(pm)
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}
	return s.verify(ctx, steps), nil
}

// printf is a helper that writes to the output writer, ignoring errors.
func (s *Setup) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
