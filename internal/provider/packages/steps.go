// Package packages installs OS packages with the detected package manager.
package packages

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/platform"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/validation"
)

// InstallStep ensures a set of packages is installed.
type InstallStep struct {
	id     compiler.StepID
	key    string
	names  []string
	aur    bool
	pm     *platform.PackageManager
	runner ports.CommandRunner
}

// NewInstallStep creates a step installing names from the distribution repositories.
func NewInstallStep(pm *platform.PackageManager, names []string, runner ports.CommandRunner) *InstallStep {
	return &InstallStep{
		id:     compiler.IDFor("packages", "install", pm.Name),
		key:    pm.Name,
		names:  names,
		pm:     pm,
		runner: runner,
	}
}

// NewAURStep creates a step installing names with the AUR helper.
func NewAURStep(pm *platform.PackageManager, names []string, runner ports.CommandRunner) *InstallStep {
	return &InstallStep{
		id:     compiler.IDFor("packages", "install", platform.AURKey),
		key:    platform.AURKey,
		names:  names,
		aur:    true,
		pm:     pm,
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *InstallStep) DependsOn() []compiler.StepID {
	return nil
}

// Component returns the report name.
func (s *InstallStep) Component() string {
	if s.aur {
		return "aur packages"
	}
	return "packages"
}

// Names returns the requested packages.
func (s *InstallStep) Names() []string {
	return s.names
}

// Check determines whether every package is installed.
func (s *InstallStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	missing, err := s.missing(ctx)
	if err != nil {
		return compiler.StatusUnknown, err
	}
	if len(missing) == 0 {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Verify reports the packages that are still missing.
func (s *InstallStep) Verify(ctx compiler.RunContext) (bool, string) {
	missing, err := s.missing(ctx)
	if err != nil {
		return false, err.Error()
	}
	if len(missing) > 0 {
		return false, "missing: " + strings.Join(missing, ", ")
	}
	return true, fmt.Sprintf("%d installed", len(s.names))
}

// Plan lists the packages that will be installed.
func (s *InstallStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	missing, err := s.missing(ctx)
	if err != nil {
		return compiler.Diff{}, err
	}
	if len(missing) == 0 {
		return compiler.NoChange("packages", s.key), nil
	}
	return compiler.Add("packages", s.key, strings.Join(missing, " ")), nil
}

// Apply installs the missing packages in one batch. When the batch fails
// each package is retried alone so one unavailable package does not block
// the others; the leftovers are reported in a PartialInstallError.
func (s *InstallStep) Apply(ctx compiler.RunContext) error {
	missing, err := s.missing(ctx)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	if s.aur && !s.pm.SupportsAUR() {
		return ErrNoAURHelper
	}

	err = s.install(ctx, missing)
	if err == nil {
		return nil
	}
	ctx.Logger().Warn(ctx.Context(), "batch install failed, retrying packages one at a time",
		ports.F("manager", s.key), ports.Err(err))

	partial := &PartialInstallError{Manager: s.key}
	for _, name := range missing {
		if err := s.install(ctx, []string{name}); err != nil {
			ctx.Logger().Debug(ctx.Context(), "package install failed",
				ports.F("package", name), ports.Err(err))
			partial.Failed = append(partial.Failed, name)
			continue
		}
		partial.Installed = append(partial.Installed, name)
	}
	if len(partial.Failed) > 0 {
		return partial
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *InstallStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	tool := s.pm.Binary
	if s.aur {
		tool = s.pm.AURHelper
		if tool == "" {
			tool = "an AUR helper"
		}
	}
	return compiler.NewExplanation(
		"Install packages",
		fmt.Sprintf("Installs %d packages with %s, skipping those already installed.", len(s.names), tool),
		nil,
	)
}

func (s *InstallStep) install(ctx compiler.RunContext, names []string) error {
	command, args := s.pm.InstallCommand(names)
	if s.aur {
		command, args = s.pm.AURInstallCommand(names)
	}

	result, err := s.runner.Run(ctx.Context(), command, args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("%s exited with %d: %s", command, result.ExitCode, result.Output())
	}
	return nil
}

func (s *InstallStep) missing(ctx compiler.RunContext) ([]string, error) {
	if err := validation.ValidatePackageNames(s.names); err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range s.names {
		command, args := s.pm.QueryCommand(name)
		result, err := s.runner.Run(ctx.Context(), command, args...)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", name, err)
		}
		if !s.pm.IsInstalled(result) {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
