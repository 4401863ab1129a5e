// Package fonts installs font families into the user's font directory.
package fonts

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/validation"
)

// FontError is returned when a font could not be fetched or unpacked.
type FontError struct {
	Font   string
	Stage  string
	Output string
}

// Error implements error.
func (e *FontError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("font %s: %s failed", e.Font, e.Stage)
	}
	return fmt.Sprintf("font %s: %s failed: %s", e.Font, e.Stage, e.Output)
}

// InstallStep installs one font. The font is installed when its target
// directory exists; an existing target is never touched.
type InstallStep struct {
	id        compiler.StepID
	font      manifest.Font
	dependsOn []compiler.StepID
	fs        ports.FileSystem
	runner    ports.CommandRunner
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(font manifest.Font, fs ports.FileSystem, runner ports.CommandRunner, dependsOn ...compiler.StepID) *InstallStep {
	return &InstallStep{
		id:        compiler.IDFor("fonts", "install", font.Name),
		font:      font,
		dependsOn: dependsOn,
		fs:        fs,
		runner:    runner,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the checkout a bundled font is copied from, if any.
func (s *InstallStep) DependsOn() []compiler.StepID {
	return s.dependsOn
}

// Component returns the report name.
func (s *InstallStep) Component() string {
	return s.font.Name + " font"
}

// Check reports whether the target directory exists.
func (s *InstallStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	if s.fs.IsDir(s.font.Target) {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *InstallStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	from := s.font.URL
	if s.font.Source != "" {
		from = s.font.Source
	}
	return compiler.Add("font", s.font.Name, from+" -> "+s.font.Target), nil
}

// Apply installs the font and refreshes the font cache. Files are staged
// next to the target and moved into place only when complete, so Check
// never sees a partly installed font.
func (s *InstallStep) Apply(ctx compiler.RunContext) error {
	if err := s.install(ctx); err != nil {
		return err
	}

	result, err := s.runner.Run(ctx.Context(), "fc-cache", "-f", s.font.Target)
	if err == nil && !result.Success() {
		err = fmt.Errorf("exit %d: %s", result.ExitCode, result.Output())
	}
	if err != nil {
		ctx.Logger().Warn(ctx.Context(), "font cache refresh failed",
			ports.F("font", s.font.Name), ports.Err(err))
	}
	return nil
}

func (s *InstallStep) install(ctx compiler.RunContext) error {
	parent := filepath.Dir(s.font.Target)
	if err := s.fs.MkdirAll(parent, 0o755); err != nil {
		return &FontError{Font: s.font.Name, Stage: "install", Output: err.Error()}
	}
	staging := filepath.Join(parent, "."+s.font.Name+".partial")
	if err := s.fs.RemoveAll(staging); err != nil {
		return &FontError{Font: s.font.Name, Stage: "install", Output: err.Error()}
	}

	var err error
	if s.font.Source != "" {
		err = s.copyBundled(staging)
	} else {
		err = s.download(ctx, staging)
	}
	if err == nil {
		if renameErr := s.fs.Rename(staging, s.font.Target); renameErr != nil {
			err = &FontError{Font: s.font.Name, Stage: "install", Output: renameErr.Error()}
		}
	}
	if err != nil {
		_ = s.fs.RemoveAll(staging)
	}
	return err
}

// Explain provides a human-readable explanation.
func (s *InstallStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	if s.font.Source != "" {
		return compiler.NewExplanation(
			"Install bundled font",
			fmt.Sprintf("Copies the %s font files from %s into %s.", s.font.Name, s.font.Source, s.font.Target),
			nil,
		)
	}
	return compiler.NewExplanation(
		"Download font",
		fmt.Sprintf("Downloads %s and installs it into %s.", s.font.URL, s.font.Target),
		[]string{s.font.URL},
	)
}

// download fetches the font and unpacks it into dir.
func (s *InstallStep) download(ctx compiler.RunContext, dir string) error {
	if err := validation.ValidateURL(s.font.URL); err != nil {
		return &FontError{Font: s.font.Name, Stage: "validate", Output: err.Error()}
	}

	tmp := filepath.Join(filepath.Dir(dir), "."+s.font.Name+".download")
	defer func() { _ = s.fs.Remove(tmp) }()

	if err := s.run(ctx, "download", "curl", "-fsSL", "-o", tmp, s.font.URL); err != nil {
		return err
	}

	if s.font.IsArchive() {
		return s.run(ctx, "unzip", "unzip", "-o", "-q", tmp, "-d", dir)
	}

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return &FontError{Font: s.font.Name, Stage: "install", Output: err.Error()}
	}
	if err := s.fs.CopyFile(tmp, filepath.Join(dir, fileName(s.font.URL))); err != nil {
		return &FontError{Font: s.font.Name, Stage: "install", Output: err.Error()}
	}
	return nil
}

// copyBundled copies the regular files of Source into dir.
func (s *InstallStep) copyBundled(dir string) error {
	if !s.fs.IsDir(s.font.Source) {
		return &FontError{Font: s.font.Name, Stage: "source", Output: s.font.Source + " does not exist"}
	}
	names, err := s.fs.ReadDir(s.font.Source)
	if err != nil {
		return &FontError{Font: s.font.Name, Stage: "source", Output: err.Error()}
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return &FontError{Font: s.font.Name, Stage: "install", Output: err.Error()}
	}
	for _, name := range names {
		src := filepath.Join(s.font.Source, name)
		if s.fs.IsDir(src) {
			continue
		}
		if err := s.fs.CopyFile(src, filepath.Join(dir, name)); err != nil {
			return &FontError{Font: s.font.Name, Stage: "install", Output: err.Error()}
		}
	}
	return nil
}

func (s *InstallStep) run(ctx compiler.RunContext, stage, command string, args ...string) error {
	result, err := s.runner.Run(ctx.Context(), command, args...)
	if err != nil {
		return &FontError{Font: s.font.Name, Stage: stage, Output: err.Error()}
	}
	if !result.Success() {
		return &FontError{Font: s.font.Name, Stage: stage, Output: result.Output()}
	}
	return nil
}

// fileName returns the last path element of a URL.
func fileName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return path.Base(raw)
	}
	return path.Base(u.Path)
}

// Ensure InstallStep implements compiler.Step.
var _ compiler.Step = (*InstallStep)(nil)
