// Package build compiles and installs tools from their source checkouts.
package build

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/provider/repo"
)

// buildDir is the out-of-tree build directory used by cmake and meson.
const buildDir = "build"

// ToolStep builds and installs one tool. It is satisfied when the tool's
// artifact is present, in which case nothing is built.
type ToolStep struct {
	id     compiler.StepID
	tool   manifest.ToolSpec
	fs     ports.FileSystem
	runner ports.CommandRunner
	host   ports.Host
}

// NewToolStep creates a new ToolStep.
func NewToolStep(tool manifest.ToolSpec, fs ports.FileSystem, runner ports.CommandRunner, host ports.Host) *ToolStep {
	return &ToolStep{
		id:     compiler.IDFor("build", "install", tool.Name),
		tool:   tool,
		fs:     fs,
		runner: runner,
		host:   host,
	}
}

// ID returns the step identifier.
func (s *ToolStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the tool's checkout step.
func (s *ToolStep) DependsOn() []compiler.StepID {
	return []compiler.StepID{repo.StepIDFor(s.tool.Name)}
}

// Component returns the report name.
func (s *ToolStep) Component() string {
	return s.tool.Name
}

// Check reports whether the artifact is installed.
func (s *ToolStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	if s.Installed() {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Installed reports whether the artifact exists: an absolute artifact path
// must exist, a bare name must be in Prefix/bin or on PATH.
func (s *ToolStep) Installed() bool {
	artifact := s.tool.Artifact
	if filepath.IsAbs(artifact) {
		return s.fs.Exists(artifact)
	}
	if s.fs.Exists(s.binPath()) {
		return true
	}
	_, err := s.host.LookPath(artifact)
	return err == nil
}

// Plan returns the diff for this step.
func (s *ToolStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.Add("tool", s.tool.Name, fmt.Sprintf("%s build into %s", s.tool.Build, s.tool.Prefix)), nil
}

// Apply builds and installs the tool. When the build fails and the
// checkout ships a prebuilt fallback binary, the fallback is installed instead.
func (s *ToolStep) Apply(ctx compiler.RunContext) error {
	if !s.fs.IsDir(s.tool.Path) {
		return &BuildError{Tool: s.tool.Name, Stage: "source", Output: s.tool.Path + " is not checked out"}
	}

	err := s.build(ctx)
	if err == nil {
		if !s.Installed() {
			return &BuildError{Tool: s.tool.Name, Stage: "verify", Output: "artifact " + s.tool.Artifact + " not found after install"}
		}
		return nil
	}

	if s.tool.Fallback == "" {
		return err
	}
	fallback := filepath.Join(s.tool.Path, s.tool.Fallback)
	if !s.fs.Exists(fallback) {
		return err
	}

	ctx.Logger().Warn(ctx.Context(), "build failed, installing prebuilt fallback",
		ports.F("tool", s.tool.Name), ports.F("fallback", fallback), ports.Err(err))
	if ferr := s.installFile(ctx, fallback); ferr != nil {
		return fmt.Errorf("%w (fallback: %v)", err, ferr)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *ToolStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"Build tool from source",
		fmt.Sprintf("Builds %s from %s with %s and installs it under %s.",
			s.tool.Name, s.tool.Path, s.tool.Build, s.tool.Prefix),
		[]string{s.tool.Repo},
	)
}

func (s *ToolStep) build(ctx compiler.RunContext) error {
	prefix := s.tool.Prefix
	switch s.tool.Build {
	case manifest.BuildCopy:
		return s.installFile(ctx, filepath.Join(s.tool.Path, s.tool.BinaryName()))

	case manifest.BuildMake:
		if err := s.run(ctx, "make", false, "make"); err != nil {
			return err
		}
		return s.run(ctx, "make install", true, "make", "install", "PREFIX="+prefix)

	case manifest.BuildCMake:
		configure := append([]string{"-B", buildDir, "-DCMAKE_INSTALL_PREFIX=" + prefix}, s.tool.Options...)
		if err := s.run(ctx, "cmake configure", false, "cmake", configure...); err != nil {
			return err
		}
		if err := s.run(ctx, "cmake build", false, "cmake", "--build", buildDir); err != nil {
			return err
		}
		return s.run(ctx, "cmake install", true, "cmake", "--install", buildDir)

	case manifest.BuildMeson:
		setup := []string{"setup", buildDir, "--prefix=" + prefix}
		if s.fs.Exists(filepath.Join(s.tool.Path, buildDir)) {
			setup = append(setup, "--wipe")
		}
		setup = append(setup, s.tool.Options...)
		if err := s.run(ctx, "meson setup", false, "meson", setup...); err != nil {
			return err
		}
		if err := s.run(ctx, "meson compile", false, "meson", "compile", "-C", buildDir); err != nil {
			return err
		}
		return s.run(ctx, "meson install", true, "meson", "install", "-C", buildDir)
	}
	return &BuildError{Tool: s.tool.Name, Stage: "dispatch", Output: fmt.Sprintf("unknown build kind %q", s.tool.Build)}
}

// run executes a build command in the checkout. Install commands go
// through sudo when the prefix is outside the user's home.
func (s *ToolStep) run(ctx compiler.RunContext, stage string, install bool, command string, args ...string) error {
	if install && s.privileged() {
		args = append([]string{command}, args...)
		command = "sudo"
	}
	result, err := s.runner.RunIn(ctx.Context(), s.tool.Path, command, args...)
	if err != nil {
		return &BuildError{Tool: s.tool.Name, Stage: stage, Output: err.Error()}
	}
	if !result.Success() {
		return &BuildError{Tool: s.tool.Name, Stage: stage, Output: lastLines(result.Output(), 5)}
	}
	return nil
}

// installFile installs an executable into Prefix/bin under the artifact's name.
func (s *ToolStep) installFile(ctx compiler.RunContext, src string) error {
	dest := s.binPath()
	if s.privileged() {
		return s.run(ctx, "install", true, "install", "-Dm755", src, dest)
	}
	if err := s.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &BuildError{Tool: s.tool.Name, Stage: "install", Output: err.Error()}
	}
	if err := s.fs.CopyFile(src, dest); err != nil {
		return &BuildError{Tool: s.tool.Name, Stage: "install", Output: err.Error()}
	}
	return nil
}

func (s *ToolStep) binPath() string {
	return filepath.Join(s.tool.Prefix, "bin", s.tool.BinaryName())
}

// privileged reports whether installing into the prefix needs root.
func (s *ToolStep) privileged() bool {
	home, err := s.host.HomeDir()
	if err != nil || home == "" {
		return true
	}
	rel, err := filepath.Rel(home, s.tool.Prefix)
	return err != nil || rel == ".." || strings.HasPrefix(rel, "../")
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
