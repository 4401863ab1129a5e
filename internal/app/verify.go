package app

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/execution"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/provider/commandutil"
	"github.com/felixgeelhaar/axsetup/internal/provider/versionutil"
	"github.com/felixgeelhaar/axsetup/internal/validation"
)

// verify builds the installation report. Nothing here is an error: every
// failed check becomes an unverified report entry.
func (s *Setup) verify(ctx context.Context, steps []compiler.Step) *execution.InstallationReport {
	report := execution.NewInstallationReport()
	runCtx := compiler.NewRunContext(ports.ContextWithLogger(ctx, s.logger)).WithDryRun(true)

	for _, step := range steps {
		ok, detail := compiler.Verify(step, runCtx)
		report.Record(compiler.ComponentName(step), ok, detail)
	}

	checks := s.manifest.Verify
	for _, module := range checks.Imports {
		ok, detail := s.verifyImport(ctx, checks.Python, module)
		report.Record("python "+module, ok, detail)
	}
	for _, bin := range checks.Binaries {
		ok, detail := s.verifyBinary(ctx, bin)
		report.Record(bin.Name, ok, detail)
	}

	if failed := report.Failed(); len(failed) > 0 {
		s.logger.Warn(ctx, execution.WarnMarker+" verification incomplete",
			ports.F("failed", strings.Join(failed, ", ")))
	} else {
		s.logger.Info(ctx, "verification passed", ports.F("components", report.Len()))
	}
	return report
}

func (s *Setup) verifyImport(ctx context.Context, python, module string) (bool, string) {
	if err := validation.ValidatePythonModule(module); err != nil {
		return false, err.Error()
	}
	result, err := s.deps.Runner.Run(ctx, python, "-c", "import "+module)
	if err != nil {
		return false, commandutil.Describe(python, err)
	}
	if !result.Success() {
		return false, lastLine(result.Output())
	}
	return true, ""
}

func (s *Setup) verifyBinary(ctx context.Context, bin manifest.Binary) (bool, string) {
	path, err := s.deps.Host.LookPath(bin.Name)
	if err != nil {
		return false, "not found on PATH"
	}
	if bin.MinVersion == "" {
		return true, path
	}

	args := bin.VersionArg
	if len(args) == 0 {
		args = []string{"--version"}
	}
	result, err := s.deps.Runner.Run(ctx, bin.Name, args...)
	if err != nil {
		return false, commandutil.Describe(bin.Name, err)
	}
	found := versionutil.Parse(result.Stdout + "\n" + result.Stderr)
	if found == "" {
		return false, "could not read version"
	}
	return versionutil.MeetsMinimum(found, bin.MinVersion)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
