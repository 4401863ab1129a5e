package fonts

import (
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/provider/repo"
)

// Provider compiles the manifest fonts section into install steps.
type Provider struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewProvider creates a new fonts Provider.
func NewProvider(fs ports.FileSystem, runner ports.CommandRunner) *Provider {
	return &Provider{fs: fs, runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "fonts"
}

// Compile returns one step per font. Fonts bundled inside the app checkout
// depend on that checkout.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	m := ctx.Manifest()
	steps := make([]compiler.Step, 0, len(m.Fonts))
	for _, font := range m.Fonts {
		var deps []compiler.StepID
		if font.Source != "" && within(font.Source, m.App) {
			deps = append(deps, repo.AppStepID(m.App))
		}
		steps = append(steps, NewInstallStep(font, p.fs, p.runner, deps...))
	}
	return steps, nil
}

func within(path string, app manifest.App) bool {
	if app.Repo == "" || app.Path == "" {
		return false
	}
	rel, err := filepath.Rel(app.Path, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, "../")
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
