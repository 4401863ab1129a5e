package repo

import (
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// Provider compiles the shell's own checkout. Tool checkouts are compiled
// by the build provider next to the build that needs them.
type Provider struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewProvider creates a new repo Provider.
func NewProvider(fs ports.FileSystem, runner ports.CommandRunner) *Provider {
	return &Provider{fs: fs, runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "repo"
}

// Compile returns the app checkout step. Without the checkout nothing else
// the run does can be used, so its failure is fatal.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	app := ctx.Manifest().App
	if app.Repo == "" {
		return nil, nil
	}

	step := NewSyncStep(Checkout{
		Name:  appName(app),
		URL:   app.Repo,
		Path:  app.Path,
		Ref:   app.Ref,
		Depth: app.Depth,
	}, p.fs, p.runner)
	return []compiler.Step{compiler.Fatal(step)}, nil
}

// AppStepID returns the ID of the app checkout step.
func AppStepID(app manifest.App) compiler.StepID {
	return StepIDFor(appName(app))
}

func appName(app manifest.App) string {
	if app.Name == "" {
		return "app"
	}
	return app.Name
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
