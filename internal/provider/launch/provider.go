package launch

import (
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/provider/repo"
)

// Provider compiles the launch section into the final step of a run.
type Provider struct {
	runner   ports.CommandRunner
	host     ports.Host
	launcher ports.Launcher
}

// NewProvider creates a new launch Provider.
func NewProvider(runner ports.CommandRunner, host ports.Host, launcher ports.Launcher) *Provider {
	return &Provider{runner: runner, host: host, launcher: launcher}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "launch"
}

// Compile returns the launch step, or nothing when launching is disabled.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	m := ctx.Manifest()
	if m.Launch.Disabled || len(m.Launch.Command) == 0 {
		return nil, nil
	}
	var deps []compiler.StepID
	if m.App.Repo != "" {
		deps = append(deps, repo.AppStepID(m.App))
	}
	return []compiler.Step{NewShellStep(m.Launch, p.runner, p.host, p.launcher, deps...)}, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
