package build

import (
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/provider/repo"
)

// Provider compiles each tool into a checkout step followed by a build step.
type Provider struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
	host   ports.Host
}

// NewProvider creates a new build Provider.
func NewProvider(fs ports.FileSystem, runner ports.CommandRunner, host ports.Host) *Provider {
	return &Provider{fs: fs, runner: runner, host: host}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "build"
}

// Compile transforms the tools section into executable steps.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	tools := ctx.Manifest().Tools
	steps := make([]compiler.Step, 0, 2*len(tools))
	for _, tool := range tools {
		steps = append(steps,
			repo.NewSyncStep(repo.Checkout{
				Name:  tool.Name,
				URL:   tool.Repo,
				Path:  tool.Path,
				Ref:   tool.Ref,
				Depth: tool.Depth,
			}, p.fs, p.runner),
			NewToolStep(tool, p.fs, p.runner, p.host),
		)
	}
	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
