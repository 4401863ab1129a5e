package rcfile

import (
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// Provider compiles the manifest rc section into line steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a new rcfile Provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "rc"
}

// Compile returns one step per rc line.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	lines := ctx.Manifest().Rc
	steps := make([]compiler.Step, 0, len(lines))
	for _, rc := range lines {
		steps = append(steps, NewLineStep(rc, p.fs))
	}
	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
