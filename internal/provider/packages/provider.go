package packages

import (
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/platform"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// Provider compiles the manifest packages section into install steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new packages Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "packages"
}

// Compile returns one step for the distribution's packages and, on Arch,
// one for AUR packages. Lists for other package managers are ignored.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	pm := ctx.PackageManager()
	if pm == nil {
		return nil, nil
	}
	m := ctx.Manifest()

	var steps []compiler.Step
	if names := m.PackagesFor(pm.Name); len(names) > 0 {
		steps = append(steps, NewInstallStep(pm, names, p.runner))
	}
	if names := m.PackagesFor(platform.AURKey); len(names) > 0 && pm.Family == platform.FamilyArch {
		steps = append(steps, NewAURStep(pm, names, p.runner))
	}
	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
