package service

import (
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// Provider compiles the manifest services section into unit steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new service Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "service"
}

// Compile returns one step per unit, in manifest order.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	services := ctx.Manifest().Services
	steps := make([]compiler.Step, 0, len(services))
	for _, svc := range services {
		steps = append(steps, NewUnitStep(svc, p.runner))
	}
	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
