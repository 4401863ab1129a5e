package compiler

import (
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/domain/platform"
)

// Provider compiles a section of the manifest into executable steps.
type Provider interface {
	// Name returns the provider's identifier (e.g., "packages", "fonts").
	Name() string

	// Compile transforms its manifest section into an ordered list of steps.
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext provides the manifest and host facts to providers.
type CompileContext struct {
	manifest *manifest.Manifest
	pm       *platform.PackageManager
}

// NewCompileContext creates a new CompileContext.
func NewCompileContext(m *manifest.Manifest, pm *platform.PackageManager) CompileContext {
	return CompileContext{manifest: m, pm: pm}
}

// Manifest returns the manifest being compiled.
func (c CompileContext) Manifest() *manifest.Manifest {
	return c.manifest
}

// PackageManager returns the detected package manager, or nil if none was detected.
func (c CompileContext) PackageManager() *platform.PackageManager {
	return c.pm
}
