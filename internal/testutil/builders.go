package testutil

import (
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
)

// Paths used by manifests built with NewManifest.
const (
	TestHome    = "/home/tester"
	TestAppPath = TestHome + "/.config/Ax-Shell"
	TestAppRepo = "https://github.com/Axenide/Ax-Shell.git"
)

// ManifestBuilder builds test manifests.
type ManifestBuilder struct {
	m manifest.Manifest
}

// NewManifest starts a manifest with the Ax-Shell app checkout under
// TestHome and launching disabled.
func NewManifest() *ManifestBuilder {
	return &ManifestBuilder{m: manifest.Manifest{
		App: manifest.App{
			Name:  "ax-shell",
			Repo:  TestAppRepo,
			Path:  TestAppPath,
			Depth: 1,
		},
		Packages: map[string][]string{},
		Launch:   manifest.Launch{Disabled: true},
	}}
}

// WithPackages sets the package list for a package manager key.
func (b *ManifestBuilder) WithPackages(key string, names ...string) *ManifestBuilder {
	b.m.Packages[key] = names
	return b
}

// WithTool adds a source-built tool. Empty path and prefix are placed under TestHome.
func (b *ManifestBuilder) WithTool(tool manifest.ToolSpec) *ManifestBuilder {
	if tool.Path == "" {
		tool.Path = TestHome + "/.cache/axsetup/src/" + tool.Name
	}
	if tool.Prefix == "" {
		tool.Prefix = TestHome + "/.local"
	}
	b.m.Tools = append(b.m.Tools, tool)
	return b
}

// WithFont adds a font.
func (b *ManifestBuilder) WithFont(font manifest.Font) *ManifestBuilder {
	b.m.Fonts = append(b.m.Fonts, font)
	return b
}

// WithService adds a desired service state.
func (b *ManifestBuilder) WithService(name string, enabled, running bool) *ManifestBuilder {
	b.m.Services = append(b.m.Services, manifest.Service{Name: name, Enabled: enabled, Running: running})
	return b
}

// WithRcLine adds a line to TestHome/.bashrc.
func (b *ManifestBuilder) WithRcLine(line, marker string) *ManifestBuilder {
	b.m.Rc = append(b.m.Rc, manifest.RcLine{File: TestHome + "/.bashrc", Line: line, Marker: marker})
	return b
}

// WithImports adds Python imports to verify.
func (b *ManifestBuilder) WithImports(modules ...string) *ManifestBuilder {
	b.m.Verify.Imports = append(b.m.Verify.Imports, modules...)
	return b
}

// WithBinary adds a binary to verify.
func (b *ManifestBuilder) WithBinary(name, minVersion string) *ManifestBuilder {
	b.m.Verify.Binaries = append(b.m.Verify.Binaries, manifest.Binary{Name: name, MinVersion: minVersion})
	return b
}

// WithLaunch enables launching with the given command and wrapper.
func (b *ManifestBuilder) WithLaunch(command, wrapper []string, match string) *ManifestBuilder {
	b.m.Launch = manifest.Launch{Command: command, Wrapper: wrapper, Match: match}
	return b
}

// Build applies manifest defaults and returns the manifest.
func (b *ManifestBuilder) Build() *manifest.Manifest {
	m := b.m
	m.ApplyDefaults()
	return &m
}
