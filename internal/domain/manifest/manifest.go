// Package manifest describes what a provisioning run should converge the
// machine to: packages, source-built tools, fonts, services, rc-file lines,
// verification checks and the final launch of the shell.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// BuildKind is the build system used for a source-built tool.
type BuildKind string

const (
	// BuildCopy installs a file from the checkout as-is (scripts, prebuilt binaries).
	BuildCopy BuildKind = "copy"
	// BuildMake runs make and make install.
	BuildMake BuildKind = "make"
	// BuildCMake configures, builds and installs with CMake.
	BuildCMake BuildKind = "cmake"
	// BuildMeson sets up, compiles and installs with Meson.
	BuildMeson BuildKind = "meson"
)

// BuildKinds lists the supported build systems.
var BuildKinds = []BuildKind{BuildCopy, BuildMake, BuildCMake, BuildMeson}

// Valid reports whether k is one of the supported build systems.
func (k BuildKind) Valid() bool {
	for _, known := range BuildKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Defaults applied when the manifest leaves a field empty.
const (
	DefaultDepth     = 1
	DefaultPrefix    = "/usr/local"
	DefaultSourceDir = "~/.cache/axsetup/src"
	DefaultRcFile    = "~/.bashrc"
)

// Manifest is the full provisioning description.
type Manifest struct {
	App      App                 `yaml:"app" toml:"app"`
	Packages map[string][]string `yaml:"packages,omitempty" toml:"packages,omitempty"`
	Tools    []ToolSpec          `yaml:"tools,omitempty" toml:"tools,omitempty"`
	Fonts    []Font              `yaml:"fonts,omitempty" toml:"fonts,omitempty"`
	Services []Service           `yaml:"services,omitempty" toml:"services,omitempty"`
	Rc       []RcLine            `yaml:"rc,omitempty" toml:"rc,omitempty"`
	Verify   Verify              `yaml:"verify,omitempty" toml:"verify,omitempty"`
	Launch   Launch              `yaml:"launch,omitempty" toml:"launch,omitempty"`
}

// App is the desktop shell itself: where it comes from and where it lives.
type App struct {
	Name  string `yaml:"name" toml:"name"`
	Repo  string `yaml:"repo" toml:"repo"`
	Path  string `yaml:"path" toml:"path"`
	Ref   string `yaml:"ref,omitempty" toml:"ref,omitempty"`
	Depth int    `yaml:"depth,omitempty" toml:"depth,omitempty"`
}

// ToolSpec describes one externally built dependency.
type ToolSpec struct {
	Name  string    `yaml:"name" toml:"name"`
	Repo  string    `yaml:"repo" toml:"repo"`
	Path  string    `yaml:"path,omitempty" toml:"path,omitempty"`
	Ref   string    `yaml:"ref,omitempty" toml:"ref,omitempty"`
	Depth int       `yaml:"depth,omitempty" toml:"depth,omitempty"`
	Build BuildKind `yaml:"build" toml:"build"`
	// Prefix is the install prefix; binaries land in Prefix/bin.
	Prefix string `yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	// Artifact is what the "is installed" check looks for: an absolute path,
	// or a binary name resolved on PATH and in Prefix/bin. For copy builds it
	// is also the file copied out of the checkout.
	Artifact string `yaml:"artifact" toml:"artifact"`
	// Fallback is a prebuilt binary, relative to the checkout, installed when
	// the build fails.
	Fallback string `yaml:"fallback,omitempty" toml:"fallback,omitempty"`
	// Options are extra arguments passed to the configure stage.
	Options []string `yaml:"options,omitempty" toml:"options,omitempty"`
}

// BinaryName returns the base name of the artifact.
func (t ToolSpec) BinaryName() string {
	return filepath.Base(t.Artifact)
}

// Font is a font family to install for the current user.
type Font struct {
	Name string `yaml:"name" toml:"name"`
	// URL is a font file or .zip archive to download.
	URL string `yaml:"url,omitempty" toml:"url,omitempty"`
	// Source is a local directory whose files are copied instead of downloading.
	Source string `yaml:"source,omitempty" toml:"source,omitempty"`
	// Target is the directory the font is installed into; its existence
	// means the font is installed.
	Target string `yaml:"target" toml:"target"`
}

// IsArchive reports whether the font URL points at a zip archive.
func (f Font) IsArchive() bool {
	return strings.HasSuffix(strings.ToLower(f.URL), ".zip")
}

// Service is the desired state of a systemd unit.
type Service struct {
	Name    string `yaml:"name" toml:"name"`
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Running bool   `yaml:"running" toml:"running"`
	// User manages the unit with systemctl --user.
	User bool `yaml:"user,omitempty" toml:"user,omitempty"`
}

// RcLine is a line that must be present in a shell rc file.
type RcLine struct {
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
	Line string `yaml:"line" toml:"line"`
	// Marker is a substring whose presence on any line counts as the line being present.
	Marker string `yaml:"marker,omitempty" toml:"marker,omitempty"`
}

// Verify lists extra checks run by the final report.
type Verify struct {
	Python   string   `yaml:"python,omitempty" toml:"python,omitempty"`
	Imports  []string `yaml:"imports,omitempty" toml:"imports,omitempty"`
	Binaries []Binary `yaml:"binaries,omitempty" toml:"binaries,omitempty"`
}

// Binary is an executable expected on PATH, optionally at a minimum version.
type Binary struct {
	Name       string   `yaml:"name" toml:"name"`
	MinVersion string   `yaml:"min_version,omitempty" toml:"min_version,omitempty"`
	VersionArg []string `yaml:"version_args,omitempty" toml:"version_args,omitempty"`
}

// Launch describes how the shell is started at the end of a run.
type Launch struct {
	Disabled bool     `yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	Command  []string `yaml:"command,omitempty" toml:"command,omitempty"`
	// Wrapper is prefixed to Command when its first element is on PATH.
	Wrapper []string `yaml:"wrapper,omitempty" toml:"wrapper,omitempty"`
	// Match is the pgrep -f pattern that identifies a running instance.
	Match string `yaml:"match,omitempty" toml:"match,omitempty"`
}

// PackagesFor returns the package list for a package manager name.
func (m *Manifest) PackagesFor(manager string) []string {
	if m.Packages == nil {
		return nil
	}
	return m.Packages[manager]
}

// ApplyDefaults fills empty fields. Paths keep a leading ~ until
// ExpandHome resolves them against the provisioned user's home.
func (m *Manifest) ApplyDefaults() {
	if m.App.Depth == 0 {
		m.App.Depth = DefaultDepth
	}

	for i := range m.Tools {
		t := &m.Tools[i]
		if t.Path == "" && t.Name != "" {
			t.Path = DefaultSourceDir + "/" + t.Name
		}
		if t.Depth == 0 {
			t.Depth = DefaultDepth
		}
		if t.Prefix == "" {
			t.Prefix = DefaultPrefix
		}
	}

	for i := range m.Rc {
		if m.Rc[i].File == "" {
			m.Rc[i].File = DefaultRcFile
		}
	}

	if m.Verify.Python == "" {
		m.Verify.Python = "python3"
	}
	for i := range m.Verify.Binaries {
		if len(m.Verify.Binaries[i].VersionArg) == 0 {
			m.Verify.Binaries[i].VersionArg = []string{"--version"}
		}
	}
}

// ExpandHome replaces a leading ~ in every path field, and in the launch
// command, with home.
func (m *Manifest) ExpandHome(home string) {
	expand := func(path string) string { return ports.ExpandHome(path, home) }

	m.App.Path = expand(m.App.Path)
	for i := range m.Tools {
		t := &m.Tools[i]
		t.Path = expand(t.Path)
		t.Prefix = expand(t.Prefix)
		t.Artifact = expand(t.Artifact)
	}
	for i := range m.Fonts {
		m.Fonts[i].Target = expand(m.Fonts[i].Target)
		m.Fonts[i].Source = expand(m.Fonts[i].Source)
	}
	for i := range m.Rc {
		m.Rc[i].File = expand(m.Rc[i].File)
	}
	for i := range m.Launch.Command {
		m.Launch.Command[i] = expand(m.Launch.Command[i])
	}
}
