// Package platform detects the Linux distribution and its package manager.
package platform

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// Family groups distributions that share a package manager.
type Family string

const (
	// FamilyArch is Arch Linux and derivatives (pacman, AUR helpers).
	FamilyArch Family = "arch"
	// FamilyDebian is Debian, Ubuntu and derivatives (apt-get).
	FamilyDebian Family = "debian"
	// FamilyFedora is Fedora and RHEL derivatives (dnf).
	FamilyFedora Family = "fedora"
	// FamilyUnknown is any other distribution.
	FamilyUnknown Family = "unknown"
)

// osReleasePaths are searched in order, as described in os-release(5).
var osReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// OSRelease holds the fields of os-release(5) used for detection.
type OSRelease struct {
	ID         string
	IDLike     []string
	Name       string
	PrettyName string
	VersionID  string
}

// ParseOSRelease parses os-release(5) content.
func ParseOSRelease(data []byte) (*OSRelease, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("parse os-release: %w", err)
	}

	sec := cfg.Section(ini.DefaultSection)
	return &OSRelease{
		ID:         strings.ToLower(sec.Key("ID").String()),
		IDLike:     strings.Fields(strings.ToLower(sec.Key("ID_LIKE").String())),
		Name:       sec.Key("NAME").String(),
		PrettyName: sec.Key("PRETTY_NAME").String(),
		VersionID:  sec.Key("VERSION_ID").String(),
	}, nil
}

// ReadOSRelease reads the first os-release file found on the host.
func ReadOSRelease(fs ports.FileSystem) (*OSRelease, error) {
	var errs []error
	for _, path := range osReleasePaths {
		data, err := fs.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return ParseOSRelease(data)
	}
	return nil, fmt.Errorf("read os-release: %w", errors.Join(errs...))
}

// Family classifies the distribution by ID, then by ID_LIKE.
func (r *OSRelease) Family() Family {
	if r == nil {
		return FamilyUnknown
	}
	for _, id := range append([]string{r.ID}, r.IDLike...) {
		switch id {
		case "arch", "archarm", "endeavouros", "manjaro", "cachyos", "garuda":
			return FamilyArch
		case "debian", "ubuntu", "linuxmint", "pop":
			return FamilyDebian
		case "fedora", "rhel", "centos", "nobara":
			return FamilyFedora
		}
	}
	return FamilyUnknown
}

// DisplayName returns the most descriptive name available.
func (r *OSRelease) DisplayName() string {
	switch {
	case r == nil:
		return "unknown"
	case r.PrettyName != "":
		return r.PrettyName
	case r.Name != "":
		return r.Name
	case r.ID != "":
		return r.ID
	}
	return "unknown"
}
