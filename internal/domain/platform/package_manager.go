package platform

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// ErrNoPackageManager is returned when no supported package manager is on PATH.
var ErrNoPackageManager = errors.New("no supported package manager found (need pacman, apt-get or dnf)")

// AURKey is the manifest packages key for packages installed with an AUR helper.
const AURKey = "aur"

// PackageManager describes how to query and install packages on this host.
type PackageManager struct {
	// Name is the manifest packages key ("pacman", "apt", "dnf").
	Name string
	// Binary is the executable that installs packages.
	Binary string
	Family Family
	// AURHelper is yay or paru when found on an Arch host.
	AURHelper string
	Release   *OSRelease
}

type managerDef struct {
	name   string
	binary string
	family Family
}

var managers = []managerDef{
	{name: "pacman", binary: "pacman", family: FamilyArch},
	{name: "apt", binary: "apt-get", family: FamilyDebian},
	{name: "dnf", binary: "dnf", family: FamilyFedora},
}

var aurHelpers = []string{"yay", "paru"}

// Detect finds the package manager for the host. The distribution family
// from os-release is tried first; any supported manager on PATH is the fallback.
func Detect(host ports.Host, fs ports.FileSystem) (*PackageManager, error) {
	release, _ := ReadOSRelease(fs)
	family := release.Family()

	ordered := make([]managerDef, 0, len(managers))
	for _, m := range managers {
		if m.family == family {
			ordered = append(ordered, m)
		}
	}
	for _, m := range managers {
		if m.family != family {
			ordered = append(ordered, m)
		}
	}

	for _, m := range ordered {
		if _, err := host.LookPath(m.binary); err != nil {
			continue
		}
		pm := &PackageManager{
			Name:    m.name,
			Binary:  m.binary,
			Family:  m.family,
			Release: release,
		}
		if m.family == FamilyArch {
			for _, helper := range aurHelpers {
				if _, err := host.LookPath(helper); err == nil {
					pm.AURHelper = helper
					break
				}
			}
		}
		return pm, nil
	}
	return nil, ErrNoPackageManager
}

// SupportsAUR reports whether AUR packages can be installed.
func (pm *PackageManager) SupportsAUR() bool {
	return pm.Family == FamilyArch && pm.AURHelper != ""
}

// QueryCommand returns the command that checks whether pkg is installed.
func (pm *PackageManager) QueryCommand(pkg string) (string, []string) {
	switch pm.Family {
	case FamilyDebian:
		return "dpkg-query", []string{"-W", "-f=${Status}", pkg}
	case FamilyFedora:
		return "rpm", []string{"-q", pkg}
	default:
		return "pacman", []string{"-Q", pkg}
	}
}

// IsInstalled interprets the result of QueryCommand.
func (pm *PackageManager) IsInstalled(result ports.CommandResult) bool {
	if !result.Success() {
		return false
	}
	if pm.Family == FamilyDebian {
		return strings.Contains(result.Stdout, "install ok installed")
	}
	return true
}

// InstallCommand returns the privileged command installing pkgs from the
// distribution repositories.
func (pm *PackageManager) InstallCommand(pkgs []string) (string, []string) {
	var args []string
	switch pm.Family {
	case FamilyDebian:
		args = []string{pm.Binary, "install", "-y"}
	case FamilyFedora:
		args = []string{pm.Binary, "install", "-y"}
	default:
		args = []string{pm.Binary, "-S", "--needed", "--noconfirm"}
	}
	return "sudo", append(args, pkgs...)
}

// AURInstallCommand returns the command installing pkgs with the AUR helper.
// AUR helpers escalate on their own and must not run under sudo.
func (pm *PackageManager) AURInstallCommand(pkgs []string) (string, []string) {
	return pm.AURHelper, append([]string{"-S", "--needed", "--noconfirm"}, pkgs...)
}

// String returns a short description such as "pacman (yay)".
func (pm *PackageManager) String() string {
	if pm.AURHelper != "" {
		return pm.Name + " (" + pm.AURHelper + ")"
	}
	return pm.Name
}
