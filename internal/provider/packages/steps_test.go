package packages

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/platform"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/testutil"
	"github.com/felixgeelhaar/axsetup/internal/testutil/mocks"
	"github.com/felixgeelhaar/axsetup/internal/validation"
)

var pacman = &platform.PackageManager{Name: "pacman", Binary: "pacman", Family: platform.FamilyArch, AURHelper: "yay"}

// fakePacman models a pacman database. Packages in unavailable cannot be installed.
type fakePacman struct {
	mu          sync.Mutex
	installed   map[string]bool
	unavailable map[string]bool
}

func newFakePacman(runner *mocks.CommandRunner, installed []string, unavailable ...string) *fakePacman {
	f := &fakePacman{installed: map[string]bool{}, unavailable: map[string]bool{}}
	for _, p := range installed {
		f.installed[p] = true
	}
	for _, p := range unavailable {
		f.unavailable[p] = true
	}

	runner.Handle("pacman", func(_ string, args []string) (ports.CommandResult, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.installed[args[1]] {
			return ports.CommandResult{Stdout: args[1] + " 1.0-1"}, nil
		}
		return ports.CommandResult{ExitCode: 1, Stderr: fmt.Sprintf("error: package '%s' was not found", args[1])}, nil
	})
	install := func(pkgs []string) (ports.CommandResult, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, p := range pkgs {
			if f.unavailable[p] {
				return ports.CommandResult{ExitCode: 1, Stderr: "error: target not found: " + p}, nil
			}
		}
		for _, p := range pkgs {
			f.installed[p] = true
		}
		return ports.CommandResult{}, nil
	}
	runner.Handle("sudo", func(_ string, args []string) (ports.CommandResult, error) {
		return install(args[4:])
	})
	runner.Handle("yay", func(_ string, args []string) (ports.CommandResult, error) {
		return install(args[3:])
	})
	return f
}

func TestInstallStep_Check(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	newFakePacman(runner, []string{"cava", "swww"})

	step := NewInstallStep(pacman, []string{"cava", "swww"}, runner)
	status, err := step.Check(testutil.RunContext())
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusSatisfied, status)

	step = NewInstallStep(pacman, []string{"cava", "hypridle"}, runner)
	status, err = step.Check(testutil.RunContext())
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusNeedsApply, status)

	diff, err := step.Plan(testutil.RunContext())
	require.NoError(t, err)
	assert.Equal(t, "hypridle", diff.To())
	assert.Equal(t, "packages:install:pacman", step.ID().String())
}

func TestInstallStep_InstallsOnlyMissing(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	newFakePacman(runner, []string{"cava"})

	step := NewInstallStep(pacman, []string{"cava", "swww", "hypridle"}, runner)
	require.NoError(t, step.Apply(testutil.RunContext()))

	assert.Contains(t, runner.CallStrings(), "sudo pacman -S --needed --noconfirm swww hypridle")
	assert.Equal(t, 1, runner.CountCalls("sudo "))

	status, err := step.Check(testutil.RunContext())
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusSatisfied, status)
}

func TestInstallStep_OneUnavailablePackage(t *testing.T) {
	t.Parallel()

	names := []string{"cava", "swww", "hypridle", "hyprlock", "hyprpicker", "playerctl", "tmux", "unzip", "uwsm", "not-a-package"}
	runner := mocks.NewCommandRunner()
	db := newFakePacman(runner, nil, "not-a-package")

	step := NewInstallStep(pacman, names, runner)
	err := step.Apply(testutil.RunContext())

	var partial *PartialInstallError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"not-a-package"}, partial.Failed)
	assert.Len(t, partial.Installed, 9)
	assert.Contains(t, err.Error(), "1 of 10 packages")
	for _, n := range names[:9] {
		assert.True(t, db.installed[n], n)
	}
}

func TestInstallStep_AUR(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	newFakePacman(runner, nil)

	step := NewAURStep(pacman, []string{"matugen-bin"}, runner)
	require.NoError(t, step.Apply(testutil.RunContext()))
	assert.Contains(t, runner.CallStrings(), "yay -S --needed --noconfirm matugen-bin")
	assert.Equal(t, "aur packages", step.Component())

	noHelper := &platform.PackageManager{Name: "pacman", Binary: "pacman", Family: platform.FamilyArch}
	err := NewAURStep(noHelper, []string{"fabric-cli-git"}, runner).Apply(testutil.RunContext())
	assert.ErrorIs(t, err, ErrNoAURHelper)
}

func TestInstallStep_RejectsInvalidNames(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	step := NewInstallStep(pacman, []string{"cava", "cava; reboot"}, runner)

	_, err := step.Check(testutil.RunContext())
	assert.ErrorIs(t, err, validation.ErrInvalidPackageName)
	assert.ErrorIs(t, step.Apply(testutil.RunContext()), validation.ErrInvalidPackageName)
	assert.Empty(t, runner.Calls(), "nothing is executed")
}

func TestInstallStep_Debian(t *testing.T) {
	t.Parallel()

	apt := &platform.PackageManager{Name: "apt", Binary: "apt-get", Family: platform.FamilyDebian}
	runner := mocks.NewCommandRunner()
	runner.AddResult("dpkg-query", []string{"-W", "-f=${Status}", "meson"}, ports.CommandResult{Stdout: "install ok installed"})
	runner.AddResult("dpkg-query", []string{"-W", "-f=${Status}", "unzip"}, ports.CommandResult{ExitCode: 1})
	runner.AddResult("sudo", []string{"apt-get", "install", "-y", "unzip"}, ports.CommandResult{})

	step := NewInstallStep(apt, []string{"meson", "unzip"}, runner)
	require.NoError(t, step.Apply(testutil.RunContext()))
	assert.Equal(t, "packages:install:apt", step.ID().String())
	assert.Equal(t, 1, runner.CountCalls("sudo apt-get install -y unzip"))
}

func TestInstallStep_Verify(t *testing.T) {
	t.Parallel()

	runner := mocks.NewCommandRunner()
	newFakePacman(runner, []string{"cava", "swww"})

	ok, detail := NewInstallStep(pacman, []string{"cava", "swww"}, runner).Verify(testutil.RunContext())
	assert.True(t, ok)
	assert.Equal(t, "2 installed", detail)

	ok, detail = NewInstallStep(pacman, []string{"cava", "hypridle", "hyprlock"}, runner).Verify(testutil.RunContext())
	assert.False(t, ok)
	assert.Equal(t, "missing: hypridle, hyprlock", detail)
}
