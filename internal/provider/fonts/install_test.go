package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/axsetup/internal/adapters/filesystem"
	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/testutil"
	"github.com/felixgeelhaar/axsetup/internal/testutil/mocks"
)

func TestInstallStep_InterruptedUnzipOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	font := zedSans
	font.Target = filepath.Join(dir, "zed-sans")

	runner := mocks.NewCommandRunner()
	runner.Handle("curl", func(_ string, args []string) (ports.CommandResult, error) {
		return ports.CommandResult{}, os.WriteFile(args[2], []byte("PK"), 0o644)
	})
	runner.Handle("unzip", func(_ string, args []string) (ports.CommandResult, error) {
		dest := args[len(args)-1]
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return ports.CommandResult{}, err
		}
		if err := os.WriteFile(filepath.Join(dest, "ZedSans-Regular.ttf"), []byte("ttf"), 0o644); err != nil {
			return ports.CommandResult{}, err
		}
		return ports.CommandResult{ExitCode: 3, Stderr: "error: invalid compressed data"}, nil
	})

	step := NewInstallStep(font, filesystem.NewRealFileSystem(), runner)
	require.Error(t, step.Apply(testutil.RunContext()))

	status, err := step.Check(testutil.RunContext())
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusNeedsApply, status)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no staging or download files are left behind")
}

func TestInstallStep_FailedBundledCopyOnDisk(t *testing.T) {
	t.Parallel()

	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "tabler-icons.ttf"), []byte("ttf"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(source, "missing.woff2"), filepath.Join(source, "tabler-icons.woff2")))

	dir := t.TempDir()
	font := manifest.Font{Name: "tabler-icons", Source: source, Target: filepath.Join(dir, "tabler-icons")}
	step := NewInstallStep(font, filesystem.NewRealFileSystem(), mocks.NewCommandRunner())

	var fontErr *FontError
	require.ErrorAs(t, step.Apply(testutil.RunContext()), &fontErr)
	assert.Equal(t, "install", fontErr.Stage)

	status, err := step.Check(testutil.RunContext())
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusNeedsApply, status)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
