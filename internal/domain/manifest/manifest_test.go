package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
app:
  repo: https://github.com/Axenide/Ax-Shell.git
  path: /opt/ax-shell
tools:
  - name: gray
    repo: https://github.com/Fabric-Development/gray.git
    build: meson
    artifact: gray
launch:
  disabled: true
`

func TestDefault(t *testing.T) {
	t.Parallel()

	m, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/Axenide/Ax-Shell.git", m.App.Repo)
	assert.Equal(t, "~/.config/Ax-Shell", m.App.Path, "paths stay unexpanded until a home is known")
	assert.Equal(t, 1, m.App.Depth)
	assert.NotEmpty(t, m.PackagesFor("pacman"))
	assert.Nil(t, m.PackagesFor("zypper"))

	kinds := map[BuildKind]bool{}
	for _, tool := range m.Tools {
		kinds[tool.Build] = true
	}
	assert.Len(t, kinds, len(BuildKinds), "the built-in manifest exercises every build kind")

	assert.Equal(t, []string{"uwsm", "app", "--"}, m.Launch.Wrapper)
	assert.Equal(t, "~/.config/Ax-Shell/main.py", m.Launch.Command[1])
}

func TestManifest_ExpandHome(t *testing.T) {
	t.Parallel()

	m, err := Default()
	require.NoError(t, err)
	m.ExpandHome("/home/tester")

	assert.Equal(t, "/home/tester/.config/Ax-Shell", m.App.Path)
	for _, tool := range m.Tools {
		assert.NotContains(t, tool.Path, "~", tool.Name)
		assert.NotContains(t, tool.Prefix, "~", tool.Name)
	}
	for _, font := range m.Fonts {
		assert.True(t, strings.HasPrefix(font.Target, "/home/tester/.fonts/"), font.Target)
	}
	assert.Equal(t, "/home/tester/.bashrc", m.Rc[0].File)
	assert.Equal(t, "/home/tester/.config/Ax-Shell/main.py", m.Launch.Command[1])
	assert.Equal(t, "python", m.Launch.Command[0])

	m.ExpandHome("/home/other")
	assert.Equal(t, "/home/tester/.config/Ax-Shell", m.App.Path, "expanded paths are left alone")
}

func TestParse_AppliesDefaults(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(minimalYAML), FormatYAML)
	require.NoError(t, err)

	tool := m.Tools[0]
	assert.Equal(t, "~/.cache/axsetup/src/gray", tool.Path)
	assert.Equal(t, DefaultPrefix, tool.Prefix)
	assert.Equal(t, DefaultDepth, tool.Depth)
	assert.Equal(t, "python3", m.Verify.Python)
}

func TestParse_TOML(t *testing.T) {
	t.Parallel()

	src := `
[app]
repo = "https://github.com/Axenide/Ax-Shell.git"
path = "/opt/ax-shell"

[packages]
pacman = ["git", "unzip"]

[[services]]
name = "NetworkManager"
enabled = true
running = true

[[rc]]
line = "export EDITOR=nvim"

[launch]
command = ["python", "/opt/ax-shell/main.py"]
`
	m, err := Parse([]byte(src), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, []string{"git", "unzip"}, m.PackagesFor("pacman"))
	require.Len(t, m.Services, 1)
	assert.True(t, m.Services[0].Enabled)
	assert.Equal(t, DefaultRcFile, m.Rc[0].File)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(minimalYAML+"\nextras: true\n"), FormatYAML)
	require.Error(t, err)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, ErrCodeParse, userErr.Code)
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	t.Parallel()

	m := &Manifest{
		Tools: []ToolSpec{
			{Name: "gray", Repo: "x", Build: "bazel", Artifact: "gray"},
			{Name: "gray", Build: BuildMake},
		},
		Fonts:    []Font{{Name: "zed", URL: "u", Source: "s"}},
		Services: []Service{{}},
		Rc:       []RcLine{{Line: "a\nb"}},
		Verify:   Verify{Binaries: []Binary{{Name: "matugen", MinVersion: "two"}}},
	}

	err := m.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, &UserError{Code: ErrCodeValidationFailed}))

	var list *ErrorList
	require.ErrorAs(t, err, &list)

	msg := err.Error()
	for _, want := range []string{
		"app.repo", "app.path", `unknown build kind "bazel"`, `duplicate tool "gray"`,
		"tools[1].repo", "tools[1].artifact", "exactly one of url or source",
		"fonts[0].target", "services[0].name", "must be a single line",
		`invalid version "two"`, "launch.command",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path := filepath.Join(dir, "axsetup.yml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o644))
	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/ax-shell", m.App.Path)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, ErrCodeNotFound, userErr.Code)
	assert.NotEmpty(t, userErr.Suggestion)

	_, err = Load(filepath.Join(dir, "axsetup.json"))
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, ErrCodeUnsupportedType, userErr.Code)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("app: [unterminated"), 0o644))
	_, err = Load(bad)
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, bad, userErr.Context)
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := Default()
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatTOML} {
		data, err := Marshal(m, format)
		require.NoError(t, err)

		again, err := Parse(data, format)
		require.NoError(t, err, string(format))
		assert.Equal(t, m.App, again.App)
		assert.Equal(t, m.Tools, again.Tools)
	}

	_, err = Marshal(m, "json")
	assert.Error(t, err)
}

func TestUserError_Format(t *testing.T) {
	t.Parallel()

	err := &UserError{
		Code:       ErrCodeNotFound,
		Message:    "manifest file not found",
		Context:    "/tmp/axsetup.yaml",
		Suggestion: "omit --config",
		Underlying: errors.New("no such file"),
	}

	out := err.Format()
	assert.True(t, strings.HasPrefix(out, "[MANIFEST_NOT_FOUND]"))
	assert.Contains(t, out, "Suggestion: omit --config")
	assert.Contains(t, out, "Cause: no such file")
	assert.Equal(t, "manifest file not found (at /tmp/axsetup.yaml)", err.Error())
}

func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "v2.4.0", NormalizeVersion("2.4.0"))
	assert.Equal(t, "v1.0", NormalizeVersion(" v1.0 "))
	assert.Equal(t, "", NormalizeVersion(""))
}
