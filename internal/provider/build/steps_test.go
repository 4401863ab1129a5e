package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/testutil"
	"github.com/felixgeelhaar/axsetup/internal/testutil/mocks"
)

const src = "/home/tester/.cache/axsetup/src"

type fixture struct {
	fs     *mocks.FileSystem
	runner *mocks.CommandRunner
	host   *mocks.Host
}

func newFixture(tool manifest.ToolSpec) fixture {
	f := fixture{fs: mocks.NewFileSystem(), runner: mocks.NewCommandRunner(), host: mocks.NewHost()}
	f.fs.AddDir(tool.Path)
	return f
}

func (f fixture) step(tool manifest.ToolSpec) *ToolStep {
	return NewToolStep(tool, f.fs, f.runner, f.host)
}

// succeedAll makes every command succeed and, for install stages, creates dest.
func (f fixture) succeedAll(dest string) {
	ok := func(_ string, args []string) (ports.CommandResult, error) {
		for _, a := range args {
			if a == "install" || a == "--install" {
				f.fs.AddFile(dest, "bin")
			}
		}
		return ports.CommandResult{}, nil
	}
	for _, c := range []string{"make", "cmake", "meson", "sudo"} {
		f.runner.Handle(c, ok)
	}
}

func TestToolStep_SkipsWhenInstalled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tool  manifest.ToolSpec
		setup func(fixture)
	}{
		{
			name:  "absolute artifact",
			tool:  manifest.ToolSpec{Name: "gray", Path: src + "/gray", Build: manifest.BuildMeson, Prefix: "/usr", Artifact: "/usr/lib/girepository-1.0/Gray-0.1.typelib"},
			setup: func(f fixture) { f.fs.AddFile("/usr/lib/girepository-1.0/Gray-0.1.typelib", "") },
		},
		{
			name:  "binary in prefix",
			tool:  manifest.ToolSpec{Name: "hyprshot", Path: src + "/hyprshot", Build: manifest.BuildCopy, Prefix: "/home/tester/.local", Artifact: "hyprshot"},
			setup: func(f fixture) { f.fs.AddFile("/home/tester/.local/bin/hyprshot", "#!/bin/sh") },
		},
		{
			name:  "binary on PATH",
			tool:  manifest.ToolSpec{Name: "nvtop", Path: src + "/nvtop", Build: manifest.BuildCMake, Prefix: "/usr/local", Artifact: "nvtop"},
			setup: func(f fixture) { f.host.AddBinary("nvtop") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(tt.tool)
			tt.setup(f)

			status, err := f.step(tt.tool).Check(testutil.RunContext())
			require.NoError(t, err)
			assert.Equal(t, compiler.StatusSatisfied, status)
			assert.Empty(t, f.runner.Calls(), "no build commands for an installed tool")
		})
	}
}

func TestToolStep_BuildKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tool manifest.ToolSpec
		want []string
	}{
		{
			name: "make into home prefix",
			tool: manifest.ToolSpec{Name: "brightnessctl", Path: src + "/brightnessctl", Build: manifest.BuildMake, Prefix: "/home/tester/.local", Artifact: "brightnessctl"},
			want: []string{"make", "make install PREFIX=/home/tester/.local"},
		},
		{
			name: "cmake into system prefix",
			tool: manifest.ToolSpec{Name: "nvtop", Path: src + "/nvtop", Build: manifest.BuildCMake, Prefix: "/usr/local", Artifact: "nvtop", Options: []string{"-DNVIDIA_SUPPORT=ON"}},
			want: []string{
				"cmake -B build -DCMAKE_INSTALL_PREFIX=/usr/local -DNVIDIA_SUPPORT=ON",
				"cmake --build build",
				"sudo cmake --install build",
			},
		},
		{
			name: "meson into system prefix",
			tool: manifest.ToolSpec{Name: "gray", Path: src + "/gray", Build: manifest.BuildMeson, Prefix: "/usr", Artifact: "gray"},
			want: []string{
				"meson setup build --prefix=/usr",
				"meson compile -C build",
				"sudo meson install -C build",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(tt.tool)
			f.succeedAll(tt.tool.Prefix + "/bin/" + tt.tool.Artifact)

			require.NoError(t, f.step(tt.tool).Apply(testutil.RunContext()))
			assert.Equal(t, tt.want, f.runner.CallStrings())
			for _, c := range f.runner.Calls() {
				assert.Equal(t, tt.tool.Path, c.Dir, "build commands run in the checkout")
			}
		})
	}
}

func TestToolStep_MesonRebuildWipes(t *testing.T) {
	t.Parallel()

	tool := manifest.ToolSpec{Name: "gray", Path: src + "/gray", Build: manifest.BuildMeson, Prefix: "/home/tester/.local", Artifact: "gray"}
	f := newFixture(tool)
	f.fs.AddDir(tool.Path + "/build")
	f.succeedAll("/home/tester/.local/bin/gray")

	require.NoError(t, f.step(tool).Apply(testutil.RunContext()))
	assert.Equal(t, "meson setup build --prefix=/home/tester/.local --wipe", f.runner.CallStrings()[0])
}

func TestToolStep_Copy(t *testing.T) {
	t.Parallel()

	tool := manifest.ToolSpec{Name: "hyprshot", Path: src + "/hyprshot", Build: manifest.BuildCopy, Prefix: "/home/tester/.local", Artifact: "hyprshot"}
	f := newFixture(tool)
	f.fs.AddFile(tool.Path+"/hyprshot", "#!/usr/bin/env bash")

	step := f.step(tool)
	require.NoError(t, step.Apply(testutil.RunContext()))
	assert.Equal(t, "#!/usr/bin/env bash", f.fs.Content("/home/tester/.local/bin/hyprshot"))
	assert.Empty(t, f.runner.Calls())

	status, err := step.Check(testutil.RunContext())
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusSatisfied, status)
}

func TestToolStep_FallbackOnBuildFailure(t *testing.T) {
	t.Parallel()

	tool := manifest.ToolSpec{Name: "nvtop", Path: src + "/nvtop", Build: manifest.BuildCMake, Prefix: "/home/tester/.local", Artifact: "nvtop", Fallback: "dist/nvtop"}
	f := newFixture(tool)
	f.fs.AddFile(tool.Path+"/dist/nvtop", "prebuilt")
	f.runner.Handle("cmake", func(_ string, _ []string) (ports.CommandResult, error) {
		return ports.CommandResult{ExitCode: 2, Stderr: "CMake Error: could not find NVML"}, nil
	})

	require.NoError(t, f.step(tool).Apply(testutil.RunContext()))
	assert.Equal(t, "prebuilt", f.fs.Content("/home/tester/.local/bin/nvtop"))
}

func TestToolStep_BuildErrorWithoutFallback(t *testing.T) {
	t.Parallel()

	tool := manifest.ToolSpec{Name: "gray", Path: src + "/gray", Build: manifest.BuildMeson, Prefix: "/usr", Artifact: "gray", Fallback: "missing/gray"}
	f := newFixture(tool)
	f.runner.Handle("meson", func(_ string, args []string) (ports.CommandResult, error) {
		if args[0] == "compile" {
			return ports.CommandResult{ExitCode: 1, Stderr: "ninja: build stopped"}, nil
		}
		return ports.CommandResult{}, nil
	})

	err := f.step(tool).Apply(testutil.RunContext())
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "meson compile", buildErr.Stage)
	assert.Contains(t, err.Error(), "ninja: build stopped")
	assert.Zero(t, f.runner.CountCalls("sudo"), "install is not attempted after a failed compile")
}

func TestToolStep_MissingCheckout(t *testing.T) {
	t.Parallel()

	tool := manifest.ToolSpec{Name: "gray", Path: src + "/gray", Build: manifest.BuildMeson, Prefix: "/usr", Artifact: "gray"}
	f := fixture{fs: mocks.NewFileSystem(), runner: mocks.NewCommandRunner(), host: mocks.NewHost()}

	err := f.step(tool).Apply(testutil.RunContext())
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "source", buildErr.Stage)
}

func TestToolStep_ArtifactMissingAfterInstall(t *testing.T) {
	t.Parallel()

	tool := manifest.ToolSpec{Name: "brightnessctl", Path: src + "/brightnessctl", Build: manifest.BuildMake, Prefix: "/home/tester/.local", Artifact: "brightnessctl"}
	f := newFixture(tool)
	f.runner.Handle("make", func(_ string, _ []string) (ports.CommandResult, error) {
		return ports.CommandResult{}, nil
	})

	err := f.step(tool).Apply(testutil.RunContext())
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "verify", buildErr.Stage)
}

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	m := testutil.NewManifest().
		WithTool(manifest.ToolSpec{Name: "gray", Repo: "https://github.com/Fabric-Development/gray.git", Build: manifest.BuildMeson, Artifact: "gray"}).
		WithTool(manifest.ToolSpec{Name: "hyprshot", Repo: "https://github.com/Gustash/Hyprshot.git", Build: manifest.BuildCopy, Artifact: "hyprshot"}).
		Build()

	p := NewProvider(mocks.NewFileSystem(), mocks.NewCommandRunner(), mocks.NewHost())
	steps, err := p.Compile(compiler.NewCompileContext(m, nil))
	require.NoError(t, err)

	var ids []string
	for _, s := range steps {
		ids = append(ids, s.ID().String())
	}
	assert.Equal(t, []string{"repo:sync:gray", "build:install:gray", "repo:sync:hyprshot", "build:install:hyprshot"}, ids)
	assert.Equal(t, []compiler.StepID{steps[0].ID()}, steps[1].DependsOn())
}
