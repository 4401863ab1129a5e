package packages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/domain/platform"
	"github.com/felixgeelhaar/axsetup/internal/testutil/mocks"
)

func TestProvider_Compile(t *testing.T) {
	t.Parallel()

	m := &manifest.Manifest{Packages: map[string][]string{
		"pacman": {"cava"},
		"aur":    {"matugen-bin"},
		"apt":    {"meson"},
	}}

	tests := []struct {
		name string
		pm   *platform.PackageManager
		want []string
	}{
		{"arch", pacman, []string{"packages:install:pacman", "packages:install:aur"}},
		{"debian ignores aur", &platform.PackageManager{Name: "apt", Family: platform.FamilyDebian}, []string{"packages:install:apt"}},
		{"no list for manager", &platform.PackageManager{Name: "dnf", Family: platform.FamilyFedora}, nil},
		{"no manager", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewProvider(mocks.NewCommandRunner())
			steps, err := p.Compile(compiler.NewCompileContext(m, tt.pm))
			require.NoError(t, err)

			var ids []string
			for _, s := range steps {
				ids = append(ids, s.ID().String())
			}
			assert.Equal(t, tt.want, ids)
		})
	}
	assert.Equal(t, "packages", NewProvider(nil).Name())
}
