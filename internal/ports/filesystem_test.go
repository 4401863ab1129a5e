package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		home  string
		want  string
	}{
		{"~/.bashrc", "/home/tester", "/home/tester/.bashrc"},
		{"~", "/home/tester", "/home/tester"},
		{"~/.local/share/fonts/", "/home/tester", "/home/tester/.local/share/fonts"},
		{"/etc/os-release", "/home/tester", "/etc/os-release"},
		{"relative/path", "/home/tester", "relative/path"},
		{"/path/with~tilde", "/home/tester", "/path/with~tilde"},
		{"~other/.bashrc", "/home/tester", "~other/.bashrc"},
		{"~/.bashrc", "", "~/.bashrc"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExpandHome(tt.input, tt.home))
		})
	}
}
