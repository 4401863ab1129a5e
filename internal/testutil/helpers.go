// Package testutil provides test helpers shared across axsetup packages.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/stretchr/testify/require"
)

// WriteTempFile writes content to a file in the specified directory.
func WriteTempFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write temp file: %s", filename)

	return path
}

// RunContext returns a background RunContext for driving steps directly.
func RunContext() compiler.RunContext {
	return compiler.NewRunContext(context.Background())
}
