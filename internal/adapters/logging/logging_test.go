package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	child := logger.With(ports.F("step", "rc:line:bashrc"))
	child.Info(ctx, "discarded")
	assert.Equal(t, ports.LevelInfo, logger.Level())
	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
	assert.Equal(t, ports.LevelDebug, child.Level())
	require.NoError(t, logger.Sync())
}

func TestZapLogger_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZapLogger(WithOutput(&buf), WithTimestamp(false))

	logger.Warn(context.Background(), "⚠ package install incomplete", ports.F("step", "packages:install:pacman"))

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "⚠ package install incomplete")
	assert.Contains(t, out, "packages:install:pacman")
}

func TestZapLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZapLogger(WithOutput(&buf), WithJSONFormat(true), WithTimestamp(false))

	logger.With(ports.F("run_id", "abc")).Info(context.Background(), "step applied", ports.F("step", "fonts:install:zed-sans"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "step applied", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "fonts:install:zed-sans", entry["step"])
	assert.NotContains(t, entry, "ts")
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZapLogger(WithOutput(&buf), WithLevel(ports.LevelWarn), WithTimestamp(false))
	ctx := context.Background()

	logger.Info(ctx, "hidden")
	logger.Warn(ctx, "shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Equal(t, ports.LevelWarn, logger.Level())

	logger.SetLevel(ports.LevelDebug)
	logger.Debug(ctx, "now visible")
	assert.Equal(t, ports.LevelDebug, logger.Level())
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}
