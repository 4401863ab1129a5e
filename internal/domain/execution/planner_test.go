package execution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
)

func TestPlanner_Empty(t *testing.T) {
	t.Parallel()

	plan, err := NewPlanner(nil).Plan(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, plan.IsEmpty())
}

func TestPlanner_ChecksWithoutApplying(t *testing.T) {
	t.Parallel()

	pending := newFakeStep("packages:install:pacman")
	done := newFakeStep("rc:ensure:bashrc").satisfied()
	broken := newFakeStep("service:configure:iwd")
	broken.checkFn = func(_ compiler.RunContext) (compiler.StepStatus, error) {
		return compiler.StatusUnknown, errBoom
	}

	plan, err := NewPlanner(nil).Plan(context.Background(), []compiler.Step{pending, done, broken})
	require.NoError(t, err)
	require.Equal(t, 3, plan.Len())

	entries := plan.Entries()
	assert.Equal(t, compiler.StatusNeedsApply, entries[0].Status())
	assert.Equal(t, compiler.DiffTypeAdd, entries[0].Diff().Type())
	assert.Equal(t, compiler.StatusSatisfied, entries[1].Status())
	assert.True(t, entries[1].Diff().IsEmpty())
	assert.Equal(t, compiler.StatusUnknown, entries[2].Status())
	assert.ErrorIs(t, entries[2].Err(), errBoom)

	for _, s := range []*fakeStep{pending, done, broken} {
		assert.Equal(t, 0, s.Applies())
	}

	summary := plan.Summary()
	assert.Equal(t, 1, summary.NeedsApply)
	assert.Equal(t, 1, summary.Satisfied)
	assert.Equal(t, 1, summary.Unknown)
	assert.True(t, plan.HasChanges())
}

func TestPlanner_PlanErrorIsUnknown(t *testing.T) {
	t.Parallel()

	step := newFakeStep("build:install:gray")
	step.planFn = func(_ compiler.RunContext) (compiler.Diff, error) {
		return compiler.Diff{}, errBoom
	}

	plan, err := NewPlanner(nil).Plan(context.Background(), []compiler.Step{step})
	require.NoError(t, err)
	assert.Equal(t, compiler.StatusUnknown, plan.Entries()[0].Status())
	assert.ErrorIs(t, plan.Entries()[0].Err(), errBoom)
}

func TestPlanner_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPlanner(nil).Plan(ctx, []compiler.Step{newFakeStep("fonts:install:zed-sans")})
	assert.ErrorIs(t, err, context.Canceled)
}
