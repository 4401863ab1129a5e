package execution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
)

func TestStepResult(t *testing.T) {
	t.Parallel()

	stepID := compiler.MustNewStepID("packages:install:pacman")

	tests := []struct {
		name      string
		status    compiler.StepStatus
		err       error
		phase     Phase
		success   bool
		failed    bool
		tolerated bool
	}{
		{"satisfied", compiler.StatusSatisfied, nil, PhaseSucceeded, true, false, false},
		{"failed", compiler.StatusFailed, errBoom, PhaseFailed, false, true, true},
		{"skipped", compiler.StatusSkipped, nil, PhaseSkipped, false, false, false},
		{"planned", compiler.StatusNeedsApply, nil, PhaseChecking, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewStepResult(stepID, tt.status, tt.err)
			assert.True(t, r.StepID().Equals(stepID))
			assert.Equal(t, tt.phase, r.Phase())
			assert.Equal(t, tt.success, r.Success())
			assert.Equal(t, tt.failed, r.Failed())
			assert.Equal(t, tt.tolerated, r.Tolerated())
			assert.Equal(t, tt.err, r.Error())
		})
	}
}

func TestStepResult_With(t *testing.T) {
	t.Parallel()

	diff := compiler.Add("package", "cava", "installed")
	r := NewStepResult(compiler.MustNewStepID("packages:install:pacman"), compiler.StatusFailed, errBoom).
		WithDuration(2 * time.Second).
		WithDiff(diff).
		WithPolicy(compiler.PolicyFatal).
		WithComponent("packages")

	assert.Equal(t, 2*time.Second, r.Duration())
	assert.Equal(t, diff, r.Diff())
	assert.Equal(t, "packages", r.Component())
	assert.False(t, r.Tolerated())
}
