package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
)

func TestLifecycle_Paths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []string
		want   []Phase
	}{
		{
			name:   "applied",
			events: []string{EventCheck, EventAct, EventSucceed},
			want:   []Phase{PhasePending, PhaseChecking, PhaseActing, PhaseSucceeded},
		},
		{
			name:   "already satisfied",
			events: []string{EventCheck, EventSatisfied},
			want:   []Phase{PhasePending, PhaseChecking, PhaseSkipped},
		},
		{
			name:   "apply failed",
			events: []string{EventCheck, EventAct, EventFail},
			want:   []Phase{PhasePending, PhaseChecking, PhaseActing, PhaseFailed},
		},
		{
			name:   "check failed",
			events: []string{EventCheck, EventFail},
			want:   []Phase{PhasePending, PhaseChecking, PhaseFailed},
		},
		{
			name:   "dependency skipped",
			events: []string{EventSkip},
			want:   []Phase{PhasePending, PhaseSkipped},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lc, err := NewLifecycle(compiler.MustNewStepID("build:install:gray"))
			require.NoError(t, err)
			defer lc.Close()

			for _, ev := range tt.events {
				assert.True(t, lc.Fire(ev), "event %s", ev)
			}
			assert.Equal(t, tt.want, lc.History())
			assert.True(t, lc.Phase().IsTerminal())
		})
	}
}

func TestLifecycle_IgnoresInvalidEvents(t *testing.T) {
	t.Parallel()

	lc, err := NewLifecycle(compiler.MustNewStepID("rc:ensure:bashrc"))
	require.NoError(t, err)
	defer lc.Close()

	assert.False(t, lc.Fire(EventAct), "cannot act before checking")
	assert.False(t, lc.Fire(EventSucceed))
	assert.Equal(t, PhasePending, lc.Phase())

	require.True(t, lc.Fire(EventCheck))
	require.True(t, lc.Fire(EventSatisfied))

	for _, ev := range []string{EventCheck, EventAct, EventFail, EventSkip} {
		assert.False(t, lc.Fire(ev), "no transitions out of a terminal phase")
	}
	assert.Equal(t, PhaseSkipped, lc.Phase())
	assert.Len(t, lc.History(), 3)
}

func TestLifecycle_Duration(t *testing.T) {
	t.Parallel()

	lc, err := NewLifecycle(compiler.MustNewStepID("fonts:install:zed-sans"))
	require.NoError(t, err)
	defer lc.Close()

	lc.Fire(EventSkip)
	assert.Zero(t, lc.Duration(), "skipped before checking")
}
