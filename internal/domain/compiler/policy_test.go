package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeStep struct {
	Step
	id        StepID
	component string
}

func (f fakeStep) ID() StepID        { return f.id }
func (f fakeStep) Component() string { return f.component }

func TestPolicyOf(t *testing.T) {
	t.Parallel()

	step := fakeStep{id: MustNewStepID("packages:install:pacman")}

	assert.Equal(t, PolicyTolerated, PolicyOf(step))
	assert.Equal(t, PolicyFatal, PolicyOf(Fatal(step)))
	assert.Equal(t, "fatal", PolicyFatal.String())
	assert.Equal(t, "tolerated", PolicyTolerated.String())
}

func TestFatal_PreservesIdentity(t *testing.T) {
	t.Parallel()

	step := fakeStep{id: MustNewStepID("packages:install:pacman"), component: "packages"}
	wrapped := Fatal(step)

	assert.Equal(t, step.ID(), wrapped.ID())
	assert.Equal(t, "packages", ComponentName(wrapped))
}

func TestComponentName_FallsBackToID(t *testing.T) {
	t.Parallel()

	step := fakeStep{id: MustNewStepID("launch:start:ax-shell")}
	assert.Equal(t, "launch:start:ax-shell", ComponentName(step))
}
