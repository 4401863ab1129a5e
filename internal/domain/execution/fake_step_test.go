package execution

import (
	"errors"
	"sync"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
)

var errBoom = errors.New("boom")

// fakeStep is a configurable step that records how often it was checked and applied.
type fakeStep struct {
	id        compiler.StepID
	deps      []compiler.StepID
	component string
	checkFn   func(compiler.RunContext) (compiler.StepStatus, error)
	planFn    func(compiler.RunContext) (compiler.Diff, error)
	applyFn   func(compiler.RunContext) error

	mu      sync.Mutex
	checks  int
	applies int
}

func newFakeStep(id string, deps ...string) *fakeStep {
	depIDs := make([]compiler.StepID, len(deps))
	for i, d := range deps {
		depIDs[i] = compiler.MustNewStepID(d)
	}
	return &fakeStep{
		id:   compiler.MustNewStepID(id),
		deps: depIDs,
		checkFn: func(_ compiler.RunContext) (compiler.StepStatus, error) {
			return compiler.StatusNeedsApply, nil
		},
		planFn: func(_ compiler.RunContext) (compiler.Diff, error) {
			return compiler.Add("test", id, "new"), nil
		},
		applyFn: func(_ compiler.RunContext) error {
			return nil
		},
	}
}

// convergingStep needs apply until Apply has succeeded once.
func convergingStep(id string, deps ...string) *fakeStep {
	s := newFakeStep(id, deps...)
	s.checkFn = func(_ compiler.RunContext) (compiler.StepStatus, error) {
		if s.Applies() > 0 {
			return compiler.StatusSatisfied, nil
		}
		return compiler.StatusNeedsApply, nil
	}
	return s
}

func (s *fakeStep) failApply(err error) *fakeStep {
	s.applyFn = func(_ compiler.RunContext) error { return err }
	return s
}

func (s *fakeStep) satisfied() *fakeStep {
	s.checkFn = func(_ compiler.RunContext) (compiler.StepStatus, error) {
		return compiler.StatusSatisfied, nil
	}
	return s
}

func (s *fakeStep) ID() compiler.StepID          { return s.id }
func (s *fakeStep) DependsOn() []compiler.StepID { return s.deps }
func (s *fakeStep) Component() string            { return s.component }

func (s *fakeStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	s.mu.Lock()
	s.checks++
	s.mu.Unlock()
	return s.checkFn(ctx)
}

func (s *fakeStep) Plan(ctx compiler.RunContext) (compiler.Diff, error) {
	return s.planFn(ctx)
}

func (s *fakeStep) Apply(ctx compiler.RunContext) error {
	err := s.applyFn(ctx)
	if err == nil {
		s.mu.Lock()
		s.applies++
		s.mu.Unlock()
	}
	return err
}

func (s *fakeStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation("Test", "Test step", nil)
}

func (s *fakeStep) Checks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks
}

func (s *fakeStep) Applies() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applies
}
