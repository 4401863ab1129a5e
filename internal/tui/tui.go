// Package tui provides the terminal progress view for provisioning runs.
package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/execution"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramObserver forwards runner events to a Bubble Tea program.
type ProgramObserver struct {
	sender Sender
}

// NewProgramObserver creates an observer sending to s.
func NewProgramObserver(s Sender) *ProgramObserver {
	return &ProgramObserver{sender: s}
}

// StepStarted sends a StepStartedMsg.
func (o *ProgramObserver) StepStarted(step compiler.Step, index, total int) {
	o.sender.Send(StepStartedMsg{
		StepID:    step.ID(),
		Component: compiler.ComponentName(step),
		Index:     index,
		Total:     total,
	})
}

// StepFinished sends a StepFinishedMsg.
func (o *ProgramObserver) StepFinished(result execution.StepResult, index, total int) {
	o.sender.Send(StepFinishedMsg{Result: result, Index: index, Total: total})
}

var _ execution.Observer = (*ProgramObserver)(nil)

// ProgressOptions configures the progress view.
type ProgressOptions struct {
	Title string
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// ProgressResult is the outcome of RunProgress.
type ProgressResult struct {
	Finished  []execution.StepResult
	Failed    int
	Cancelled bool
}

// Work is the job shown by the progress view. It reports its steps to the
// observer and stops when ctx is cancelled.
type Work func(ctx context.Context, observer execution.Observer) error

// RunProgress runs work in the background while the progress view renders
// its steps. Cancelling from the keyboard cancels the context passed to work;
// RunProgress returns only after work has returned.
func RunProgress(ctx context.Context, opts ProgressOptions, work Work) (*ProgressResult, error) {
	if opts.Title == "" {
		opts.Title = "Provisioning"
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(newProgressModel(opts.Title), programOpts...)

	workErr := make(chan error, 1)
	go func() {
		err := work(ctx, NewProgramObserver(p))
		workErr <- err
		p.Send(DoneMsg{Err: err})
	}()

	finalModel, runErr := p.Run()
	cancel()
	err := <-workErr

	// A killed program may not hand back its model.
	m, _ := finalModel.(progressModel)
	result := &ProgressResult{
		Finished:  m.finished,
		Failed:    m.failed,
		Cancelled: m.cancelled,
	}

	if err != nil {
		return result, err
	}
	if runErr != nil && !m.cancelled {
		return result, fmt.Errorf("progress view failed: %w", runErr)
	}
	return result, nil
}
