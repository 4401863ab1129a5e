package rcfile

import (
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
	"github.com/felixgeelhaar/axsetup/internal/ports"
)

// LineStep ensures one line is present in an rc file.
type LineStep struct {
	id compiler.StepID
	rc manifest.RcLine
	fs ports.FileSystem
}

// NewLineStep creates a new LineStep.
func NewLineStep(rc manifest.RcLine, fs ports.FileSystem) *LineStep {
	key := rc.Marker
	if key == "" {
		key = rc.Line
	}
	return &LineStep{
		id: compiler.IDFor("rc", "line", filepath.Base(rc.File)+"-"+key),
		rc: rc,
		fs: fs,
	}
}

// ID returns the step identifier.
func (s *LineStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *LineStep) DependsOn() []compiler.StepID {
	return nil
}

// Component returns the report name.
func (s *LineStep) Component() string {
	return filepath.Base(s.rc.File) + " entry"
}

// Check reports whether the line, or its marker, is already in the file.
func (s *LineStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	content, err := s.read()
	if err != nil {
		return compiler.StatusUnknown, err
	}
	if HasLine(content, s.rc.Line, s.rc.Marker) {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *LineStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.Add("rc line", s.rc.File, s.rc.Line), nil
}

// Apply appends the line unless it is already present.
func (s *LineStep) Apply(_ compiler.RunContext) error {
	content, err := s.read()
	if err != nil {
		return err
	}
	if HasLine(content, s.rc.Line, s.rc.Marker) {
		return nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.rc.File), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(s.rc.File), err)
	}
	if err := s.fs.WriteFile(s.rc.File, []byte(AppendLine(content, s.rc.Line)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.rc.File, err)
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *LineStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"Update shell rc file",
		fmt.Sprintf("Appends %q to %s if it is not there yet.", s.rc.Line, s.rc.File),
		nil,
	)
}

// read returns the file content, or "" when the file does not exist yet.
func (s *LineStep) read() (string, error) {
	if !s.fs.Exists(s.rc.File) {
		return "", nil
	}
	data, err := s.fs.ReadFile(s.rc.File)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.rc.File, err)
	}
	return string(data), nil
}

// Ensure LineStep implements compiler.Step.
var _ compiler.Step = (*LineStep)(nil)
