// Package repo keeps shallow git checkouts of source repositories.
package repo

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/ports"
	"github.com/felixgeelhaar/axsetup/internal/validation"
)

// Checkout describes a repository and where it is checked out.
type Checkout struct {
	Name  string
	URL   string
	Path  string
	Ref   string
	Depth int
}

// SyncStep clones a repository when its checkout is absent and otherwise
// moves it to the fetched upstream tip. Update failures keep the existing
// checkout.
type SyncStep struct {
	id       compiler.StepID
	checkout Checkout
	fs       ports.FileSystem
	runner   ports.CommandRunner
}

// NewSyncStep creates a new SyncStep.
func NewSyncStep(c Checkout, fs ports.FileSystem, runner ports.CommandRunner) *SyncStep {
	if c.Depth <= 0 {
		c.Depth = 1
	}
	return &SyncStep{
		id:       StepIDFor(c.Name),
		checkout: c,
		fs:       fs,
		runner:   runner,
	}
}

// StepIDFor returns the ID of the sync step for a named checkout.
func StepIDFor(name string) compiler.StepID {
	return compiler.IDFor("repo", "sync", name)
}

// ID returns the step identifier.
func (s *SyncStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *SyncStep) DependsOn() []compiler.StepID {
	return nil
}

// Component returns the report name.
func (s *SyncStep) Component() string {
	return s.checkout.Name + " source"
}

// Checkout returns the repository description.
func (s *SyncStep) Checkout() Checkout {
	return s.checkout
}

// Check reports needs-apply when the checkout is absent or behind its
// upstream. A failed fetch is not an error: the existing checkout is kept.
func (s *SyncStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	if err := s.validate(); err != nil {
		return compiler.StatusUnknown, err
	}

	path := s.checkout.Path
	if !s.fs.Exists(path) {
		return compiler.StatusNeedsApply, nil
	}
	if !s.fs.Exists(filepath.Join(path, ".git")) {
		return compiler.StatusUnknown, &GitError{Op: "status", Path: path, Output: "path exists but is not a git checkout"}
	}

	behind, err := s.behind(ctx)
	if err != nil {
		ctx.Logger().Debug(ctx.Context(), "could not check for updates, keeping checkout",
			ports.F("path", path), ports.Err(err))
		return compiler.StatusSatisfied, nil
	}
	if behind {
		return compiler.StatusNeedsApply, nil
	}
	return compiler.StatusSatisfied, nil
}

// Verify reports whether the checkout exists, whether or not it is current.
func (s *SyncStep) Verify(_ compiler.RunContext) (bool, string) {
	if !s.fs.Exists(filepath.Join(s.checkout.Path, ".git")) {
		return false, s.checkout.Path + " is not checked out"
	}
	return true, ""
}

// Plan returns the diff for this step.
func (s *SyncStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	if !s.fs.Exists(s.checkout.Path) {
		return compiler.Add("checkout", s.checkout.Name, s.checkout.Path), nil
	}
	return compiler.Modify("checkout", s.checkout.Name, "local", "upstream"), nil
}

// Apply clones or updates the checkout.
func (s *SyncStep) Apply(ctx compiler.RunContext) error {
	if err := s.validate(); err != nil {
		return err
	}
	if !s.fs.Exists(s.checkout.Path) {
		return s.clone(ctx)
	}

	if err := s.update(ctx); err != nil {
		ctx.Logger().Warn(ctx.Context(), "update failed, keeping existing checkout",
			ports.F("repo", s.checkout.Name), ports.Err(err))
	}
	return nil
}

// update moves the branch to the fetched upstream tip. Shallow tips share no
// history, so a merge cannot fast-forward them; reset --keep refuses to
// touch files with local edits instead.
func (s *SyncStep) update(ctx compiler.RunContext) error {
	if err := s.fetch(ctx); err != nil {
		return err
	}
	return s.git(ctx, "reset", "reset", "--keep", "@{u}")
}

// Explain provides a human-readable explanation.
func (s *SyncStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"Sync source checkout",
		fmt.Sprintf("Clones %s into %s (depth %d) or moves the existing checkout to the upstream tip.",
			s.checkout.URL, s.checkout.Path, s.checkout.Depth),
		[]string{s.checkout.URL},
	)
}

func (s *SyncStep) clone(ctx compiler.RunContext) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.checkout.Path), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", s.checkout.Path, err)
	}

	args := []string{"clone", "--depth", strconv.Itoa(s.checkout.Depth), "--single-branch"}
	if s.checkout.Ref != "" {
		args = append(args, "--branch", s.checkout.Ref)
	}
	args = append(args, s.checkout.URL, s.checkout.Path)

	result, err := s.runner.Run(ctx.Context(), "git", args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return &GitError{Op: "clone", Path: s.checkout.Path, Output: result.Output()}
	}
	return nil
}

// behind fetches the upstream and compares it with HEAD.
func (s *SyncStep) behind(ctx compiler.RunContext) (bool, error) {
	if err := s.fetch(ctx); err != nil {
		return false, err
	}
	head, err := s.revParse(ctx, "HEAD")
	if err != nil {
		return false, err
	}
	upstream, err := s.revParse(ctx, "@{u}")
	if err != nil {
		return false, err
	}
	return head != upstream, nil
}

func (s *SyncStep) fetch(ctx compiler.RunContext) error {
	return s.git(ctx, "fetch", "fetch", "--quiet", "--depth", strconv.Itoa(s.checkout.Depth))
}

func (s *SyncStep) revParse(ctx compiler.RunContext, rev string) (string, error) {
	result, err := s.runner.Run(ctx.Context(), "git", "-C", s.checkout.Path, "rev-parse", rev)
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", &GitError{Op: "rev-parse " + rev, Path: s.checkout.Path, Output: result.Output()}
	}
	return strings.TrimSpace(result.Stdout), nil
}

func (s *SyncStep) git(ctx compiler.RunContext, op string, args ...string) error {
	result, err := s.runner.Run(ctx.Context(), "git", append([]string{"-C", s.checkout.Path}, args...)...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return &GitError{Op: op, Path: s.checkout.Path, Output: result.Output()}
	}
	return nil
}

func (s *SyncStep) validate() error {
	if err := validation.ValidateGitRemoteURL(s.checkout.URL); err != nil {
		return fmt.Errorf("repository %s: %w", s.checkout.Name, err)
	}
	if err := validation.ValidateGitBranch(s.checkout.Ref); err != nil {
		return fmt.Errorf("repository %s: %w", s.checkout.Name, err)
	}
	if err := validation.ValidateGitPath(s.checkout.Path); err != nil {
		return fmt.Errorf("repository %s: %w", s.checkout.Name, err)
	}
	return nil
}
