package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/execution"
	"github.com/felixgeelhaar/axsetup/internal/tui/ui"
)

var titleCase = cases.Title(language.English, cases.NoLower)

// displayName title-cases a component name for the summaries.
func displayName(component string) string {
	return titleCase.String(component)
}

// PlanOptions controls how much PrintPlan shows per step.
type PlanOptions struct {
	// Explain adds each step's explanation below it.
	Explain bool
	// Verbose adds explanation details and documentation links.
	Verbose bool
}

// PrintPlan outputs a human-readable plan summary.
func (s *Setup) PrintPlan(plan *execution.Plan, opts PlanOptions) {
	st := ui.DefaultStyles()
	summary := plan.Summary()

	s.printf("\n%s\n\n", st.Title.Render("axsetup plan"))

	if !plan.HasChanges() && summary.Failed == 0 {
		s.printf("%s\n", st.Success.Render("No changes needed. Your system is up to date."))
		return
	}

	s.printf("Steps: %s\n\n", summary)

	explainCtx := compiler.NewExplainContext().WithVerbose(opts.Verbose)
	for _, entry := range plan.Entries() {
		symbol := st.Success.Render(ui.SymbolOK)
		switch entry.Status() {
		case compiler.StatusNeedsApply:
			symbol = st.Warning.Render(ui.SymbolPending)
		case compiler.StatusUnknown, compiler.StatusFailed:
			symbol = st.Error.Render(ui.SymbolUnknown)
		}
		s.printf("  %s %s %s\n", symbol, entry.Step().ID().String(), st.Help.Render("("+entry.Status().Phrase()+")"))

		if err := entry.Err(); err != nil {
			s.printf("      %s\n", st.Error.Render(err.Error()))
		} else if diff := entry.Diff(); entry.Status() == compiler.StatusNeedsApply && diff.Type() != compiler.DiffTypeNone {
			s.printf("      %s\n", diffStyle(st, diff.Type()).Render(diff.Summary()))
		}

		if opts.Explain {
			for _, line := range entry.Step().Explain(explainCtx).Lines(opts.Verbose) {
				s.printf("      %s\n", st.Help.Render(line))
			}
		}
	}

	s.printf("\nRun 'axsetup apply' to execute this plan.\n")
}

// PrintResults outputs execution results.
func (s *Setup) PrintResults(result execution.RunResult) {
	st := ui.DefaultStyles()
	s.printf("\n%s\n\n", st.Title.Render("Execution results"))

	for _, res := range result.Results {
		name := displayName(res.Component())
		if name == "" {
			name = res.StepID().String()
		}
		switch {
		case res.Failed():
			s.printf("  %s %s: %v\n", st.Error.Render(ui.SymbolFail), name, res.Error())
		case res.Skipped():
			s.printf("  %s %s %s\n", st.Warning.Render(ui.SymbolSkip), name, st.Help.Render("(skipped, a dependency did not complete)"))
		case res.Applied():
			s.printf("  %s %s %s\n", st.Success.Render(ui.SymbolOK), name, st.Help.Render("("+res.Duration().Round(time.Millisecond).String()+")"))
		case res.Status() == compiler.StatusNeedsApply:
			s.printf("  %s %s %s\n", st.Warning.Render(ui.SymbolPending), name, st.Help.Render(res.Diff().Summary()))
		default:
			s.printf("  %s %s %s\n", st.Success.Render(ui.SymbolOK), name, st.Help.Render("(unchanged)"))
		}
	}

	s.printf("\nSummary: %d applied, %d unchanged, %d failed, %d skipped\n",
		result.Applied(), result.Unchanged(), result.Failed(), result.Skipped())
	if result.Fatal != nil {
		s.printf("%s\n", st.Error.Render("Aborted: "+result.Fatal.Error()))
	}
}

// PrintReport outputs the installation report.
func (s *Setup) PrintReport(report *execution.InstallationReport) {
	st := ui.DefaultStyles()
	s.printf("\n%s\n\n", st.Title.Render("Installation report"))

	width := 0
	entries := report.Entries()
	for _, e := range entries {
		width = max(width, len(displayName(e.Component)))
	}

	for _, e := range entries {
		name := displayName(e.Component)
		pad := strings.Repeat(" ", width-len(name))
		if e.Verified {
			s.printf("  %s %s%s  %s\n", st.Success.Render(ui.SymbolOK), name, pad, st.Help.Render(e.Detail))
			continue
		}
		s.printf("  %s %s%s  %s\n", st.Error.Render(ui.SymbolFail), name, pad, st.Warning.Render(e.Detail))
	}

	passed, failed := len(report.Passed()), len(report.Failed())
	line := fmt.Sprintf("%d of %d components verified", passed, passed+failed)
	if report.AllPassed() {
		s.printf("\n%s\n", st.Success.Render(line))
		return
	}
	s.printf("\n%s\n", st.Warning.Render(execution.WarnMarker+" "+line))
}

// PrintLaunch reports the outcome of the launch step.
func (s *Setup) PrintLaunch(res *execution.StepResult) {
	if res == nil {
		return
	}
	st := ui.DefaultStyles()
	switch {
	case res.Failed():
		s.printf("\n%s\n", st.Warning.Render(execution.WarnMarker+" could not launch the shell: "+errText(res.Error())))
	case res.Applied():
		s.printf("\n%s\n", st.Success.Render("Shell launched."))
	case res.Success():
		s.printf("\n%s\n", st.Help.Render("Shell is already running."))
	}
}

func diffStyle(st ui.Styles, t compiler.DiffType) lipgloss.Style {
	if t == compiler.DiffTypeAdd {
		return st.DiffAdd
	}
	return st.DiffModify
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
