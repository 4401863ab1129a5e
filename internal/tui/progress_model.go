package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/axsetup/internal/domain/compiler"
	"github.com/felixgeelhaar/axsetup/internal/domain/execution"
	"github.com/felixgeelhaar/axsetup/internal/tui/ui"
)

// StepStartedMsg is sent when a step starts executing.
type StepStartedMsg struct {
	StepID    compiler.StepID
	Component string
	Index     int
	Total     int
}

// StepFinishedMsg is sent when a step completes execution.
type StepFinishedMsg struct {
	Result execution.StepResult
	Index  int
	Total  int
}

// DoneMsg is sent when the work behind the progress view returns.
type DoneMsg struct {
	Err error
}

// recentSteps is how many finished steps the details list shows.
const recentSteps = 8

// progressModel is the Bubble Tea model for a provisioning run.
type progressModel struct {
	title   string
	styles  ui.Styles
	keys    ui.KeyMap
	spinner spinner.Model

	width       int
	total       int
	current     string
	finished    []execution.StepResult
	failed      int
	showDetails bool

	done      bool
	cancelled bool
	err       error
}

func newProgressModel(title string) progressModel {
	styles := ui.DefaultStyles()
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))

	return progressModel{
		title:       title,
		styles:      styles,
		keys:        ui.DefaultKeyMap(),
		spinner:     s,
		width:       80,
		showDetails: true,
	}
}

// Init starts the spinner.
func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.keys.IsQuit(msg):
			m.cancelled = true
			return m, tea.Quit
		case m.keys.IsDetails(msg):
			m.showDetails = !m.showDetails
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StepStartedMsg:
		m.total = max(m.total, msg.Total)
		m.current = msg.Component
		if m.current == "" {
			m.current = msg.StepID.String()
		}
		return m, nil

	case StepFinishedMsg:
		m.total = max(m.total, msg.Total)
		m.finished = append(m.finished, msg.Result)
		if msg.Result.Failed() {
			m.failed++
		}
		m.current = ""
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model.
func (m progressModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Progress: %d/%d steps", len(m.finished), m.total)
	if m.failed > 0 {
		status += fmt.Sprintf(" (%d failed)", m.failed)
	}
	b.WriteString(m.styles.Help.Render(status))
	b.WriteString("\n\n")

	if m.current != "" && !m.done {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.styles.Info.Render(m.current))
		b.WriteString("\n\n")
	}

	if m.showDetails && len(m.finished) > 0 {
		start := max(0, len(m.finished)-recentSteps)
		for _, res := range m.finished[start:] {
			fmt.Fprintf(&b, "  %s %s\n", m.symbol(res), label(res))
		}
	}

	switch {
	case m.done && m.err != nil:
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Aborted: " + m.err.Error()))
		b.WriteString("\n")
	case m.done && m.failed > 0:
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%s Completed with %d failures", execution.WarnMarker, m.failed)))
		b.WriteString("\n")
	case m.done:
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render("All steps completed."))
		b.WriteString("\n")
	default:
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render(m.keys.HelpLine()))
	}

	return b.String()
}

func (m progressModel) symbol(res execution.StepResult) string {
	switch {
	case res.Failed():
		return m.styles.Error.Render(ui.SymbolFail)
	case res.Skipped():
		return m.styles.Help.Render(ui.SymbolSkip)
	case res.Success():
		return m.styles.Success.Render(ui.SymbolOK)
	case res.Status() == compiler.StatusNeedsApply:
		return m.styles.Warning.Render(ui.SymbolPending)
	}
	return m.styles.Help.Render(ui.SymbolUnknown)
}

func label(res execution.StepResult) string {
	if res.Component() != "" {
		return res.Component()
	}
	return res.StepID().String()
}
