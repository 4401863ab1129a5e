package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap contains the key bindings of the progress view.
type KeyMap struct {
	// Details toggles the list of finished steps.
	Details key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Details: key.NewBinding(
			key.WithKeys("d", "tab"),
			key.WithHelp("d", "toggle details"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

// IsQuit returns true if the key message cancels the run.
func (k KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Quit)
}

// IsDetails returns true if the key message toggles the details list.
func (k KeyMap) IsDetails(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Details)
}

// HelpLine renders the bindings as "d toggle details • q cancel".
func (k KeyMap) HelpLine() string {
	line := ""
	for i, b := range []key.Binding{k.Details, k.Quit} {
		if i > 0 {
			line += " • "
		}
		line += b.Help().Key + " " + b.Help().Desc
	}
	return line
}
