package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Trigger buttons
	Success key.Binding
	Info    key.Binding
	Warning key.Binding
	Error   key.Binding

	// Actions
	Dismiss    key.Binding
	DismissAll key.Binding
	Position   key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Success, k.Info, k.Warning, k.Error, k.Dismiss, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Success, k.Info, k.Warning, k.Error},
		{k.Dismiss, k.DismissAll, k.Position},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Success: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "success"),
		),
		Info: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "info"),
		),
		Warning: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "warning"),
		),
		Error: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "error"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x", "d"),
			key.WithHelp("x/d", "dismiss newest"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("X", "D"),
			key.WithHelp("X/D", "dismiss all"),
		),
		Position: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next position"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}
