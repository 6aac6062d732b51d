package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/stateful/listview"
)

// keyMap defines the application bindings. List navigation, refresh and
// retry belong to the embedded list view.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Item actions
	Copy   key.Binding
	Reload key.Binding

	list listview.KeyMap
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy title"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reload from start"),
		),
		list: listview.DefaultKeyMap(),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.list.Refresh, k.Copy, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	groups := k.list.FullHelp()
	return append(groups,
		[]key.Binding{k.Copy, k.Reload},
		[]key.Binding{k.CycleTheme, k.Help, k.Quit},
	)
}
