package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a Bubble Tea style component. Modals implement it; their View
// output is placed on the canvas as plain cells.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
