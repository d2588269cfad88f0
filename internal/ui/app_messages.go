package ui

import tea "github.com/charmbracelet/bubbletea"

// ShowAllMsg shows every panel of the active tab.
type ShowAllMsg struct{}

// HideAllMsg hides every panel of the active tab.
type HideAllMsg struct{}

// ResetLayoutMsg restores the registration defaults of the active tab.
type ResetLayoutMsg struct{}

// TogglePanelMsg shows or hides the panel at Index.
type TogglePanelMsg struct {
	Index int
}

// ToggleDetachMsg floats or docks the focused panel.
type ToggleDetachMsg struct{}

// FocusMsg moves keyboard focus Delta panels along the visible order.
type FocusMsg struct {
	Delta int
}

// NewTabMsg creates a tab and switches to it.
type NewTabMsg struct{}

// RequestCloseTabMsg asks before closing the active tab.
type RequestCloseTabMsg struct{}

// CloseTabMsg closes tab Index.
type CloseTabMsg struct {
	Index int
}

// RequestRenameTabMsg opens the rename prompt for the active tab.
type RequestRenameTabMsg struct{}

// RenameTabMsg renames tab Index.
type RenameTabMsg struct {
	Index int
	Name  string
}

// SwitchTabMsg activates the tab Delta places away, wrapping around.
type SwitchTabMsg struct {
	Delta int
}

// MoveTabMsg moves the active tab Delta places, clamped to the strip.
type MoveTabMsg struct {
	Delta int
}

// DismissModalMsg closes the top modal, then handles Then when set.
type DismissModalMsg struct {
	Then tea.Msg
}

// StatusMsg shows Text at the right of the tab strip until the next
// status.
type StatusMsg struct {
	Text  string
	Error bool
}
