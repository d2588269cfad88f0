package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModal asks a yes/no question. Enter or y confirms; Esc or n
// cancels.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string
	OnConfirm func() tea.Msg

	boxStyle   lipgloss.Style
	titleStyle lipgloss.Style
}

var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a warning-styled confirmation.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:      title,
		Label:      label,
		OnConfirm:  onConfirm,
		boxStyle:   Styles.BoxDanger,
		titleStyle: Styles.TitleWarning,
	}
}

// WithDetails adds a second line under the label.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewCloseTabConfirmModal confirms closing tab index.
func NewCloseTabConfirmModal(index int, name string) *ConfirmModal {
	return NewConfirmModal("Close tab?", "Tab: "+name, func() tea.Msg {
		return CloseTabMsg{Index: index}
	}).WithDetails("Its layout is discarded.")
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd { return nil }

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "n":
			return m, dismissModal
		case "enter", "y":
			if m.OnConfirm != nil {
				confirm := m.OnConfirm
				return m, func() tea.Msg { return DismissModalMsg{Then: confirm()} }
			}
			return m, dismissModal
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := m.titleStyle.Render(m.Title) + "\n\n" + Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.Hint.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  Esc: cancel")
	return m.boxStyle.Render(content)
}

func dismissModal() tea.Msg { return DismissModalMsg{} }
