package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RenameTabModal prompts for a new tab name.
type RenameTabModal struct {
	index int
	input textinput.Model
}

var _ View = (*RenameTabModal)(nil)

// NewRenameTabModal creates a prompt prefilled with the current name.
func NewRenameTabModal(index int, current string) *RenameTabModal {
	ti := textinput.New()
	ti.Placeholder = "tab name"
	ti.CharLimit = 32
	ti.Width = 32
	ti.SetValue(current)
	ti.Focus()
	return &RenameTabModal{index: index, input: ti}
}

// Init implements View.
func (m *RenameTabModal) Init() tea.Cmd { return nil }

// Value returns the text typed so far.
func (m *RenameTabModal) Value() string { return m.input.Value() }

// Update implements View.
func (m *RenameTabModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, dismissModal
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			index := m.index
			return m, func() tea.Msg {
				return DismissModalMsg{Then: RenameTabMsg{Index: index, Name: name}}
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *RenameTabModal) View() string {
	content := Styles.Title.Render("Rename tab") + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: rename  Esc: cancel")
	return Styles.Box.Render(content)
}
