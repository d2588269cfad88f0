package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
)

// RenderKeybindHelp renders the hint bar shown while a leader sequence is
// being typed, or "" when nothing follows.
func RenderKeybindHelp(h *KeyHandler, mode AppMode, width int) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	bindings := NewKeyMap(h, mode).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	m := help.New()
	m.Width = max(width-6, 0)
	m.Styles.ShortKey = Styles.HelpKey
	m.Styles.ShortDesc = Styles.HelpDesc
	m.Styles.ShortSeparator = Styles.HelpDesc

	prefix := strings.Replace(h.CurrentSeq(), LeaderSeq, h.LeaderKey, 1)
	return Styles.HelpBox.Render(Styles.Hint.Render(prefix) + " " + m.ShortHelpView(bindings))
}
