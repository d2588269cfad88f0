package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectTabMsg activates tab Index.
type SelectTabMsg struct {
	Index int
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// bindKeys registers the demo bindings. Panel toggles are numbered in
// registration order.
func (a *App) bindKeys() {
	reg := a.keys.Registry
	reg.Bind("ctrl+q", tea.Quit, "Quit")
	reg.Bind("SPC q", tea.Quit, "Quit")
	reg.Bind("SPC a", msgCmd(ShowAllMsg{}), "Show all panels")
	reg.Bind("SPC h", msgCmd(HideAllMsg{}), "Hide all panels")
	reg.Bind("SPC r", msgCmd(ResetLayoutMsg{}), "Reset layout")
	reg.Bind("SPC d", msgCmd(ToggleDetachMsg{}), "Float/dock panel")
	reg.Bind("SPC w", msgCmd(FocusMsg{Delta: 1}), "Next panel")
	reg.Bind("SPC W", msgCmd(FocusMsg{Delta: -1}), "Previous panel")

	ws := a.Workspace()
	for i := range min(ws.Count(), 9) {
		reg.Bind(fmt.Sprintf("SPC p %d", i+1), msgCmd(TogglePanelMsg{Index: i}), "Toggle "+ws.TitleAt(i))
	}
	for i := range 9 {
		reg.Bind(fmt.Sprintf("SPC %d", i+1), msgCmd(SelectTabMsg{Index: i}), fmt.Sprintf("Tab %d", i+1))
	}
	reg.Bind("SPC t n", msgCmd(NewTabMsg{}), "New tab")
	reg.Bind("SPC t c", msgCmd(RequestCloseTabMsg{}), "Close tab")
	reg.Bind("SPC t r", msgCmd(RequestRenameTabMsg{}), "Rename tab")
	reg.Bind("SPC t l", msgCmd(SwitchTabMsg{Delta: 1}), "Next tab")
	reg.Bind("SPC t h", msgCmd(SwitchTabMsg{Delta: -1}), "Previous tab")
	reg.Bind("SPC t L", msgCmd(MoveTabMsg{Delta: 1}), "Move tab right")
	reg.Bind("SPC t H", msgCmd(MoveTabMsg{Delta: -1}), "Move tab left")
}

// handleCommand applies the app messages produced by bindings and modals.
func (a *App) handleCommand(msg tea.Msg) tea.Cmd {
	ws := a.Workspace()
	switch msg := msg.(type) {
	case ShowAllMsg:
		ws.ShowAll()
	case HideAllMsg:
		ws.HideAll()
	case ResetLayoutMsg:
		ws.ResetLayout()
		a.setStatus("layout reset")
	case TogglePanelMsg:
		a.report(ws.SetVisibleAt(msg.Index, !ws.IsVisibleAt(msg.Index)))
	case ToggleDetachMsg:
		id := a.focus.Current
		if id == "" {
			a.setStatus("no panel focused")
			return nil
		}
		a.report(ws.SetDetached(id, !ws.IsDetached(id)))
	case FocusMsg:
		if msg.Delta < 0 {
			a.focus.Prev()
		} else {
			a.focus.Next()
		}
	case NewTabMsg:
		i, err := a.tabs.Create(fmt.Sprintf("Tab %d", a.tabs.Len()+1))
		if !a.report(err) {
			a.switchTab(i)
		}
	case SelectTabMsg:
		if msg.Index < a.tabs.Len() {
			a.switchTab(msg.Index)
		}
	case SwitchTabMsg:
		n := a.tabs.Len()
		a.switchTab(((a.tabs.Active()+msg.Delta)%n + n) % n)
	case MoveTabMsg:
		from := a.tabs.Active()
		to := max(min(from+msg.Delta, a.tabs.Len()-1), 0)
		a.report(a.tabs.Move(from, to))
	case RequestCloseTabMsg:
		i := a.tabs.Active()
		a.modals.Push(NewCloseTabConfirmModal(i, a.tabs.Name(i)))
	case CloseTabMsg:
		name := a.tabs.Name(msg.Index)
		if !a.report(a.tabs.Remove(msg.Index)) {
			a.setStatus("closed " + name)
		}
	case RequestRenameTabMsg:
		i := a.tabs.Active()
		a.modals.Push(NewRenameTabModal(i, a.tabs.Name(i)))
	case RenameTabMsg:
		a.report(a.tabs.Rename(msg.Index, msg.Name))
	case StatusMsg:
		a.status, a.statusErr = msg.Text, msg.Error
	}
	return nil
}

func (a *App) switchTab(i int) {
	if a.report(a.tabs.SetActive(i)) {
		return
	}
	a.logger.Debug("tab switched", "index", i, "name", a.tabs.Name(i))
}
