package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"paneldock/internal/config"
	"paneldock/internal/dock"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(context.Background(), Options{Config: config.Default(), Cols: 200, Rows: 60})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(a.Workspace().Shutdown)
	return a
}

// run executes cmd and feeds the messages it produces back into a until
// nothing follows.
func run(a *App, cmd tea.Cmd) {
	for range 10 {
		if cmd == nil {
			return
		}
		msg := cmd()
		if msg == nil {
			return
		}
		cmd = a.Update(msg)
	}
}

// keys sends each key and runs the commands they return.
func keys(a *App, ks ...string) {
	for _, k := range ks {
		run(a, a.Update(keyMsg(k)))
	}
}

func click(a *App, col, row int) {
	a.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	a.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func TestNewApp_RegistersPanels(t *testing.T) {
	cfg := config.Default()
	cfg.Tabs = []string{"Build", "Ops"}
	a, err := NewApp(context.Background(), Options{Config: cfg, Cols: 120, Rows: 40})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer a.Workspace().Shutdown()

	if got := strings.Join(a.Tabs().Names(), ","); got != "Main,Build,Ops" {
		t.Errorf("tabs = %s", got)
	}
	ws := a.Workspace()
	if ws.Count() != 5 {
		t.Fatalf("panels = %d, want 5", ws.Count())
	}
	for _, id := range []string{PanelKeys, PanelNotes, PanelShell, PanelInspector, PanelLog} {
		if !ws.IsVisible(id) {
			t.Errorf("%s hidden", id)
		}
	}
	if ws.IsDetachable(PanelKeys) {
		t.Error("keys panel should not be detachable")
	}
	if !strings.Contains(row(a.Canvas(), 0), " 1 Main ") {
		t.Errorf("tab strip missing: %q", row(a.Canvas(), 0))
	}
}

func TestApp_LeaderNewTab(t *testing.T) {
	a := newTestApp(t)
	keys(a, "ctrl+a", "t", "n")

	if a.Tabs().Len() != 2 || a.Tabs().Active() != 1 {
		t.Fatalf("tabs = %v active %d", a.Tabs().Names(), a.Tabs().Active())
	}
	if a.Tabs().Name(1) != "Tab 2" {
		t.Errorf("new tab name = %q", a.Tabs().Name(1))
	}

	keys(a, "ctrl+a", "t", "h")
	if a.Tabs().Active() != 0 {
		t.Errorf("previous tab: active = %d", a.Tabs().Active())
	}
	keys(a, "ctrl+a", "2")
	if a.Tabs().Active() != 1 {
		t.Errorf("select tab 2: active = %d", a.Tabs().Active())
	}
	keys(a, "ctrl+a", "t", "H")
	if got := strings.Join(a.Tabs().Names(), ","); got != "Tab 2,Main" || a.Tabs().Active() != 0 {
		t.Errorf("move left: %s active %d", got, a.Tabs().Active())
	}
}

func TestApp_HelpBarWhileLeaderWaits(t *testing.T) {
	a := newTestApp(t)
	keys(a, "ctrl+a", "t")
	out := a.Canvas().PlainText()
	for _, want := range []string{"New tab", "cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("help bar missing %q", want)
		}
	}
	keys(a, "esc")
	if strings.Contains(a.Canvas().PlainText(), "cancel") {
		t.Error("help bar should close on esc")
	}
}

func TestApp_PanelVisibility(t *testing.T) {
	a := newTestApp(t)
	ws := a.Workspace()

	keys(a, "ctrl+a", "h")
	for i := range ws.Count() {
		if ws.IsVisibleAt(i) {
			t.Errorf("%s visible after hide all", ws.IDAt(i))
		}
	}
	keys(a, "ctrl+a", "p", "4")
	if !ws.IsVisible(PanelInspector) || ws.IsVisible(PanelLog) {
		t.Error("SPC p 4 should toggle only the inspector")
	}
	keys(a, "ctrl+a", "a")
	if !ws.IsVisible(PanelLog) {
		t.Error("show all left the log hidden")
	}
	keys(a, "ctrl+a", "r")
	if a.Status() != "layout reset" {
		t.Errorf("status = %q", a.Status())
	}
}

func TestApp_FocusRoutesKeys(t *testing.T) {
	a := newTestApp(t)
	keys(a, "ctrl+a", "d")
	if a.Status() != "no panel focused" {
		t.Errorf("status = %q", a.Status())
	}

	keys(a, "ctrl+a", "w", "ctrl+a", "w")
	if a.Focused() != PanelNotes {
		t.Fatalf("focused = %q, want notes", a.Focused())
	}
	keys(a, "z")
	notes := a.panel(PanelNotes).(*NotesPanel)
	if !strings.HasSuffix(notes.Text(), "z") {
		t.Errorf("key did not reach notes: %q", notes.Text())
	}

	keys(a, "ctrl+a", "d")
	if !a.Workspace().IsDetached(PanelNotes) {
		t.Error("SPC d should float the focused panel")
	}
	keys(a, "ctrl+a", "W")
	if a.Focused() != PanelKeys {
		t.Errorf("previous panel = %q", a.Focused())
	}
	keys(a, "ctrl+a", "d")
	if a.Status() == "" || !a.statusErr {
		t.Error("floating the keys panel should report an error")
	}
}

func TestApp_RenameAndCloseTab(t *testing.T) {
	a := newTestApp(t)
	keys(a, "ctrl+a", "t", "n")

	keys(a, "ctrl+a", "t", "r")
	if a.Mode() != ModeModal {
		t.Fatalf("mode = %v, want modal", a.Mode())
	}
	for range len("Tab 2") {
		a.Update(keyMsg("backspace"))
	}
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ops")})
	keys(a, "enter")
	if a.Mode() != ModeDock || a.Tabs().Name(1) != "Ops" {
		t.Fatalf("mode %v, name %q", a.Mode(), a.Tabs().Name(1))
	}

	keys(a, "ctrl+a", "t", "c")
	if !strings.Contains(a.Canvas().PlainText(), "Tab: Ops") {
		t.Error("confirm modal not drawn")
	}
	keys(a, "n")
	if a.Tabs().Len() != 2 {
		t.Fatal("declining should keep the tab")
	}
	keys(a, "ctrl+a", "t", "c", "y")
	if a.Tabs().Len() != 1 || a.Status() != "closed Ops" {
		t.Errorf("tabs %v, status %q", a.Tabs().Names(), a.Status())
	}

	keys(a, "ctrl+a", "t", "c", "y")
	if a.Tabs().Len() != 1 || !a.statusErr {
		t.Error("closing the last tab should fail")
	}
}

func TestApp_ModalBlocksMouse(t *testing.T) {
	a := newTestApp(t)
	keys(a, "ctrl+a", "t", "n", "ctrl+a", "t", "r")
	click(a, 1, 0)
	if a.Tabs().Active() != 1 {
		t.Error("click reached the tab strip under a modal")
	}
}

func TestApp_TabStripClick(t *testing.T) {
	a := newTestApp(t)
	keys(a, "ctrl+a", "t", "n")
	click(a, 1, 0)
	if a.Tabs().Active() != 0 {
		t.Errorf("active = %d, want 0", a.Tabs().Active())
	}
}

func TestApp_Quit(t *testing.T) {
	a := newTestApp(t)
	cmd := a.Update(keyMsg("ctrl+q"))
	if cmd == nil {
		t.Fatal("ctrl+q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+q should quit")
	}
}

func TestApp_MouseFloatsMovesAndClosesPanel(t *testing.T) {
	a := newTestApp(t)
	ws := a.Workspace()
	grid := a.surface.Grid()
	keys(a, "ctrl+a", "h", "ctrl+a", "p", "4")

	b, err := ws.PanelBounds(PanelInspector)
	if err != nil {
		t.Fatal(err)
	}
	hb := dock.HeaderButtonBounds(b, ws.Config())
	col, row := grid.Cell(dock.Point{X: hb.X + hb.W/2, Y: hb.Y + hb.H/2})
	click(a, col, row)
	if !ws.IsDetached(PanelInspector) {
		t.Fatal("header button did not float the panel")
	}
	if a.Focused() != PanelInspector {
		t.Errorf("focused = %q", a.Focused())
	}

	st, _ := ws.State(PanelInspector)
	before := st.DetachedBounds
	cr := grid.rect(st.ResolvedBounds)
	a.Update(tea.MouseMsg{X: cr.x0 + 5, Y: cr.y0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	a.Update(tea.MouseMsg{X: cr.x0 + 3, Y: cr.y0 + 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	a.Update(tea.MouseMsg{X: cr.x0 + 3, Y: cr.y0 + 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	st, _ = ws.State(PanelInspector)
	want := dock.Rect{X: before.X - 2*grid.CellW, Y: before.Y + 2*grid.CellH, W: before.W, H: before.H}
	if st.DetachedBounds != want {
		t.Errorf("moved bounds = %v, want %v", st.DetachedBounds, want)
	}

	cr = grid.rect(st.ResolvedBounds)
	click(a, cr.x0+1, cr.y0)
	if ws.IsVisible(PanelInspector) {
		t.Error("close glyph should hide the panel")
	}
	if a.Focused() != "" {
		t.Errorf("focus left on hidden panel: %q", a.Focused())
	}
}
