package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("ctrl+q", tea.Quit, "Quit")
	reg.Bind("space q", tea.Quit, "Quit")

	if reg.Lookup("ctrl+q", ModeDock) == nil {
		t.Error("expected ctrl+q to be bound")
	}
	if reg.Lookup("SPC q", ModeDock) == nil {
		t.Error("space should normalise to SPC")
	}
	if reg.Lookup("unknown", ModeDock) != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeybindRegistry_ModeFilter(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindForMode("SPC s c", tea.Quit, "Clear shell", []AppMode{ModeShell})
	if reg.Lookup("SPC s c", ModeDock) != nil {
		t.Error("shell-only binding should not apply in dock mode")
	}
	if reg.Lookup("SPC s c", ModeShell) == nil {
		t.Error("shell-only binding should apply in shell mode")
	}
	if hints := reg.LeaderHints("", ModeDock); len(hints) != 0 {
		t.Errorf("dock hints = %v, want none", hints)
	}
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC q", tea.Quit, "Quit")
	reg.Bind("SPC t n", tea.Quit, "New tab")
	reg.Bind("SPC t c", tea.Quit, "Close tab")
	reg.Bind("SPC x y", tea.Quit, "Deep")

	top := reg.LeaderHints("", ModeDock)
	if top["q"] != "Quit" || top["t"] != "Tab" || top["x"] != "x…" {
		t.Errorf("top-level hints = %v", top)
	}
	sub := reg.LeaderHints("SPC t", ModeDock)
	if len(sub) != 2 || sub["n"] != "New tab" || sub["c"] != "Close tab" {
		t.Errorf("tab hints = %v", sub)
	}
}

func TestKeybindRegistry_Bindings(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC t n", tea.Quit, "New tab")
	reg.Bind("SPC a", tea.Quit, "Show all")
	reg.Bind("SPC z", tea.Quit, "")

	got := reg.Bindings(ModeDock)
	if len(got) != 2 || got[0].Seq != "SPC a" || got[1].Seq != "SPC t n" {
		t.Errorf("bindings = %v", got)
	}
}

func TestKeyHandler_LeaderSequence(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC t n", func() tea.Msg {
		executed = true
		return nil
	}, "New tab")
	h := NewKeyHandler(reg, "ctrl+a")

	for _, k := range []string{"ctrl+a", "t"} {
		consumed, cmd := h.Handle(keyMsg(k), ModeDock)
		if !consumed || cmd != nil {
			t.Fatalf("%s: consumed=%v cmd=%v", k, consumed, cmd != nil)
		}
	}
	if !h.LeaderWaiting || h.CurrentSeq() != "SPC t" {
		t.Fatalf("buffer = %q waiting=%v", h.CurrentSeq(), h.LeaderWaiting)
	}

	consumed, cmd := h.Handle(keyMsg("n"), ModeDock)
	if !consumed || cmd == nil {
		t.Fatalf("n: consumed=%v cmd=%v", consumed, cmd != nil)
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	cmd()
	if !executed {
		t.Error("expected command to execute")
	}
}

func TestKeyHandler_SpaceLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit, "Quit")
	h := NewKeyHandler(reg, "space")

	h.Handle(keyMsg(" "), ModeDock)
	if _, cmd := h.Handle(keyMsg("x"), ModeDock); cmd == nil {
		t.Error("space leader should reach SPC x")
	}
}

func TestKeyHandler_EscAndUnknownCancelLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit, "Quit")
	h := NewKeyHandler(reg, "ctrl+a")

	for _, cancel := range []string{"esc", "z"} {
		h.Handle(keyMsg("ctrl+a"), ModeDock)
		consumed, cmd := h.Handle(keyMsg(cancel), ModeDock)
		if !consumed || cmd != nil {
			t.Errorf("%s: consumed=%v cmd=%v", cancel, consumed, cmd != nil)
		}
		if h.LeaderWaiting {
			t.Errorf("%s should cancel leader mode", cancel)
		}
	}
}

func TestKeyHandler_SingleKeyAndFallThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("ctrl+q", tea.Quit, "Quit")
	h := NewKeyHandler(reg, "ctrl+a")

	if consumed, cmd := h.Handle(keyMsg("ctrl+q"), ModeDock); !consumed || cmd == nil {
		t.Errorf("ctrl+q: consumed=%v cmd=%v", consumed, cmd != nil)
	}
	if consumed, _ := h.Handle(keyMsg("j"), ModeDock); consumed {
		t.Error("unbound j should not be consumed")
	}
	if consumed, _ := h.Handle(keyMsg("esc"), ModeDock); consumed {
		t.Error("esc outside leader mode should fall through")
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC t n", tea.Quit, "New tab")
	h := NewKeyHandler(reg, "ctrl+a")
	if RenderKeybindHelp(h, ModeDock, 80) != "" {
		t.Error("no help outside leader mode")
	}

	h.Handle(keyMsg("ctrl+a"), ModeDock)
	h.Handle(keyMsg("t"), ModeDock)
	out := RenderKeybindHelp(h, ModeDock, 80)
	for _, want := range []string{"ctrl+a t", "New tab", "cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}

// keyMsg builds the tea.KeyMsg whose String() is s.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+q":
		return tea.KeyMsg{Type: tea.KeyCtrlQ}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
