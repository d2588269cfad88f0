package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
)

func TestTeaKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), "x"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), tea.KeyMsg{Type: tea.KeySpace}.String()},
		{tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), "ctrl+a"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), "pgdown"},
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "shift+tab"},
	}
	for _, tt := range tests {
		msg, ok := teaKey(tt.ev)
		if !ok {
			t.Errorf("%v not converted", tt.ev.Name())
			continue
		}
		if got := msg.String(); got != tt.want {
			t.Errorf("%v -> %q, want %q", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestTcellHost_Mouse(t *testing.T) {
	h := &TcellHost{}
	steps := []struct {
		buttons tcell.ButtonMask
		action  tea.MouseAction
		button  tea.MouseButton
	}{
		{tcell.ButtonNone, tea.MouseActionMotion, tea.MouseButtonNone},
		{tcell.Button1, tea.MouseActionPress, tea.MouseButtonLeft},
		{tcell.Button1, tea.MouseActionMotion, tea.MouseButtonNone},
		{tcell.ButtonNone, tea.MouseActionRelease, tea.MouseButtonLeft},
		{tcell.WheelUp, tea.MouseActionPress, tea.MouseButtonWheelUp},
		{tcell.WheelDown, tea.MouseActionPress, tea.MouseButtonWheelDown},
	}
	for i, s := range steps {
		msg := h.mouse(tcell.NewEventMouse(3, 4, s.buttons, tcell.ModNone))
		if msg.X != 3 || msg.Y != 4 || msg.Action != s.action || msg.Button != s.button {
			t.Errorf("step %d: %+v", i, msg)
		}
	}
}
