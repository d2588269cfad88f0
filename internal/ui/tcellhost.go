package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// TcellHost drives an App on a tcell screen instead of a Bubble Tea
// program. Commands run in goroutines and their messages come back on the
// event loop, as with Bubble Tea.
type TcellHost struct {
	screen  tcell.Screen
	app     *App
	logger  *slog.Logger
	msgs    chan tea.Msg
	done    chan struct{}
	buttons tcell.ButtonMask
}

// NewTcellHost wraps an initialised screen. Run finalises it.
func NewTcellHost(screen tcell.Screen, app *App, logger *slog.Logger) *TcellHost {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TcellHost{
		screen: screen,
		app:    app,
		logger: logger,
		msgs:   make(chan tea.Msg, 64),
		done:   make(chan struct{}),
	}
}

// Run processes events until the app quits, the screen closes or ctx is
// done.
func (h *TcellHost) Run(ctx context.Context) error {
	defer h.screen.Fini()
	defer close(h.done)
	h.screen.EnableMouse()
	h.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-h.done:
				return
			}
		}
	}()

	cols, rows := h.screen.Size()
	h.exec(h.app.Init())
	if h.dispatch(tea.WindowSizeMsg{Width: cols, Height: rows}) {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if msg := h.translate(ev); msg != nil && h.dispatch(msg) {
				return nil
			}
		case msg := <-h.msgs:
			if h.dispatch(msg) {
				return nil
			}
		}
	}
}

// dispatch handles msg and reports whether the app asked to quit.
func (h *TcellHost) dispatch(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, cmd := range msg {
			h.exec(cmd)
		}
		return false
	}
	h.exec(h.app.Update(msg))
	h.draw()
	return false
}

func (h *TcellHost) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		if msg == nil {
			return
		}
		select {
		case h.msgs <- msg:
		case <-h.done:
		}
	}()
}

func (h *TcellHost) translate(ev tcell.Event) tea.Msg {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		w, ht := ev.Size()
		return tea.WindowSizeMsg{Width: w, Height: ht}
	case *tcell.EventKey:
		if msg, ok := teaKey(ev); ok {
			return msg
		}
	case *tcell.EventMouse:
		return h.mouse(ev)
	}
	return nil
}

func (h *TcellHost) mouse(ev *tcell.EventMouse) tea.MouseMsg {
	x, y := ev.Position()
	buttons := ev.Buttons()
	prev := h.buttons
	h.buttons = buttons
	msg := tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
	switch {
	case buttons&tcell.WheelUp != 0:
		msg.Action, msg.Button = tea.MouseActionPress, tea.MouseButtonWheelUp
	case buttons&tcell.WheelDown != 0:
		msg.Action, msg.Button = tea.MouseActionPress, tea.MouseButtonWheelDown
	case buttons&tcell.Button1 != 0 && prev&tcell.Button1 == 0:
		msg.Action, msg.Button = tea.MouseActionPress, tea.MouseButtonLeft
	case buttons&tcell.Button1 == 0 && prev&tcell.Button1 != 0:
		msg.Action, msg.Button = tea.MouseActionRelease, tea.MouseButtonLeft
	}
	return msg
}

var tcellKeys = map[tcell.Key]tea.KeyType{
	tcell.KeyUp:         tea.KeyUp,
	tcell.KeyDown:       tea.KeyDown,
	tcell.KeyLeft:       tea.KeyLeft,
	tcell.KeyRight:      tea.KeyRight,
	tcell.KeyHome:       tea.KeyHome,
	tcell.KeyEnd:        tea.KeyEnd,
	tcell.KeyPgUp:       tea.KeyPgUp,
	tcell.KeyPgDn:       tea.KeyPgDown,
	tcell.KeyDelete:     tea.KeyDelete,
	tcell.KeyInsert:     tea.KeyInsert,
	tcell.KeyBacktab:    tea.KeyShiftTab,
	tcell.KeyBackspace:  tea.KeyBackspace,
	tcell.KeyBackspace2: tea.KeyBackspace,
	tcell.KeyF1:         tea.KeyF1,
	tcell.KeyF2:         tea.KeyF2,
	tcell.KeyF3:         tea.KeyF3,
	tcell.KeyF4:         tea.KeyF4,
	tcell.KeyF5:         tea.KeyF5,
	tcell.KeyF6:         tea.KeyF6,
	tcell.KeyF7:         tea.KeyF7,
	tcell.KeyF8:         tea.KeyF8,
	tcell.KeyF9:         tea.KeyF9,
	tcell.KeyF10:        tea.KeyF10,
	tcell.KeyF11:        tea.KeyF11,
	tcell.KeyF12:        tea.KeyF12,
}

// teaKey converts a tcell key event to the Bubble Tea key the app binds
// against.
func teaKey(ev *tcell.EventKey) (tea.KeyMsg, bool) {
	mods := ev.Modifiers()
	alt := mods&tcell.ModAlt != 0
	k := ev.Key()
	if t, ok := tcellKeys[k]; ok {
		return tea.KeyMsg{Type: t, Alt: alt}, true
	}
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		switch {
		case mods&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z':
			return tea.KeyMsg{Type: tea.KeyType(r - 'a' + 1), Alt: alt}, true
		case r == ' ':
			return tea.KeyMsg{Type: tea.KeySpace, Alt: alt}, true
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: alt}, true
	case k >= 0 && k < 32:
		return tea.KeyMsg{Type: tea.KeyType(k), Alt: alt}, true
	}
	return tea.KeyMsg{}, false
}

// draw copies the app canvas to the screen.
func (h *TcellHost) draw() {
	c := h.app.Canvas()
	w, ht := c.Size()
	for y := range ht {
		for x := range w {
			cell := c.Cell(x, y)
			if cell.Rune == 0 {
				continue
			}
			st := tcell.StyleDefault.
				Foreground(tcellColor(cell.FG)).
				Background(tcellColor(cell.BG)).
				Bold(cell.Bold)
			h.screen.SetContent(x, y, cell.Rune, nil, st)
		}
	}
	h.screen.Show()
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
