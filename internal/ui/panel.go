package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"paneldock/internal/dock"
	"paneldock/internal/ui/textutil"
)

// KeyReceiver is a panel that takes keys while it has focus.
type KeyReceiver interface {
	HandleKey(msg tea.KeyMsg) tea.Cmd
}

// drawPanel opens the panel window, hands draw the text rows of its
// content area and closes the window.
func drawPanel(dc dock.DrawContext, g Grid, draw func(s dock.Surface, rows []dock.Rect)) {
	open, content := dc.BeginWindow(0)
	if !open {
		return
	}
	defer dc.Surface.EndWindow()
	draw(dc.Surface, g.Lines(content))
}

// wheelLines converts this frame's wheel delta to lines; positive moves
// toward the top.
func wheelLines(s dock.Surface) int {
	return int(s.Input().Scroll.Y * 3)
}

// rowsCols returns the text area size of rows.
func rowsCols(g Grid, rows []dock.Rect) (int, int) {
	if len(rows) == 0 {
		return 0, 0
	}
	return len(rows), g.Cols(rows[0].W)
}

// viewportLines sizes vp to rows and returns its visible lines.
func viewportLines(vp *viewport.Model, g Grid, rows []dock.Rect) []string {
	h, w := rowsCols(g, rows)
	if h == 0 || w == 0 {
		return nil
	}
	vp.Width, vp.Height = w, h
	return strings.Split(textutil.Plain(vp.View()), "\n")
}

// drawRows draws lines into rows; extra lines are dropped.
func drawRows(s dock.Surface, rows []dock.Rect, lines []string, col dock.Color) {
	for i, line := range lines {
		if i >= len(rows) {
			return
		}
		s.Text(rows[i], line, col)
	}
}
