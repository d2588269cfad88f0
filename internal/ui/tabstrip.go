package ui

import (
	"strconv"

	"paneldock/internal/dock"
	"paneldock/internal/ui/textutil"
)

// TabStrip draws the tab names along the top row and maps clicks back to
// tabs.
type TabStrip struct {
	grid  Grid
	spans [][2]int // cell columns [x0, x1) per tab
}

// NewTabStrip creates a strip on grid.
func NewTabStrip(grid Grid) *TabStrip { return &TabStrip{grid: grid} }

func tabLabel(i int, name string) string {
	return " " + strconv.Itoa(i+1) + " " + name + " "
}

// Layout places the labels of names within cols columns. Tabs that do not
// fit are left out.
func (t *TabStrip) Layout(names []string, cols int) {
	t.spans = t.spans[:0]
	x := 0
	for i, name := range names {
		w := textutil.VisualWidth(tabLabel(i, name))
		if x+w > cols {
			break
		}
		t.spans = append(t.spans, [2]int{x, x + w})
		x += w + 1
	}
}

// Hit returns the tab under a cell, or -1.
func (t *TabStrip) Hit(col, row int) int {
	if row != 0 {
		return -1
	}
	for i, sp := range t.spans {
		if col >= sp[0] && col < sp[1] {
			return i
		}
	}
	return -1
}

func (t *TabStrip) cells(x0, x1 int) dock.Rect {
	return dock.Rect{X: float32(x0) * t.grid.CellW, W: float32(x1-x0) * t.grid.CellW, H: t.grid.CellH}
}

// Draw paints the strip outside any window. status is right-aligned.
func (t *TabStrip) Draw(s dock.Surface, names []string, active, cols int, status string, statusCol dock.Color) {
	s.FillRect(t.cells(0, cols), 0, stripColor)
	for i, sp := range t.spans {
		r := t.cells(sp[0], sp[1])
		col := mutedColor
		if i == active {
			s.FillRect(r, 0, tabColor)
			col = titleColor
		}
		s.Text(r, tabLabel(i, names[i]), col)
	}
	if status == "" {
		return
	}
	end := 0
	if n := len(t.spans); n > 0 {
		end = t.spans[n-1][1] + 1
	}
	status = textutil.Truncate(status, max(cols-end-1, 0))
	w := textutil.VisualWidth(status)
	if w == 0 {
		return
	}
	s.Text(t.cells(cols-w-1, cols-1), status, statusCol)
}
