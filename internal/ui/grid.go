package ui

import (
	"math"

	"paneldock/internal/dock"
)

// Grid maps layout pixels to terminal cells. The dock works in pixels; one
// cell covers CellW×CellH of them.
type Grid struct {
	CellW, CellH float32
}

// Pixels returns the pixel size of a cols×rows terminal.
func (g Grid) Pixels(cols, rows int) (int, int) {
	return int(float32(cols) * g.CellW), int(float32(rows) * g.CellH)
}

// Cell returns the cell containing p.
func (g Grid) Cell(p dock.Point) (col, row int) {
	return int(math.Floor(float64(p.X / g.CellW))), int(math.Floor(float64(p.Y / g.CellH)))
}

// Center returns the pixel at the middle of a cell.
func (g Grid) Center(col, row int) dock.Point {
	return dock.Point{X: (float32(col) + 0.5) * g.CellW, Y: (float32(row) + 0.5) * g.CellH}
}

// Cols returns how many whole cells fit in w pixels.
func (g Grid) Cols(w float32) int { return max(int(w/g.CellW), 0) }

// Rows returns how many whole cells fit in h pixels.
func (g Grid) Rows(h float32) int { return max(int(h/g.CellH), 0) }

// Row returns the cell row of the line of text centred in r.
func (g Grid) Row(r dock.Rect) int {
	return int(math.Floor(float64((r.Y + r.H/2) / g.CellH)))
}

// rect snaps r to cells. A non-empty rect always covers at least one cell.
func (g Grid) rect(r dock.Rect) cellRect {
	snap := func(v, unit float32) int { return int(math.Floor(float64(v/unit) + 0.5)) }
	c := cellRect{
		x0: snap(r.X, g.CellW),
		y0: snap(r.Y, g.CellH),
		x1: snap(r.X+r.W, g.CellW),
		y1: snap(r.Y+r.H, g.CellH),
	}
	if r.W > 0 && c.x1 <= c.x0 {
		c.x1 = c.x0 + 1
	}
	if r.H > 0 && c.y1 <= c.y0 {
		c.y1 = c.y0 + 1
	}
	return c
}

// Lines returns one text row per cell row of a panel content area, inset
// by the window border.
func (g Grid) Lines(content dock.Rect) []dock.Rect {
	if content.Empty() {
		return nil
	}
	r := g.rect(content)
	first := g.Row(dock.Rect{Y: content.Y, H: g.CellH})
	var out []dock.Rect
	for row := first; row < r.y1-1; row++ {
		out = append(out, dock.Rect{
			X: content.X + g.CellW,
			Y: float32(row) * g.CellH,
			W: max(content.W-2*g.CellW, 0),
			H: g.CellH,
		})
	}
	return out
}
