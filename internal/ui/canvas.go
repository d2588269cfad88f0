package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"paneldock/internal/dock"
	"paneldock/internal/ui/textutil"
)

// Cell is one terminal cell. Rune 0 marks the right half of a wide rune.
type Cell struct {
	Rune rune
	FG   colorful.Color
	BG   colorful.Color
	Bold bool
}

// cellRect is a half-open rectangle in cell coordinates.
type cellRect struct {
	x0, y0, x1, y1 int
}

func (r cellRect) empty() bool { return r.x1 <= r.x0 || r.y1 <= r.y0 }

func (r cellRect) intersect(o cellRect) cellRect {
	return cellRect{
		x0: max(r.x0, o.x0),
		y0: max(r.y0, o.y0),
		x1: min(r.x1, o.x1),
		y1: min(r.y1, o.y1),
	}
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// Canvas is a grid of cells that surfaces draw into and hosts present.
type Canvas struct {
	w, h  int
	cells []Cell
	clip  cellRect
}

// NewCanvas returns a w×h canvas cleared to the default background.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (int, int) { return c.w, c.h }

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(w, h int) {
	c.w, c.h = max(w, 0), max(h, 0)
	c.cells = make([]Cell, c.w*c.h)
	c.Clear(colorDesktop)
}

// Clear fills every cell with a blank on bg and resets the clip.
func (c *Canvas) Clear(bg colorful.Color) {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' ', FG: colorText, BG: bg}
	}
	c.ResetClip()
}

// SetClip restricts drawing to r intersected with the canvas.
func (c *Canvas) SetClip(r cellRect) {
	c.clip = r.intersect(cellRect{x1: c.w, y1: c.h})
}

// ResetClip allows drawing anywhere on the canvas.
func (c *Canvas) ResetClip() { c.clip = cellRect{x1: c.w, y1: c.h} }

// Cell returns the cell at x, y, or a zero cell outside the canvas.
func (c *Canvas) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return Cell{}
	}
	return c.cells[y*c.w+x]
}

func (c *Canvas) at(x, y int) *Cell {
	if !c.clip.contains(x, y) {
		return nil
	}
	return &c.cells[y*c.w+x]
}

// Fill blends col over the background of every cell in r. An opaque fill
// erases the cell's rune; a translucent one tints the rune as well.
func (c *Canvas) Fill(r cellRect, col colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	r = r.intersect(c.clip)
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			cell := &c.cells[y*c.w+x]
			if alpha >= 1 {
				*cell = Cell{Rune: ' ', FG: cell.FG, BG: col}
				continue
			}
			cell.BG = cell.BG.BlendRgb(col, alpha).Clamped()
			cell.FG = cell.FG.BlendRgb(col, alpha/2).Clamped()
		}
	}
}

// Set writes one rune at x, y.
func (c *Canvas) Set(x, y int, r rune, fg colorful.Color) {
	if cell := c.at(x, y); cell != nil {
		cell.Rune = r
		cell.FG = fg
	}
}

// Text writes s starting at x, y, never past column limit, and returns the
// column after the last written cell.
func (c *Canvas) Text(x, y int, s string, fg colorful.Color, bold bool, limit int) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		if cell := c.at(x, y); cell != nil {
			cell.Rune, cell.FG, cell.Bold = r, fg, bold
			if w == 2 {
				if next := c.at(x+1, y); next != nil {
					next.Rune, next.FG = 0, fg
				} else {
					cell.Rune = ' '
				}
			}
		}
		x += w
	}
	return x
}

// box draws a one-cell border around r.
func (c *Canvas) box(r cellRect, fg colorful.Color, rounded bool) {
	if r.x1-r.x0 < 2 || r.y1-r.y0 < 2 {
		return
	}
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if rounded {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}
	for x := r.x0 + 1; x < r.x1-1; x++ {
		c.Set(x, r.y0, '─', fg)
		c.Set(x, r.y1-1, '─', fg)
	}
	for y := r.y0 + 1; y < r.y1-1; y++ {
		c.Set(r.x0, y, '│', fg)
		c.Set(r.x1-1, y, '│', fg)
	}
	c.Set(r.x0, r.y0, tl, fg)
	c.Set(r.x1-1, r.y0, tr, fg)
	c.Set(r.x0, r.y1-1, bl, fg)
	c.Set(r.x1-1, r.y1-1, br, fg)
}

// Blit places a rendered block with its top-left cell at x, y. Styling is
// dropped; every line is drawn in fg over an opaque bg.
func (c *Canvas) Blit(x, y int, block string, fg, bg colorful.Color) {
	for i, line := range strings.Split(textutil.Plain(block), "\n") {
		w := textutil.VisualWidth(line)
		c.Fill(cellRect{x0: x, y0: y + i, x1: x + w, y1: y + i + 1}, bg, 1)
		c.Text(x, y+i, line, fg, false, x+w)
	}
}

// Render returns the canvas as styled text, one line per row.
func (c *Canvas) Render() string {
	var b strings.Builder
	var run strings.Builder
	for y := range c.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		var style Cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(style.FG.Hex())).
				Background(lipgloss.Color(style.BG.Hex())).
				Bold(style.Bold).
				Render(run.String()))
			run.Reset()
		}
		for x := range c.w {
			cell := c.cells[y*c.w+x]
			if cell.Rune == 0 {
				continue
			}
			if run.Len() > 0 && (cell.FG != style.FG || cell.BG != style.BG || cell.Bold != style.Bold) {
				flush()
			}
			style = cell
			run.WriteRune(cell.Rune)
		}
		flush()
	}
	return b.String()
}

// PlainText returns the runes of the canvas without styling.
func (c *Canvas) PlainText() string {
	var b strings.Builder
	for y := range c.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range c.w {
			if r := c.cells[y*c.w+x].Rune; r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// toColorful converts a surface colour, returning its alpha in [0,1].
func toColorful(col dock.Color) (colorful.Color, float64) {
	return colorful.Color{
		R: float64(col.R) / 255,
		G: float64(col.G) / 255,
		B: float64(col.B) / 255,
	}, float64(col.A) / 255
}
