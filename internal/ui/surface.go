package ui

import (
	"cmp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"paneldock/internal/dock"
	"paneldock/internal/ui/textutil"
)

// drawCmd is a buffered draw call, replayed when the frame is composited.
type drawCmd func(c *Canvas)

type termWindow struct {
	id     string
	title  string
	flags  dock.WindowFlags
	bounds dock.Rect
	cells  cellRect
	seen   bool

	hidden bool
	closed bool

	// override holds bounds the user moved or resized the window to. It
	// is returned while the gesture lasts and for one frame after it.
	override *dock.Rect
	settle   bool

	cmds  []drawCmd
	clips []cellRect
}

type grabKind int

const (
	grabMove grabKind = iota
	grabResize
)

type grab struct {
	id     string
	kind   grabKind
	origin dock.Point
	start  dock.Rect
}

// TermSurface implements dock.Surface over a Canvas. Windows are buffered
// per id while the frame runs and composited by EndFrame: background
// windows first, then floating windows in raise order with the focused one
// on top, then input-transparent overlays.
type TermSurface struct {
	grid   Grid
	canvas *Canvas

	in      dock.Input
	focused string

	windows map[string]*termWindow
	z       []string // raise order, last on top
	frame   []*termWindow
	stack   []*termWindow
	styles  []dock.Style

	root      []drawCmd
	rootClips []cellRect

	hits []*termWindow // last frame's windows, topmost first
	grab *grab
}

var _ dock.Surface = (*TermSurface)(nil)

// NewTermSurface returns a surface for a cols×rows terminal.
func NewTermSurface(grid Grid, cols, rows int) *TermSurface {
	return &TermSurface{
		grid:    grid,
		canvas:  NewCanvas(cols, rows),
		windows: make(map[string]*termWindow),
	}
}

// Canvas returns the composited cells.
func (s *TermSurface) Canvas() *Canvas { return s.canvas }

// Grid returns the pixel to cell mapping.
func (s *TermSurface) Grid() Grid { return s.grid }

// Resize changes the terminal size.
func (s *TermSurface) Resize(cols, rows int) { s.canvas.Resize(cols, rows) }

// Viewport returns the terminal size in pixels.
func (s *TermSurface) Viewport() (int, int) {
	return s.grid.Pixels(s.canvas.Size())
}

// BeginFrame starts a frame with in, applying window moves, resizes,
// raises and close clicks from the previous frame's windows.
func (s *TermSurface) BeginFrame(in dock.Input) {
	s.in = in
	s.frame = s.frame[:0]
	s.stack = s.stack[:0]
	s.styles = s.styles[:0]
	s.root = s.root[:0]
	cols, rows := s.canvas.Size()
	s.rootClips = append(s.rootClips[:0], cellRect{x1: cols, y1: rows})
	for _, w := range s.windows {
		w.seen = false
	}

	if g := s.grab; g != nil {
		w := s.windows[g.id]
		switch {
		case w == nil:
			s.grab = nil
		case in.Down:
			b := g.start
			d := in.Pointer.Sub(g.origin)
			if g.kind == grabMove {
				b = b.Offset(d)
			} else {
				b.W = max(b.W+d.X, 4*s.grid.CellW)
				b.H = max(b.H+d.Y, 3*s.grid.CellH)
			}
			w.override = &b
		default:
			w.settle = true
			s.grab = nil
		}
	}

	if in.Pressed {
		s.press(in.Pointer)
	}
}

func (s *TermSurface) press(p dock.Point) {
	col, row := s.grid.Cell(p)
	for _, w := range s.hits {
		if !w.cells.contains(col, row) {
			continue
		}
		s.focused = w.id
		if w.flags.Has(dock.FlagBackground) {
			return
		}
		s.raise(w.id)
		start := w.bounds
		switch {
		case w.flags.Has(dock.FlagClosable) && row == w.cells.y0 && col == w.cells.x0+1:
			w.closed = true
		case w.flags.Has(dock.FlagResizable) && row == w.cells.y1-1 && col == w.cells.x1-1:
			s.grab = &grab{id: w.id, kind: grabResize, origin: p, start: start}
			w.override = &start
		case w.flags.Has(dock.FlagMovable) && row == w.cells.y0:
			s.grab = &grab{id: w.id, kind: grabMove, origin: p, start: start}
			w.override = &start
		}
		return
	}
	s.focused = ""
}

func (s *TermSurface) raise(id string) {
	s.z = slices.DeleteFunc(s.z, func(z string) bool { return z == id })
	s.z = append(s.z, id)
}

// EndFrame composites every window begun this frame into the canvas.
func (s *TermSurface) EndFrame() {
	c := s.canvas
	c.Clear(colorDesktop)
	for _, fn := range s.root {
		fn(c)
	}

	var back, normal, over []*termWindow
	for _, w := range s.frame {
		switch {
		case w.flags.Has(dock.FlagNoInput):
			over = append(over, w)
		case w.flags.Has(dock.FlagBackground):
			back = append(back, w)
		default:
			normal = append(normal, w)
		}
	}
	rank := func(w *termWindow) int {
		if w.id == s.focused {
			return len(s.z)
		}
		return slices.Index(s.z, w.id)
	}
	slices.SortStableFunc(normal, func(a, b *termWindow) int { return cmp.Compare(rank(a), rank(b)) })

	s.hits = s.hits[:0]
	for _, layer := range [][]*termWindow{back, normal, over} {
		for _, w := range layer {
			for _, fn := range w.cmds {
				fn(c)
			}
		}
	}
	c.ResetClip()
	for i := len(normal) - 1; i >= 0; i-- {
		s.hits = append(s.hits, normal[i])
	}
	for i := len(back) - 1; i >= 0; i-- {
		s.hits = append(s.hits, back[i])
	}
}

// Input implements dock.Surface.
func (s *TermSurface) Input() dock.Input { return s.in }

// FocusedWindow implements dock.Surface.
func (s *TermSurface) FocusedWindow() string { return s.focused }

// SetFocusedWindow implements dock.Surface.
func (s *TermSurface) SetFocusedWindow(id string) {
	s.focused = id
	if w := s.windows[id]; w != nil && !w.flags.Has(dock.FlagBackground) {
		s.raise(id)
	}
}

func (s *TermSurface) window(id string) *termWindow {
	w := s.windows[id]
	if w == nil {
		w = &termWindow{id: id}
		s.windows[id] = w
		s.z = append(s.z, id)
	}
	return w
}

// ShowWindow implements dock.Surface. Showing a hidden window clears its
// closed flag.
func (s *TermSurface) ShowWindow(id string, visible bool) {
	w := s.window(id)
	if !visible {
		w.hidden = true
		return
	}
	if w.hidden {
		w.hidden = false
		w.closed = false
	}
}

// WindowClosed implements dock.Surface.
func (s *TermSurface) WindowClosed(id string) bool {
	w := s.windows[id]
	return w != nil && w.closed
}

// BeginWindow implements dock.Surface. The window gets exactly the
// requested bounds unless the user is moving or resizing it.
func (s *TermSurface) BeginWindow(id, title string, bounds dock.Rect, flags dock.WindowFlags) bool {
	w := s.window(id)
	w.title, w.flags = title, flags
	if !flags.Has(dock.FlagMovable) && !flags.Has(dock.FlagResizable) {
		if s.grab != nil && s.grab.id == id {
			s.grab = nil
		}
		w.override, w.settle = nil, false
	}
	if w.override != nil {
		switch {
		case s.grab != nil && s.grab.id == id:
			bounds = *w.override
		case w.settle:
			bounds = *w.override
			w.settle = false
		default:
			w.override = nil
		}
	}
	if w.hidden {
		return false
	}

	w.bounds = bounds
	w.cells = s.grid.rect(bounds)
	w.seen = true
	w.cmds = w.cmds[:0]
	w.clips = append(w.clips[:0], w.cells)
	s.frame = append(s.frame, w)
	s.stack = append(s.stack, w)
	s.chrome(w)
	return true
}

// chrome queues the window background, border, title and grips.
func (s *TermSurface) chrome(w *termWindow) {
	bg, alpha := colorful.Color{}, 0.0
	if n := len(s.styles); n > 0 && s.styles[n-1].Background.A > 0 {
		bg, alpha = toColorful(s.styles[n-1].Background)
	} else if !w.flags.Has(dock.FlagNoInput) {
		switch {
		case w.flags.Has(dock.FlagBackground):
			bg, alpha = colorPanel, 1
		case w.flags.Has(dock.FlagTitle):
			bg, alpha = colorFloating, 1
		}
	}
	r := w.cells
	id := w.id
	w.cmds = append(w.cmds, func(c *Canvas) {
		c.SetClip(r)
		c.Fill(r, bg, alpha)
		border := colorBorder
		if s.focused == id {
			border = colorBorderFocus
		}
		if w.flags.Has(dock.FlagBorder) {
			c.box(r, border, true)
		}
		if w.flags.Has(dock.FlagTitle) {
			x := r.x0 + 1
			if w.flags.Has(dock.FlagClosable) {
				c.Set(x, r.y0, '×', colorError)
				x += 2
			}
			c.Text(x, r.y0, textutil.Truncate(w.title, r.x1-x-1), colorTitle, true, r.x1-1)
		}
		if w.flags.Has(dock.FlagResizable) {
			c.Set(r.x1-1, r.y1-1, '◢', border)
		}
	})
}

// EndWindow implements dock.Surface.
func (s *TermSurface) EndWindow() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

// WindowBounds implements dock.Surface.
func (s *TermSurface) WindowBounds() dock.Rect {
	if n := len(s.stack); n > 0 {
		return s.stack[n-1].bounds
	}
	return dock.Rect{}
}

func (s *TermSurface) clips() *[]cellRect {
	if n := len(s.stack); n > 0 {
		return &s.stack[n-1].clips
	}
	return &s.rootClips
}

// emit queues fn on the current window, or on the root layer outside any
// window, under the current clip.
func (s *TermSurface) emit(fn drawCmd) {
	clips := *s.clips()
	clip := clips[len(clips)-1]
	cmd := func(c *Canvas) {
		c.SetClip(clip)
		fn(c)
	}
	if n := len(s.stack); n > 0 {
		w := s.stack[n-1]
		w.cmds = append(w.cmds, cmd)
		return
	}
	s.root = append(s.root, cmd)
}

// FillRect implements dock.Surface.
func (s *TermSurface) FillRect(r dock.Rect, _ float32, col dock.Color) {
	cr := s.grid.rect(r)
	cf, a := toColorful(col)
	s.emit(func(c *Canvas) { c.Fill(cr, cf, a) })
}

// StrokeRect implements dock.Surface.
func (s *TermSurface) StrokeRect(r dock.Rect, rounding, _ float32, col dock.Color) {
	if col.A == 0 {
		return
	}
	cr := s.grid.rect(r)
	cf, _ := toColorful(col)
	s.emit(func(c *Canvas) { c.box(cr, cf, rounding > 0) })
}

// Line implements dock.Surface.
func (s *TermSurface) Line(x0, y0, x1, y1, _ float32, col dock.Color) {
	if col.A == 0 {
		return
	}
	cf, _ := toColorful(col)
	c0, r0 := s.grid.Cell(dock.Point{X: x0, Y: y0})
	c1, r1 := s.grid.Cell(dock.Point{X: x1, Y: y1})
	s.emit(func(c *Canvas) {
		switch {
		case c0 == c1:
			for y := min(r0, r1); y <= max(r0, r1); y++ {
				c.Set(c0, y, '│', cf)
			}
		case r0 == r1:
			for x := min(c0, c1); x <= max(c0, c1); x++ {
				c.Set(x, r0, '─', cf)
			}
		default:
			bresenham(c0, r0, c1, r1, func(x, y int) { c.Set(x, y, '·', cf) })
		}
	})
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			x0 += sx
		} else {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Text implements dock.Surface. Text is left-aligned on the row through
// the middle of r and cut at its right edge.
func (s *TermSurface) Text(r dock.Rect, text string, col dock.Color) {
	cr := s.grid.rect(r)
	row := s.grid.Row(r)
	cf, _ := toColorful(col)
	text = textutil.Plain(text)
	s.emit(func(c *Canvas) { c.Text(cr.x0, row, text, cf, false, cr.x1) })
}

// PushClip implements dock.Surface.
func (s *TermSurface) PushClip(r dock.Rect) {
	clips := s.clips()
	top := (*clips)[len(*clips)-1]
	*clips = append(*clips, top.intersect(s.grid.rect(r)))
}

// PopClip implements dock.Surface.
func (s *TermSurface) PopClip() {
	if clips := s.clips(); len(*clips) > 1 {
		*clips = (*clips)[:len(*clips)-1]
	}
}

// PushStyle implements dock.Surface.
func (s *TermSurface) PushStyle(st dock.Style) { s.styles = append(s.styles, st) }

// PopStyle implements dock.Surface.
func (s *TermSurface) PopStyle() {
	if n := len(s.styles); n > 0 {
		s.styles = s.styles[:n-1]
	}
}
