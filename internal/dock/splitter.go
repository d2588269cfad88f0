package dock

// Splitter names one of the four draggable gutters.
type Splitter int

const (
	SplitterLeft Splitter = iota
	SplitterRight
	SplitterTop
	SplitterBottom

	splitterCount
)

// SplitterNone means no splitter.
const SplitterNone Splitter = -1

func (s Splitter) String() string {
	switch s {
	case SplitterLeft:
		return "left"
	case SplitterRight:
		return "right"
	case SplitterTop:
		return "top"
	case SplitterBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Vertical reports whether the gutter separates columns.
func (s Splitter) Vertical() bool { return s == SplitterLeft || s == SplitterRight }

// SplitterBounds returns the gutter of s in the last layout.
func (w *Workspace) SplitterBounds(s Splitter) Rect {
	if s < 0 || s >= splitterCount {
		return Rect{}
	}
	return w.layout.Splitters[s]
}

// ActiveSplitter returns the splitter being dragged, or SplitterNone.
func (w *Workspace) ActiveSplitter() Splitter { return w.activeSplitter }

// HoveredSplitter returns the splitter to highlight. The active splitter
// always wins over the one under the pointer.
func (w *Workspace) HoveredSplitter() Splitter { return w.hoveredSplitter }

// UpdateSplitters runs one frame of splitter interaction against the last
// layout and reports whether a ratio changed.
func (w *Workspace) UpdateSplitters(in Input) bool {
	if w.activeSplitter != SplitterNone && w.layout.Splitters[w.activeSplitter].Empty() {
		w.activeSplitter = SplitterNone
	}

	changed := false
	hovered := SplitterNone
	dock := w.layout.Dock
	for s := SplitterLeft; s < splitterCount; s++ {
		r := w.layout.Splitters[s]
		if r.Empty() {
			continue
		}
		delta, ok := w.interact(s, r, in, &hovered)
		if !ok || delta == 0 {
			continue
		}
		rt := w.ratios
		switch s {
		case SplitterLeft:
			rt.Left += delta / floor1(dock.W)
		case SplitterRight:
			rt.Right -= delta / floor1(dock.W)
		case SplitterTop:
			rt.Top += delta / floor1(dock.H)
		case SplitterBottom:
			rt.Bottom -= delta / floor1(dock.H)
		}
		w.ratios = rt.Normalize()
		changed = true
	}

	w.hoveredSplitter = hovered
	if w.activeSplitter != SplitterNone {
		w.hoveredSplitter = w.activeSplitter
	}
	return changed
}

// interact hit-tests one gutter. It returns the pointer delta along the
// gutter's drag axis and whether the gutter is being dragged.
func (w *Workspace) interact(s Splitter, r Rect, in Input, hovered *Splitter) (float32, bool) {
	over := r.Contains(in.Pointer)
	if over && (w.activeSplitter == SplitterNone || w.activeSplitter == s) {
		*hovered = s
	}
	axis := in.Delta.Y
	if s.Vertical() {
		axis = in.Delta.X
	}
	if w.activeSplitter == s {
		if in.Down {
			return axis, true
		}
		w.activeSplitter = SplitterNone
		return 0, false
	}
	if over && in.Pressed && w.activeSplitter == SplitterNone {
		w.activeSplitter = s
		return axis, true
	}
	return 0, false
}
