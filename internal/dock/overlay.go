package dock

import "strings"

type splitterColors struct {
	track, grip Color
}

var (
	splitterActive  = splitterColors{track: RGBA(92, 108, 138, 220), grip: RGBA(220, 230, 255, 240)}
	splitterHovered = splitterColors{track: RGBA(80, 92, 116, 190), grip: RGBA(210, 218, 240, 220)}
	splitterIdle    = splitterColors{track: RGBA(65, 74, 92, 148), grip: RGBA(190, 200, 220, 165)}

	zoneFill         = RGBA(60, 76, 104, 92)
	zoneBorder       = RGBA(140, 162, 198, 138)
	zoneActiveFill   = RGBA(90, 124, 176, 132)
	zoneActiveBorder = RGBA(208, 226, 255, 212)

	overlayStyle = Style{}
)

const (
	overlayFlags = FlagNoScrollbar | FlagNoInput
	zoneRounding = 7
)

// OverlayID names the overlay windows the engine opens.
func OverlayID(name string) string { return "paneldock." + name }

// IsOverlayID reports whether id names an engine overlay window.
func IsOverlayID(id string) bool { return strings.HasPrefix(id, "paneldock.") }

// DrawOverlays draws the splitter gutters and, while a panel is being
// dragged, the dock zones and the panel's outline under the pointer.
func (w *Workspace) DrawOverlays(s Surface) {
	s.PushStyle(overlayStyle)
	defer s.PopStyle()

	for sp := SplitterLeft; sp < splitterCount; sp++ {
		r := w.layout.Splitters[sp]
		if r.Empty() {
			continue
		}
		if !s.BeginWindow(OverlayID("splitter."+sp.String()), "", r, overlayFlags|FlagBackground) {
			continue
		}
		colors := splitterIdle
		switch {
		case w.activeSplitter == sp:
			colors = splitterActive
		case w.hoveredSplitter == sp:
			colors = splitterHovered
		}
		drawSplitter(s, r, sp.Vertical(), colors)
		s.EndWindow()
	}

	w.drawDragOverlay(s)
}

func drawSplitter(s Surface, r Rect, vertical bool, c splitterColors) {
	track := r
	if !vertical {
		t := clampf(r.H*0.16, 1, 2)
		track = Rect{X: r.X, Y: r.Y + (r.H-t)*0.5, W: r.W, H: t}
	}
	s.FillRect(track, 0, c.track)

	cx, cy := r.X+r.W*0.5, r.Y+r.H*0.5
	if vertical {
		half := clampf(r.H*0.16, 10, 28)
		for _, dx := range [3]float32{-2, 0, 2} {
			s.Line(cx+dx, cy-half, cx+dx, cy+half, 1, c.grip)
		}
		return
	}
	half := clampf(r.W*0.16, 10, 28)
	for _, dy := range [3]float32{-0.5, 0, 0.5} {
		s.Line(cx-half, cy+dy, cx+half, cy+dy, 1, c.grip)
	}
}

func (w *Workspace) drawDragOverlay(s Surface) {
	if w.drag.phase != DragDragging {
		return
	}
	dock := w.layout.Dock
	if dock.Empty() {
		return
	}
	zones := w.DockZones()
	in := s.Input()
	hot := zones.Pick(in.Pointer)
	if hot == SlotNone {
		hot = w.drag.target
	}

	if !s.BeginWindow(OverlayID("dock"), "", dock, overlayFlags) {
		return
	}
	for _, slot := range pickOrder {
		z := zones[slot]
		if z.Empty() {
			continue
		}
		fill, border := zoneFill, zoneBorder
		if slot == hot {
			fill, border = zoneActiveFill, zoneActiveBorder
		}
		s.FillRect(z, zoneRounding, fill)
		s.StrokeRect(z, zoneRounding, 1, border)
	}
	if src := w.states[w.drag.source].ResolvedBounds; !src.Empty() {
		preview := src.Offset(in.Pointer.Sub(w.drag.origin))
		s.StrokeRect(preview, 0, 2, zoneActiveBorder)
		s.Text(titleStrip(preview, w.cfg), w.reg.Descriptor(w.drag.source).Title, zoneActiveBorder)
	}
	s.EndWindow()
}
