package dock

// DragPhase is the state of the drag-to-dock gesture.
type DragPhase int

const (
	DragIdle DragPhase = iota
	// DragPressed is a press on a title bar that has not yet travelled far
	// enough to count as a drag.
	DragPressed
	DragDragging
)

func (p DragPhase) String() string {
	switch p {
	case DragIdle:
		return "idle"
	case DragPressed:
		return "pressed"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type dragState struct {
	phase  DragPhase
	source Handle
	target Slot
	origin Point
	// zone is the zone under the pointer on the last update.
	zone Slot
}

// Drag describes the gesture in progress.
type Drag struct {
	Phase   DragPhase
	PanelID string
	// Target is the slot the panel would land in; it keeps the last zone
	// the pointer was over.
	Target Slot
	Zone   Slot
	Origin Point
}

// Drag returns the gesture in progress. Phase is DragIdle when there is none.
func (w *Workspace) Drag() Drag {
	if w.drag.phase == DragIdle {
		return Drag{Phase: DragIdle, Target: SlotNone, Zone: SlotNone}
	}
	return Drag{
		Phase:   w.drag.phase,
		PanelID: w.reg.Descriptor(w.drag.source).ID,
		Target:  w.drag.target,
		Zone:    w.drag.zone,
		Origin:  w.drag.origin,
	}
}

func (w *Workspace) cancelDragOf(h Handle) {
	if w.drag.phase != DragIdle && w.drag.source == h {
		w.drag = dragState{}
	}
}

// overDetached reports whether p is over a visible floating panel.
func (w *Workspace) overDetached(p Point) bool {
	for i := len(w.states) - 1; i >= 0; i-- {
		st := w.states[i]
		if st.Visible && st.Detached && st.ResolvedBounds.Contains(p) {
			return true
		}
	}
	return false
}

// BeginDrag starts a gesture when the primary button was pressed on the
// title bar of a docked panel. Presses on the header button, presses while
// a splitter is active and presses over a floating panel are ignored.
// Later panels are on top, so they are tested first.
func (w *Workspace) BeginDrag(in Input) {
	if w.drag.phase != DragIdle || w.activeSplitter != SplitterNone || !in.Pressed {
		return
	}
	if w.overDetached(in.Pointer) {
		return
	}
	for i := len(w.states) - 1; i >= 0; i-- {
		st := w.states[i]
		if !st.Visible || st.Detached {
			continue
		}
		if !titleStrip(st.ResolvedBounds, w.cfg).Contains(in.Pointer) {
			continue
		}
		if st.Detachable && HeaderButtonBounds(st.ResolvedBounds, w.cfg).Contains(in.Pointer) {
			continue
		}
		w.drag = dragState{
			phase:  DragPressed,
			source: Handle(i),
			target: st.Slot,
			origin: in.Pointer,
			zone:   SlotNone,
		}
		return
	}
}

// UpdateDrag advances the gesture and reports whether a release changed
// the layout.
func (w *Workspace) UpdateDrag(in Input) bool {
	if w.drag.phase == DragIdle {
		return false
	}
	h := w.drag.source
	if !w.reg.valid(h) || int(h) >= len(w.states) || !w.states[h].Visible || w.states[h].Detached {
		w.drag = dragState{}
		return false
	}

	if w.drag.phase == DragPressed {
		d := in.Pointer.Sub(w.drag.origin)
		if d.X*d.X+d.Y*d.Y >= w.cfg.DragThreshold {
			w.drag.phase = DragDragging
		}
	}
	if w.drag.phase == DragPressed {
		if !in.Down {
			// A click on the title bar.
			w.drag = dragState{}
		}
		return false
	}

	zone := w.DockZones().Pick(in.Pointer)
	w.drag.zone = zone
	if zone != SlotNone {
		w.drag.target = zone
	}
	if in.Down {
		return false
	}

	id := w.reg.Descriptor(h).ID
	st := &w.states[h]
	w.drag = dragState{}
	if zone != SlotNone {
		st.Slot = zone
		st.Detached = false
		w.touch(zone)
		w.logger.Debug("panel dropped", "id", id, "slot", zone)
		return true
	}
	if w.cfg.ReleasePolicy == ReleaseFloat && st.Detachable {
		r := st.DetachedBounds
		r.X = in.Pointer.X - r.W*0.5
		r.Y = in.Pointer.Y - w.cfg.TitleBarHeight*0.5
		st.DetachedBounds = w.sanitize(r)
		st.ResolvedBounds = st.DetachedBounds
		st.Detached = true
		w.logger.Debug("panel floated", "id", id, "bounds", st.DetachedBounds)
		return true
	}
	w.logger.Debug("drag abandoned", "id", id)
	return false
}
