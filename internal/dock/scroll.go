package dock

// RouteScroll picks the one panel that receives the wheel this frame and
// returns its index, or -1. In order of preference: the focused window if
// it is floating and hovered, the topmost hovered floating panel, the
// focused docked panel if hovered, the first hovered docked panel.
//
// Floating panels are drawn after docked ones in registration order, so the
// last hovered floating panel is the topmost.
func (w *Workspace) RouteScroll(in Input, focused string) int {
	hovered := func(i int) bool {
		st := w.states[i]
		return st.Visible && st.ResolvedBounds.Contains(in.Pointer)
	}
	focusIdx := -1
	if h, ok := w.reg.Lookup(focused); ok && int(h) < len(w.states) {
		focusIdx = int(h)
	}

	if focusIdx >= 0 && w.states[focusIdx].Detached && hovered(focusIdx) {
		return focusIdx
	}
	for i := len(w.states) - 1; i >= 0; i-- {
		if w.states[i].Detached && hovered(i) {
			return i
		}
	}
	if focusIdx >= 0 && !w.states[focusIdx].Detached && hovered(focusIdx) {
		return focusIdx
	}
	for i := range w.states {
		if !w.states[i].Detached && hovered(i) {
			return i
		}
	}
	return -1
}
