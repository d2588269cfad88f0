package dock

// SanitizeDetached fits floating bounds into a viewport: the size is
// clamped to at least the configured minimum and at most the margin-inset
// viewport (the viewport wins when it is smaller), then the position is
// clamped so the whole rectangle stays inside the margin-inset viewport.
func SanitizeDetached(r Rect, viewportW, viewportH float32, cfg Config) Rect {
	maxW := floor1(viewportW - 2*cfg.Margin)
	maxH := floor1(viewportH - 2*cfg.Margin)
	if !finite(r.W) {
		r.W = 0
	}
	if !finite(r.H) {
		r.H = 0
	}
	r.W = min(max(r.W, cfg.MinDetachedWidth), maxW)
	r.H = min(max(r.H, cfg.MinDetachedHeight), maxH)

	minX, minY := cfg.Margin, cfg.Margin
	maxX := max(viewportW-cfg.Margin-r.W, minX)
	maxY := max(viewportH-cfg.Margin-r.H, minY)
	if !finite(r.X) {
		r.X = minX
	}
	if !finite(r.Y) {
		r.Y = minY
	}
	r.X = clampf(r.X, minX, maxX)
	r.Y = clampf(r.Y, minY, maxY)
	return r
}

func (w *Workspace) sanitize(r Rect) Rect {
	return SanitizeDetached(r, w.viewW, w.viewH, w.cfg)
}

// HeaderButtonBounds returns the detach/dock button in the title bar of a
// panel window. The button is right-aligned and narrows with the window.
func HeaderButtonBounds(window Rect, cfg Config) Rect {
	if window.Empty() {
		return Rect{}
	}
	b := Rect{W: cfg.HeaderButtonWidth, H: cfg.HeaderButtonHeight}
	if window.W < b.W+2*cfg.HeaderButtonMargin {
		b.W = window.W - 2*cfg.HeaderButtonMargin
	}
	b.W = floor1(b.W)
	b.X = window.X + window.W - b.W - cfg.HeaderButtonMargin
	b.Y = max(window.Y+(cfg.TitleBarHeight-b.H)*0.5, window.Y+1)
	b.H = floor1(min(b.H, cfg.TitleBarHeight-2))
	return b
}

// titleStrip is the draggable title bar of a docked panel.
func titleStrip(r Rect, cfg Config) Rect {
	r.H = min(cfg.TitleBarHeight, r.H)
	return r
}
