package dock

// DockZones holds the drop zone of every slot, indexed by Slot.
type DockZones [slotCount]Rect

// pickOrder is the order zones are hit-tested in. Edge zones and center
// share borders with the corners, so edges win on a boundary.
var pickOrder = [slotCount]Slot{
	SlotLeft, SlotRight, SlotTop, SlotBottom, SlotCenter,
	SlotTopLeft, SlotTopRight, SlotBottomLeft, SlotBottomRight,
}

// BuildDockZones splits bounds into nine drop zones. The edge thickness is
// edgeFraction of the axis (clamped to [0.12, 0.38]) but at least
// minEdge (clamped to [16, 320]) and at most 42% of the axis. Center is
// what the edges leave; corners are the four structural corner cells.
func BuildDockZones(bounds Rect, edgeFraction, minEdge float32) DockZones {
	var z DockZones
	if bounds.Empty() {
		return z
	}
	edgeFraction = clampf(edgeFraction, 0.12, 0.38)
	minEdge = clampf(minEdge, 16, 320)

	ex := min(max(bounds.W*edgeFraction, minEdge), bounds.W*0.42)
	ey := min(max(bounds.H*edgeFraction, minEdge), bounds.H*0.42)

	ix, iy := bounds.X+ex, bounds.Y+ey
	iw := floor1(bounds.W - 2*ex)
	ih := floor1(bounds.H - 2*ey)
	rx := bounds.Right() - ex
	by := bounds.Bottom() - ey

	z[SlotLeft] = Rect{X: bounds.X, Y: iy, W: ex, H: ih}
	z[SlotRight] = Rect{X: rx, Y: iy, W: ex, H: ih}
	z[SlotTop] = Rect{X: ix, Y: bounds.Y, W: iw, H: ey}
	z[SlotBottom] = Rect{X: ix, Y: by, W: iw, H: ey}
	z[SlotCenter] = Rect{X: ix, Y: iy, W: iw, H: ih}
	z[SlotTopLeft] = Rect{X: bounds.X, Y: bounds.Y, W: ex, H: ey}
	z[SlotTopRight] = Rect{X: rx, Y: bounds.Y, W: ex, H: ey}
	z[SlotBottomLeft] = Rect{X: bounds.X, Y: by, W: ex, H: ey}
	z[SlotBottomRight] = Rect{X: rx, Y: by, W: ex, H: ey}
	return z
}

// Pick returns the slot of the zone containing p, or SlotNone.
func (z DockZones) Pick(p Point) Slot {
	for _, s := range pickOrder {
		if z[s].Contains(p) {
			return s
		}
	}
	return SlotNone
}

// DockZones returns the drop zones over the current dock area.
func (w *Workspace) DockZones() DockZones {
	return BuildDockZones(w.layout.Dock, w.cfg.DockEdgeFraction, w.cfg.DockMinEdgeSize)
}
