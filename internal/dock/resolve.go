package dock

// Layout is the output of Resolve.
type Layout struct {
	Viewport Rect
	// Dock is the content area panels are laid out in and dock zones are
	// built over.
	Dock Rect
	// Panels is index-aligned with the registry. Hidden panels get the zero
	// Rect; floating panels get their sanitized detached bounds.
	Panels    []Rect
	Splitters [splitterCount]Rect
	// Bands holds the top, middle and bottom bands; absent bands are zero.
	Bands [3]Rect
	// Columns holds the left, center and right columns of the middle band,
	// including any extension through a corner cell.
	Columns [3]Rect
	// Corners records which slot fills each corner cell, in the order
	// top-left, top-right, bottom-left, bottom-right. SlotNone means the
	// corner's band is absent.
	Corners [4]Slot
}

// CornerOwner returns the slot filling corner cell c.
func (l Layout) CornerOwner(c Slot) Slot {
	i := cornerIndex(c)
	if i < 0 {
		return SlotNone
	}
	return l.Corners[i]
}

// span is a one-dimensional split of an extent into up to three cells.
type span struct {
	present   [3]bool
	pos, size [3]float32
}

func (s span) end(i int) float32 { return s.pos[i] + s.size[i] }

// takeExtent borrows up to needed from value without pushing it below
// floor and returns what is still missing.
func takeExtent(value *float32, floor, needed float32) float32 {
	if needed <= 0 {
		return needed
	}
	avail := *value - floor
	if avail <= 0 {
		return needed
	}
	taken := min(avail, needed)
	*value -= taken
	return needed - taken
}

// splitSpan divides total, starting at origin, between the present cells
// a, b and c. a and c get ratioA and ratioC of the shared extent and b the
// rest; with only a and c present the two ratios are normalized. A cell
// below its minimum borrows the deficit from the others in a fixed order:
// b from a then c, a from b then c, c from b then a.
func splitSpan(origin, total float32, present [3]bool, ratioA, ratioC float32, mins [3]float32, gap float32) span {
	s := span{present: present}
	a, b, c := present[0], present[1], present[2]

	gutters := 0
	if a && (b || c) {
		gutters++
	}
	if b && c {
		gutters++
	}
	shared := floor1(total - gap*float32(gutters))

	var sz [3]float32
	switch {
	case a && b && c:
		sz[0] = shared * ratioA
		sz[2] = shared * ratioC
		sz[1] = shared - sz[0] - sz[2]
	case a && b:
		sz[0] = shared * ratioA
		sz[1] = shared - sz[0]
	case b && c:
		sz[2] = shared * ratioC
		sz[1] = shared - sz[2]
	case a && c:
		sum := ratioA + ratioC
		if sum <= 0.001 {
			sum = 1
		}
		sz[0] = shared * (ratioA / sum)
		sz[2] = shared - sz[0]
	case a:
		sz[0] = shared
	case b:
		sz[1] = shared
	case c:
		sz[2] = shared
	}

	var m [3]float32
	for i := range m {
		if present[i] {
			m[i] = mins[i]
		}
	}
	if b && sz[1] < m[1] {
		d := m[1] - sz[1]
		d = takeExtent(&sz[0], m[0], d)
		d = takeExtent(&sz[2], m[2], d)
		sz[1] = m[1] - d
	}
	if a && sz[0] < m[0] {
		d := m[0] - sz[0]
		d = takeExtent(&sz[1], m[1], d)
		d = takeExtent(&sz[2], m[2], d)
		sz[0] = m[0] - d
	}
	if c && sz[2] < m[2] {
		d := m[2] - sz[2]
		d = takeExtent(&sz[1], m[1], d)
		d = takeExtent(&sz[0], m[0], d)
		sz[2] = m[2] - d
	}
	for i := range sz {
		if present[i] {
			sz[i] = floor1(sz[i])
		}
	}

	cursor := origin
	if a {
		s.pos[0] = cursor
		cursor += sz[0]
		if b || c {
			cursor += gap
		}
	}
	if b {
		s.pos[1] = cursor
		cursor += sz[1]
		if c {
			cursor += gap
		}
	}
	if c {
		s.pos[2] = cursor
	}
	s.size = sz
	return s
}

// stack divides cell evenly between panels, top to bottom when vertical
// and left to right otherwise, with gap between neighbours.
func stack(out []Rect, idx []int, cell Rect, vertical bool, gap float32) {
	n := len(idx)
	if n == 0 || cell.Empty() {
		return
	}
	extent := cell.W
	if vertical {
		extent = cell.H
	}
	each := floor1(floor1(extent-gap*float32(n-1)) / float32(n))
	cursor := cell.X
	if vertical {
		cursor = cell.Y
	}
	for _, i := range idx {
		if vertical {
			out[i] = Rect{X: cell.X, Y: cursor, W: cell.W, H: each}
		} else {
			out[i] = Rect{X: cursor, Y: cell.Y, W: each, H: cell.H}
		}
		cursor += each + gap
	}
}

// Resolve computes the layout of ws for a viewport. It reads ws and writes
// nothing.
func Resolve(ws *Workspace, viewportW, viewportH float32) Layout {
	cfg := ws.cfg
	l := Layout{
		Viewport: Rect{W: viewportW, H: viewportH},
		Panels:   make([]Rect, len(ws.states)),
		Corners:  [4]Slot{SlotNone, SlotNone, SlotNone, SlotNone},
	}
	top := cfg.Margin + cfg.TopReserved
	content := Rect{
		X: cfg.Margin,
		Y: top,
		W: floor1(viewportW - 2*cfg.Margin),
		H: floor1(viewportH - cfg.Margin - top),
	}
	l.Dock = content

	var buckets [slotCount][]int
	for i, st := range ws.states {
		if !st.Visible {
			continue
		}
		if st.Detached {
			l.Panels[i] = SanitizeDetached(st.DetachedBounds, viewportW, viewportH, cfg)
			continue
		}
		slot := st.Slot
		if !slot.Valid() {
			slot = SlotCenter
		}
		buckets[slot] = append(buckets[slot], i)
	}
	occ := func(s Slot) bool { return len(buckets[s]) > 0 }

	hasTop := occ(SlotTop) || occ(SlotTopLeft) || occ(SlotTopRight)
	hasMid := occ(SlotLeft) || occ(SlotCenter) || occ(SlotRight)
	hasBottom := occ(SlotBottom) || occ(SlotBottomLeft) || occ(SlotBottomRight)
	if !hasTop && !hasMid && !hasBottom {
		return l
	}

	rows := splitSpan(content.Y, content.H, [3]bool{hasTop, hasMid, hasBottom},
		ws.ratios.Top, ws.ratios.Bottom,
		[3]float32{cfg.MinTopHeight, cfg.MinMiddleHeight, cfg.MinBottomHeight}, cfg.Gap)
	for b := range 3 {
		if rows.present[b] {
			l.Bands[b] = Rect{X: content.X, Y: rows.pos[b], W: content.W, H: rows.size[b]}
		}
	}

	colMins := [3]float32{cfg.MinLeftWidth, cfg.MinCenterWidth, cfg.MinRightWidth}
	var cols span
	if hasMid {
		cols = splitSpan(content.X, content.W, [3]bool{occ(SlotLeft), occ(SlotCenter), occ(SlotRight)},
			ws.ratios.Left, ws.ratios.Right, colMins, cfg.Gap)
		for k := range 3 {
			if cols.present[k] {
				l.Columns[k] = Rect{X: cols.pos[k], Y: rows.pos[1], W: cols.size[k], H: rows.size[1]}
			}
		}
	}

	// Corner ownership.
	lone := -1
	switch {
	case cols.present[0] && !cols.present[1] && !cols.present[2]:
		lone = 0
	case cols.present[2] && !cols.present[0] && !cols.present[1]:
		lone = 2
	}
	var extends [4]bool
	for ci, c := range corners {
		row := 2
		if c.top {
			row = 0
		}
		if occ(c.slot) {
			l.Corners[ci] = c.slot
			continue
		}
		if !rows.present[row] {
			continue
		}
		claimant := bandClaimant(ws, buckets, c)
		l.Corners[ci] = claimant
		if !occ(c.column) {
			continue
		}
		if ws.serials[c.column] >= ws.serials[claimant] {
			l.Corners[ci] = c.column
			extends[ci] = true
		}
	}

	// A lone column that takes a corner narrows to the width it would have
	// beside a center column. The bands it cut into fill the rest of the
	// middle band.
	narrowed := false
	bandRows := rows
	var absorbed [3]bool
	if lone >= 0 {
		ti, bi := 0, 2
		if lone == 2 {
			ti, bi = 1, 3
		}
		absorbed[0], absorbed[2] = extends[ti], extends[bi]
		narrowed = absorbed[0] || absorbed[2]
	}
	if narrowed {
		beside := splitSpan(content.X, content.W, [3]bool{lone == 0, true, lone == 2},
			ws.ratios.Left, ws.ratios.Right, colMins, cfg.Gap)
		cols.pos[lone], cols.size[lone] = beside.pos[lone], beside.size[lone]
		l.Columns[lone].X, l.Columns[lone].W = beside.pos[lone], beside.size[lone]

		midTop, midBottom := rows.pos[1], rows.end(1)
		switch {
		case absorbed[0] && absorbed[2]:
			cut := midTop + floor1((rows.size[1]-cfg.Gap)/2)
			bandRows.size[0] = cut - rows.pos[0]
			bandRows.pos[2] = cut + cfg.Gap
			bandRows.size[2] = rows.end(2) - bandRows.pos[2]
		case absorbed[0]:
			bandRows.size[0] = midBottom - rows.pos[0]
		default:
			bandRows.pos[2] = midTop
			bandRows.size[2] = rows.end(2) - midTop
		}
	}
	for ci, c := range corners {
		if !extends[ci] {
			continue
		}
		col := 0
		if !c.left {
			col = 2
		}
		r := l.Columns[col]
		if c.top {
			r.H = r.Bottom() - rows.pos[0]
			r.Y = rows.pos[0]
		} else {
			r.H = rows.end(2) - r.Y
		}
		l.Columns[col] = r
	}

	for k, s := range [3]Slot{SlotLeft, SlotCenter, SlotRight} {
		if cols.present[k] {
			stack(l.Panels, buckets[s], l.Columns[k], true, cfg.Gap)
		}
	}

	var runs [3][2]float32
	for _, b := range [2]int{0, 2} {
		if !rows.present[b] {
			continue
		}
		runs[b] = layoutBand(ws, &l, buckets, b, bandRows, cols, extends)
	}

	if cols.present[0] && (cols.present[1] || cols.present[2] || narrowed) {
		c := l.Columns[0]
		l.Splitters[SplitterLeft] = Rect{X: cols.end(0), Y: c.Y, W: cfg.Gap, H: c.H}
	}
	if cols.present[2] && (cols.present[1] || narrowed) {
		c := l.Columns[2]
		x := cols.pos[2] - cfg.Gap
		if cols.present[1] {
			x = cols.end(1)
		}
		l.Splitters[SplitterRight] = Rect{X: x, Y: c.Y, W: cfg.Gap, H: c.H}
	}
	// An absorbing band has no gutter of its own against the middle band.
	if rows.present[0] && (rows.present[1] || rows.present[2]) && !absorbed[0] {
		x0, x1 := runs[0][0], runs[0][1]
		l.Splitters[SplitterTop] = Rect{X: x0, Y: rows.end(0), W: floor1(x1 - x0), H: cfg.Gap}
	}
	if rows.present[1] && rows.present[2] && !absorbed[2] {
		x0, x1 := runs[2][0], runs[2][1]
		l.Splitters[SplitterBottom] = Rect{X: x0, Y: rows.end(1), W: floor1(x1 - x0), H: cfg.Gap}
	}
	return l
}

// bandClaimant returns the slot that fills the center of corner c's band:
// the band's edge slot when occupied, otherwise the corner that expands
// across it.
func bandClaimant(ws *Workspace, buckets [slotCount][]int, c corner) Slot {
	if len(buckets[c.band]) > 0 {
		return c.band
	}
	left, right := SlotTopLeft, SlotTopRight
	if !c.top {
		left, right = SlotBottomLeft, SlotBottomRight
	}
	return expander(ws, buckets, left, right)
}

// expander picks which of two corners absorbs an empty band center: the
// occupied one, or the more recently touched when both are, left on ties.
func expander(ws *Workspace, buckets [slotCount][]int, left, right Slot) Slot {
	lo, ro := len(buckets[left]) > 0, len(buckets[right]) > 0
	switch {
	case lo && !ro:
		return left
	case ro && !lo:
		return right
	case ws.serials[right] > ws.serials[left]:
		return right
	default:
		return left
	}
}

// layoutBand places the top (b == 0) or bottom (b == 2) band and returns
// the horizontal run it occupies.
func layoutBand(ws *Workspace, l *Layout, buckets [slotCount][]int, b int, rows, cols span, extends [4]bool) [2]float32 {
	cfg := ws.cfg
	center, left, right := SlotTop, SlotTopLeft, SlotTopRight
	li, ri := 0, 1
	if b == 2 {
		center, left, right = SlotBottom, SlotBottomLeft, SlotBottomRight
		li, ri = 2, 3
	}

	x0, x1 := l.Dock.X, l.Dock.Right()
	if extends[li] {
		x0 = cols.end(0) + cfg.Gap
	}
	if extends[ri] {
		x1 = cols.pos[2] - cfg.Gap
	}
	occL, occR := len(buckets[left]) > 0, len(buckets[right]) > 0
	run := splitSpan(x0, floor1(x1-x0), [3]bool{occL, true, occR},
		ws.ratios.Left, ws.ratios.Right,
		[3]float32{cfg.MinLeftWidth, cfg.MinCenterWidth, cfg.MinRightWidth}, cfg.Gap)

	y, h := rows.pos[b], rows.size[b]
	cell := func(i int) Rect { return Rect{X: run.pos[i], Y: y, W: run.size[i], H: h} }
	lc, cc, rc := cell(0), cell(1), cell(2)

	if len(buckets[center]) > 0 {
		stack(l.Panels, buckets[center], cc, false, cfg.Gap)
	} else if expander(ws, buckets, left, right) == left {
		lc.W = cc.Right() - lc.X
	} else {
		rc.W = rc.Right() - cc.X
		rc.X = cc.X
	}
	if occL {
		stack(l.Panels, buckets[left], lc, false, cfg.Gap)
	}
	if occR {
		stack(l.Panels, buckets[right], rc, false, cfg.Gap)
	}
	return [2]float32{x0, x0 + floor1(x1-x0)}
}

// Relayout resolves the layout for a viewport and stores the result:
// resolved bounds for every panel (empty when hidden), splitter gutters
// and dock bounds.
// Detached bounds are re-sanitized for the new viewport.
func (w *Workspace) Relayout(viewportW, viewportH int) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	w.viewW, w.viewH = float32(viewportW), float32(viewportH)
	for i := range w.states {
		if w.states[i].Detached {
			w.states[i].DetachedBounds = w.sanitize(w.states[i].DetachedBounds)
		}
	}
	w.layout = Resolve(w, w.viewW, w.viewH)
	for i := range w.states {
		w.states[i].ResolvedBounds = w.layout.Panels[i]
	}
}

// Layout returns the layout stored by the last Relayout.
func (w *Workspace) Layout() Layout { return w.layout }

// DockBounds returns the dock area of the last layout.
func (w *Workspace) DockBounds() Rect { return w.layout.Dock }

// Viewport returns the viewport size of the last layout.
func (w *Workspace) Viewport() (float32, float32) { return w.viewW, w.viewH }
