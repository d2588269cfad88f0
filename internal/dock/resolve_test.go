package dock

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 0.01

func TestResolve_LeftCenterRight(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("a", SlotLeft))
	mustRegister(t, ws, desc("b", SlotCenter))
	mustRegister(t, ws, desc("c", SlotRight))
	ws.Relayout(1600, 900)

	a, b, c := bounds(t, ws, "a"), bounds(t, ws, "b"), bounds(t, ws, "c")
	content := ws.DockBounds()
	assert.Equal(t, Rect{X: 12, Y: 46, W: 1576, H: 842}, content)

	shared := content.W - 2*ws.cfg.Gap
	assert.InDelta(t, shared, a.W+b.W+c.W, eps)
	assert.InDelta(t, 0.24*shared, a.W, eps)
	assert.InDelta(t, 0.23*shared, c.W, eps)

	assert.InDelta(t, content.X, a.X, eps)
	assert.InDelta(t, a.Right()+10, b.X, eps)
	assert.InDelta(t, b.Right()+10, c.X, eps)
	assert.InDelta(t, content.Right(), c.Right(), eps)
	for _, r := range []Rect{a, b, c} {
		assert.InDelta(t, content.Y, r.Y, eps)
		assert.InDelta(t, content.H, r.H, eps)
	}
}

func TestResolve_ColumnMinimaBorrowFromCenter(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("a", SlotLeft))
	mustRegister(t, ws, desc("b", SlotCenter))
	mustRegister(t, ws, desc("c", SlotRight))
	ws.Relayout(900, 700)

	// shared = 876 - 20 = 856; left 205.44 and right 196.88 are below their
	// floors and take the difference from the center.
	assert.InDelta(t, 220, bounds(t, ws, "a").W, eps)
	assert.InDelta(t, 260, bounds(t, ws, "c").W, eps)
	assert.InDelta(t, 376, bounds(t, ws, "b").W, eps)
}

func TestResolve_RowsAndGutters(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("top", SlotTop))
	mustRegister(t, ws, desc("main", SlotCenter))
	mustRegister(t, ws, desc("bottom", SlotBottom))
	ws.Relayout(1600, 900)

	top, mid, bot := bounds(t, ws, "top"), bounds(t, ws, "main"), bounds(t, ws, "bottom")
	shared := float32(842 - 20)
	assert.InDelta(t, 0.22*shared, top.H, eps)
	assert.InDelta(t, 0.20*shared, bot.H, eps)
	assert.InDelta(t, shared-top.H-bot.H, mid.H, eps)
	assert.InDelta(t, top.Bottom()+10, mid.Y, eps)
	assert.InDelta(t, mid.Bottom()+10, bot.Y, eps)

	l := ws.Layout()
	assert.True(t, l.Splitters[SplitterLeft].Empty())
	assert.True(t, l.Splitters[SplitterRight].Empty())
	assert.Equal(t, Rect{X: 12, Y: top.Bottom(), W: 1576, H: 10}, l.Splitters[SplitterTop])
	assert.Equal(t, Rect{X: 12, Y: mid.Bottom(), W: 1576, H: 10}, l.Splitters[SplitterBottom])
}

func TestResolve_TopAndBottomOnlyNormalizeRatios(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("top", SlotTop))
	mustRegister(t, ws, desc("bottom", SlotBottom))
	ws.Relayout(1600, 900)

	shared := float32(842 - 10)
	top := bounds(t, ws, "top")
	assert.InDelta(t, shared*0.22/0.42, top.H, eps)
	assert.InDelta(t, shared, top.H+bounds(t, ws, "bottom").H, eps)
	assert.False(t, ws.Layout().Splitters[SplitterTop].Empty())
	assert.True(t, ws.Layout().Splitters[SplitterBottom].Empty())
}

func TestResolve_SharedCellStacksInRegistrationOrder(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("l1", SlotLeft))
	mustRegister(t, ws, desc("l2", SlotLeft))
	mustRegister(t, ws, desc("t1", SlotTop))
	mustRegister(t, ws, desc("t2", SlotTop))
	mustRegister(t, ws, desc("c", SlotCenter))
	ws.Relayout(1600, 900)

	l1, l2 := bounds(t, ws, "l1"), bounds(t, ws, "l2")
	assert.Equal(t, l1.X, l2.X)
	assert.InDelta(t, l1.H, l2.H, eps)
	assert.InDelta(t, l1.Bottom()+10, l2.Y, eps)

	t1, t2 := bounds(t, ws, "t1"), bounds(t, ws, "t2")
	assert.Equal(t, t1.Y, t2.Y)
	assert.InDelta(t, t1.W, t2.W, eps)
	assert.InDelta(t, t1.Right()+10, t2.X, eps)
}

func TestResolve_HiddenAndDetachedBypassDocking(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("a", SlotLeft))
	d := desc("b", SlotCenter)
	d.DefaultDetachable = true
	mustRegister(t, ws, d)
	mustRegister(t, ws, desc("c", SlotRight))
	require.NoError(t, ws.SetVisible("c", false))
	require.NoError(t, ws.SetDetached("b", true))
	ws.Relayout(1600, 900)

	// a is alone in the middle band.
	assert.Equal(t, ws.DockBounds(), bounds(t, ws, "a"))
	st, err := ws.State("b")
	require.NoError(t, err)
	assert.Equal(t, st.DetachedBounds, st.ResolvedBounds)
	assert.Equal(t, Rect{}, ws.Layout().Panels[2])
}

func TestResolve_CornerOwnershipFollowsTouchOrder(t *testing.T) {
	// Top touched last: the top band keeps the full width.
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("left", SlotLeft))
	mustRegister(t, ws, desc("center", SlotCenter))
	mustRegister(t, ws, desc("top", SlotTop))
	ws.Relayout(1600, 900)

	l := ws.Layout()
	assert.Equal(t, SlotTop, l.CornerOwner(SlotTopLeft))
	top, left := bounds(t, ws, "top"), bounds(t, ws, "left")
	assert.InDelta(t, 12, top.X, eps)
	assert.InDelta(t, 1576, top.W, eps)
	assert.InDelta(t, top.Bottom()+10, left.Y, eps)

	// Left touched last: the left column runs up through the top band.
	ws = newTestWorkspace(t)
	mustRegister(t, ws, desc("top", SlotTop))
	mustRegister(t, ws, desc("center", SlotCenter))
	mustRegister(t, ws, desc("left", SlotLeft))
	ws.Relayout(1600, 900)

	l = ws.Layout()
	assert.Equal(t, SlotLeft, l.CornerOwner(SlotTopLeft))
	top, left = bounds(t, ws, "top"), bounds(t, ws, "left")
	assert.InDelta(t, 46, left.Y, eps)
	assert.InDelta(t, 842, left.H, eps)
	assert.InDelta(t, left.Right()+10, top.X, eps)
	assert.InDelta(t, 1588, top.Right(), eps)
	assert.InDelta(t, left.Y+left.H, ws.Layout().Splitters[SplitterLeft].Bottom(), eps)
	assert.InDelta(t, top.X, ws.Layout().Splitters[SplitterTop].X, eps)

	// Re-touching the top slot flips it back.
	require.NoError(t, ws.SetSlot("top", SlotTop))
	ws.Relayout(1600, 900)
	assert.Equal(t, SlotTop, ws.Layout().CornerOwner(SlotTopLeft))
	assert.InDelta(t, 12, bounds(t, ws, "top").X, eps)
}

func TestResolve_LoneColumnTakesCornerByTouchOrder(t *testing.T) {
	register := func(t *testing.T, ids ...string) *Workspace {
		ws := newTestWorkspace(t)
		for _, id := range ids {
			slot := SlotLeft
			if id == "top" {
				slot = SlotTop
			}
			mustRegister(t, ws, desc(id, slot))
		}
		ws.Relayout(1600, 900)
		return ws
	}

	t.Run("column touched last", func(t *testing.T) {
		ws := register(t, "top", "left")
		l := ws.Layout()
		assert.Equal(t, SlotLeft, l.CornerOwner(SlotTopLeft))
		assert.Equal(t, SlotTop, l.CornerOwner(SlotTopRight))

		// The column keeps the width it would have beside a center column
		// and runs the full height; the top band fills the rest.
		top, left := bounds(t, ws, "top"), bounds(t, ws, "left")
		assert.InDelta(t, 0.24*(1576-10), left.W, eps)
		assert.InDelta(t, 12, left.X, eps)
		assert.InDelta(t, 46, left.Y, eps)
		assert.InDelta(t, 842, left.H, eps)
		assert.InDelta(t, left.Right()+10, top.X, eps)
		assert.InDelta(t, 1588, top.Right(), eps)
		assert.InDelta(t, 46, top.Y, eps)
		assert.InDelta(t, 888, top.Bottom(), eps)

		assert.Equal(t, Rect{X: left.Right(), Y: left.Y, W: 10, H: left.H}, l.Splitters[SplitterLeft])
		assert.True(t, l.Splitters[SplitterTop].Empty())
	})

	t.Run("band touched last", func(t *testing.T) {
		ws := register(t, "left", "top")
		l := ws.Layout()
		assert.Equal(t, SlotTop, l.CornerOwner(SlotTopLeft))

		top, left := bounds(t, ws, "top"), bounds(t, ws, "left")
		assert.InDelta(t, 12, top.X, eps)
		assert.InDelta(t, 46, top.Y, eps)
		assert.InDelta(t, 1576, top.W, eps)
		assert.InDelta(t, 0.22*832, top.H, eps)
		assert.InDelta(t, 1576, left.W, eps)
		assert.InDelta(t, top.Bottom()+10, left.Y, eps)
		assert.InDelta(t, 888, left.Bottom(), eps)
		assert.True(t, l.Splitters[SplitterLeft].Empty())
		assert.False(t, l.Splitters[SplitterTop].Empty())
	})

	for _, ids := range [][]string{{"top", "left"}, {"left", "top"}} {
		ws := register(t, ids...)
		for _, id := range ids {
			r := bounds(t, ws, id)
			assert.Truef(t, r.W > 0 && r.H > 0, "%s in %v got %v", id, ids, r)
		}
	}
}

func TestResolve_LoneRightColumnSplitsBothBands(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("top", SlotTop))
	mustRegister(t, ws, desc("bottom", SlotBottom))
	mustRegister(t, ws, desc("right", SlotRight))
	ws.Relayout(1600, 900)

	l := ws.Layout()
	assert.Equal(t, SlotRight, l.CornerOwner(SlotTopRight))
	assert.Equal(t, SlotRight, l.CornerOwner(SlotBottomRight))

	right, top, bot := bounds(t, ws, "right"), bounds(t, ws, "top"), bounds(t, ws, "bottom")
	assert.InDelta(t, 0.23*(1576-10), right.W, eps)
	assert.InDelta(t, 1588, right.Right(), eps)
	assert.InDelta(t, 46, right.Y, eps)
	assert.InDelta(t, 888, right.Bottom(), eps)

	// The two bands meet halfway down the vacated middle band.
	for _, r := range []Rect{top, bot} {
		assert.InDelta(t, 12, r.X, eps)
		assert.InDelta(t, right.X-10, r.Right(), eps)
	}
	assert.InDelta(t, 46, top.Y, eps)
	assert.InDelta(t, top.Bottom()+10, bot.Y, eps)
	assert.InDelta(t, 888, bot.Bottom(), eps)
	mid := l.Bands[1]
	assert.InDelta(t, mid.Y+floor1((mid.H-10)/2), top.Bottom(), eps)

	assert.Equal(t, Rect{X: right.X - 10, Y: right.Y, W: 10, H: right.H}, l.Splitters[SplitterRight])
	assert.True(t, l.Splitters[SplitterTop].Empty())
	assert.True(t, l.Splitters[SplitterBottom].Empty())
}

func TestResolve_RowMinimumsBorrow(t *testing.T) {
	register := func(t *testing.T, h int) (top, mid, bot Rect) {
		ws := newTestWorkspace(t)
		mustRegister(t, ws, desc("top", SlotTop))
		mustRegister(t, ws, desc("main", SlotCenter))
		mustRegister(t, ws, desc("bottom", SlotBottom))
		ws.Relayout(1600, h)
		return bounds(t, ws, "top"), bounds(t, ws, "main"), bounds(t, ws, "bottom")
	}

	t.Run("middle covers the outer bands", func(t *testing.T) {
		// shared = 382 - 20 = 362: top 79.64 and bottom 72.4 fall short and
		// both borrow from the middle.
		top, mid, bot := register(t, 440)
		assert.InDelta(t, 120, top.H, eps)
		assert.InDelta(t, 121.99999, mid.H, eps)
		assert.InDelta(t, 120, bot.H, eps)
		assert.InDelta(t, top.Bottom()+10, mid.Y, eps)
		assert.InDelta(t, mid.Bottom()+10, bot.Y, eps)
	})

	t.Run("top borrows before bottom", func(t *testing.T) {
		// shared = 362 - 20 = 342: the middle pays the top band's deficit
		// in full and reaches its floor before the bottom band's is
		// covered. The top band is at its floor too, so the bottom stays
		// short.
		top, mid, bot := register(t, 420)
		assert.InDelta(t, 120, top.H, eps)
		assert.InDelta(t, 120, mid.H, eps)
		assert.InDelta(t, 342-240, bot.H, eps)
		assert.InDelta(t, 408, bot.Bottom(), eps)
	})
}

func TestResolve_OccupiedCornerOwnsItsCell(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("left", SlotLeft))
	mustRegister(t, ws, desc("center", SlotCenter))
	mustRegister(t, ws, desc("top", SlotTop))
	mustRegister(t, ws, desc("tl", SlotTopLeft))
	ws.Relayout(1600, 900)

	tl, top, left := bounds(t, ws, "tl"), bounds(t, ws, "top"), bounds(t, ws, "left")
	assert.Equal(t, SlotTopLeft, ws.Layout().CornerOwner(SlotTopLeft))
	assert.InDelta(t, 12, tl.X, eps)
	assert.InDelta(t, 46, tl.Y, eps)
	assert.InDelta(t, tl.Right()+10, top.X, eps)
	assert.Equal(t, tl.H, top.H)
	// The band split uses the column ratios, so the corner lines up with
	// the left column below it.
	assert.InDelta(t, left.W, tl.W, eps)
	assert.InDelta(t, top.Bottom()+10, left.Y, eps)
}

func TestResolve_CornersOnlyBandExpandsMostRecent(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("center", SlotCenter))
	mustRegister(t, ws, desc("tl", SlotTopLeft))
	mustRegister(t, ws, desc("tr", SlotTopRight))
	ws.Relayout(1600, 900)

	tl, tr := bounds(t, ws, "tl"), bounds(t, ws, "tr")
	shared := float32(1576 - 20)
	assert.InDelta(t, 0.24*shared, tl.W, eps)
	assert.InDelta(t, tl.Right()+10, tr.X, eps)
	assert.InDelta(t, 1588, tr.Right(), eps)

	// Touch the left corner: it now absorbs the band center.
	require.NoError(t, ws.SetSlot("tl", SlotTopLeft))
	ws.Relayout(1600, 900)
	tl, tr = bounds(t, ws, "tl"), bounds(t, ws, "tr")
	assert.InDelta(t, 0.23*shared, tr.W, eps)
	assert.InDelta(t, 1588, tr.Right(), eps)
	assert.InDelta(t, tr.X-10, tl.Right(), eps)
}

func TestResolve_SingleCornerFillsBand(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("center", SlotCenter))
	mustRegister(t, ws, desc("br", SlotBottomRight))
	ws.Relayout(1600, 900)

	br := bounds(t, ws, "br")
	assert.InDelta(t, 12, br.X, eps)
	assert.InDelta(t, 1576, br.W, eps)
	assert.InDelta(t, bounds(t, ws, "center").Bottom()+10, br.Y, eps)
	assert.Equal(t, SlotBottomRight, ws.Layout().CornerOwner(SlotBottomRight))
	assert.Equal(t, SlotBottomRight, ws.Layout().CornerOwner(SlotBottomLeft))
	assert.Equal(t, SlotNone, ws.Layout().CornerOwner(SlotTopLeft))
}

func TestResolve_EqualSerialsStayStable(t *testing.T) {
	// Both corners of an empty band reloaded with identical serials: the
	// left corner expands, frame after frame.
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("center", SlotCenter))
	mustRegister(t, ws, desc("tl", SlotTopLeft))
	mustRegister(t, ws, desc("tr", SlotTopRight))
	ws.serials[SlotTopRight] = ws.serials[SlotTopLeft]

	first := Resolve(ws, 1600, 900)
	for range 5 {
		require.Equal(t, first, Resolve(ws, 1600, 900))
	}
	tl, tr := first.Panels[1], first.Panels[2]
	assert.Greater(t, tl.W, tr.W)
}

func TestResolve_Idempotent(t *testing.T) {
	ws := newTestWorkspace(t)
	for i, s := range AllSlots() {
		mustRegister(t, ws, desc(s.String(), s))
		if i%3 == 0 {
			mustRegister(t, ws, desc(s.String()+"-2", s))
		}
	}
	a := Resolve(ws, 1440, 960)
	b := Resolve(ws, 1440, 960)
	assert.Equal(t, a, b)

	ws.Relayout(1440, 960)
	before := make([]Rect, ws.Count())
	for i := range before {
		before[i] = ws.states[i].ResolvedBounds
	}
	ws.Relayout(1440, 960)
	for i := range before {
		assert.Equal(t, before[i], ws.states[i].ResolvedBounds)
	}
}

func TestResolve_NeverProducesDegenerateDockedRects(t *testing.T) {
	cfg := DefaultConfig()
	minW := int(2*cfg.Margin + cfg.MinLeftWidth + cfg.MinCenterWidth + cfg.MinRightWidth)
	minH := int(2*cfg.Margin + cfg.TopReserved + cfg.MinTopHeight + cfg.MinMiddleHeight + cfg.MinBottomHeight)
	rng := rand.New(rand.NewPCG(7, 11))
	slots := AllSlots()

	for iter := range 300 {
		ws := newTestWorkspace(t)
		n := 1 + rng.IntN(12)
		for i := range n {
			d := desc(string(rune('a'+i)), slots[rng.IntN(len(slots))])
			d.DefaultVisible = rng.IntN(5) != 0
			mustRegister(t, ws, d)
		}
		require.NoError(t, ws.SetColumnRatios(rng.Float32(), rng.Float32()))
		require.NoError(t, ws.SetRowRatios(rng.Float32(), rng.Float32()))
		w := minW + rng.IntN(1600)
		h := minH + rng.IntN(1000)
		l := Resolve(ws, float32(w), float32(h))
		for i, st := range ws.states {
			if !st.Visible || st.Detached {
				continue
			}
			r := l.Panels[i]
			require.Truef(t, r.W > 0 && r.H > 0, "iter %d: panel %d (%s) got %v at %dx%d", iter, i, st.Slot, r, w, h)
		}
	}
}

func TestTakeExtent(t *testing.T) {
	v := float32(300)
	assert.Equal(t, float32(0), takeExtent(&v, 220, 50))
	assert.Equal(t, float32(250), v)
	assert.Equal(t, float32(20), takeExtent(&v, 220, 50))
	assert.Equal(t, float32(220), v)
	assert.Equal(t, float32(10), takeExtent(&v, 220, 10))
	assert.Equal(t, float32(-1), takeExtent(&v, 0, -1))
}
