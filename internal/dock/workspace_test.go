package dock

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative margin", func(c *Config) { c.Margin = -1 }},
		{"nan gap", func(c *Config) { c.Gap = float32(math.NaN()) }},
		{"zero title bar", func(c *Config) { c.TitleBarHeight = 0 }},
		{"infinite edge", func(c *Config) { c.DockMinEdgeSize = float32(math.Inf(1)) }},
		{"no panels", func(c *Config) { c.MaxPanels = 0 }},
		{"no tabs", func(c *Config) { c.MaxTabs = -2 }},
		{"bad policy", func(c *Config) { c.ReleasePolicy = 7 }},
		{"empty viewport", func(c *Config) { c.InitialHeight = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := NewWorkspace(cfg)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
	require.NoError(t, DefaultConfig().Validate())
}

func TestParseReleasePolicy(t *testing.T) {
	p, err := ParseReleasePolicy("float")
	require.NoError(t, err)
	assert.Equal(t, ReleaseFloat, p)
	assert.Equal(t, "float", p.String())

	p, err = ParseReleasePolicy("abandon")
	require.NoError(t, err)
	assert.Equal(t, ReleaseAbandon, p)

	_, err = ParseReleasePolicy("sink")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWorkspace_RegisterAppliesDefaults(t *testing.T) {
	ws := newTestWorkspace(t)
	d := desc("log", SlotBottom)
	d.DefaultVisible = false
	d.DefaultDetachable = true
	mustRegister(t, ws, d)

	require.Equal(t, 1, ws.Count())
	assert.Equal(t, "log", ws.IDAt(0))
	assert.Equal(t, "log", ws.TitleAt(0))
	assert.False(t, ws.IsVisibleAt(0))
	assert.False(t, ws.IsDetachedAt(0))
	assert.True(t, ws.IsDetachableAt(0))
	assert.Equal(t, SlotBottom, ws.SlotAt(0))
	st, err := ws.State("log")
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 120, Y: 520, W: 1020, H: 320}, st.DetachedBounds)
	assert.NotZero(t, ws.Serial(SlotBottom))
	assert.Zero(t, ws.Serial(SlotTop))
	assert.Zero(t, ws.Serial(SlotNone))
}

func TestWorkspace_OutOfRangeAccessors(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("a", SlotLeft))

	assert.Equal(t, "", ws.IDAt(1))
	assert.Equal(t, "", ws.TitleAt(-1))
	assert.False(t, ws.IsVisibleAt(5))
	assert.False(t, ws.IsVisible("nope"))
	assert.False(t, ws.IsDetached("nope"))
	assert.False(t, ws.IsDetachable("nope"))

	_, err := ws.State("nope")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ws.PanelBounds("nope")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, ws.SetVisibleAt(3, true), ErrInvalidArgument)
	assert.ErrorIs(t, ws.SetDetachedAt(-1, true), ErrInvalidArgument)
	assert.ErrorIs(t, ws.SetDetachableAt(9, true), ErrInvalidArgument)
	assert.ErrorIs(t, ws.SetSlotAt(1, SlotTop), ErrInvalidArgument)
	assert.ErrorIs(t, ws.SetDetachedBounds("nope", Rect{}), ErrInvalidArgument)
}

func TestWorkspace_SetSlotValidates(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("a", SlotLeft))

	assert.ErrorIs(t, ws.SetSlot("a", Slot(42)), ErrInvalidArgument)
	assert.ErrorIs(t, ws.SetSlot("a", SlotNone), ErrInvalidArgument)
	assert.Equal(t, SlotLeft, ws.SlotAt(0))

	before := ws.Serial(SlotTopRight)
	require.NoError(t, ws.SetSlotAt(0, SlotTopRight))
	assert.Equal(t, SlotTopRight, ws.SlotAt(0))
	assert.Greater(t, ws.Serial(SlotTopRight), before)
}

func TestWorkspace_DetachRequiresDetachable(t *testing.T) {
	ws := newTestWorkspace(t)
	mustRegister(t, ws, desc("a", SlotLeft))

	err := ws.SetDetached("a", true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, ws.IsDetached("a"))

	require.NoError(t, ws.SetDetachableAt(0, true))
	require.NoError(t, ws.SetDetached("a", true))
	assert.True(t, ws.IsDetached("a"))
	st, err := ws.State("a")
	require.NoError(t, err)
	assert.Equal(t, st.DetachedBounds, st.ResolvedBounds)
	assert.Equal(t, Rect{X: 40, Y: 40, W: 500, H: 760}, st.DetachedBounds)

	// Forbidding detach docks the panel.
	require.NoError(t, ws.SetDetachableAt(0, false))
	assert.False(t, ws.IsDetached("a"))
	assert.ErrorIs(t, ws.SetDetachedAt(0, true), ErrInvalidArgument)
}

func TestWorkspace_HidingDocksPanel(t *testing.T) {
	ws := newTestWorkspace(t)
	d := desc("a", SlotLeft)
	d.DefaultDetachable = true
	mustRegister(t, ws, d)
	require.NoError(t, ws.SetDetached("a", true))

	require.NoError(t, ws.SetVisible("a", false))
	assert.False(t, ws.IsVisible("a"))
	assert.False(t, ws.IsDetached("a"))

	require.NoError(t, ws.SetVisibleAt(0, true))
	assert.True(t, ws.IsVisible("a"))
	assert.False(t, ws.IsDetached("a"))
}

func TestWorkspace_ShowHideAll(t *testing.T) {
	ws := threeColumns(t)
	ws.HideAll()
	for i := range ws.Count() {
		assert.False(t, ws.IsVisibleAt(i))
	}
	ws.Relayout(1600, 900)
	assert.True(t, bounds(t, ws, "b").Empty())

	ws.ShowAll()
	for i := range ws.Count() {
		assert.True(t, ws.IsVisibleAt(i))
	}
}

func TestWorkspace_ResetLayout(t *testing.T) {
	ws := threeColumns(t)
	require.NoError(t, ws.SetColumnRatios(0.4, 0.4))
	require.NoError(t, ws.SetSlot("a", SlotTop))
	require.NoError(t, ws.SetVisible("c", false))
	ws.drag = dragState{phase: DragPressed, source: 1}

	ws.ResetLayout()

	assert.Equal(t, DefaultRatios(), ws.Ratios())
	assert.Equal(t, SlotLeft, ws.SlotAt(0))
	assert.True(t, ws.IsVisible("c"))
	assert.Equal(t, DragIdle, ws.Drag().Phase)
	assert.Equal(t, SplitterNone, ws.ActiveSplitter())
	// Registration order decides the touch order again.
	assert.Less(t, ws.Serial(SlotLeft), ws.Serial(SlotCenter))
	assert.Less(t, ws.Serial(SlotCenter), ws.Serial(SlotRight))
}

func TestWorkspace_RegisterFailureIsLogged(t *testing.T) {
	ws := newTestWorkspace(t)
	var buf bytes.Buffer
	ws.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	ws.SetLogger(nil)

	_, err := ws.Register(desc("", SlotLeft))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, buf.String(), "register panel failed")
	assert.Zero(t, ws.Count())
}

func TestWorkspace_ShutdownEmpties(t *testing.T) {
	ws := newTestWorkspace(t)
	var order []string
	for _, id := range []string{"a", "b"} {
		p := &recordingPanel{onShut: func() { order = append(order, id) }}
		d := desc(id, SlotCenter)
		d.Panel = p
		mustRegister(t, ws, d)
	}
	ws.Shutdown()
	assert.Equal(t, []string{"b", "a"}, order)
	assert.Zero(t, ws.Count())
	assert.Zero(t, ws.Registry().Len())
}
