package dock

// Panel is the capability set a registered panel implements. Init runs once
// at registration, Shutdown once when the registry shuts down and Draw once
// per frame while the panel is visible.
type Panel interface {
	Init() error
	Shutdown()
	Draw(dc DrawContext)
}

// PanelFunc adapts a plain draw function into a Panel with no-op Init and
// Shutdown.
type PanelFunc func(dc DrawContext)

func (f PanelFunc) Init() error         { return nil }
func (f PanelFunc) Shutdown()           {}
func (f PanelFunc) Draw(dc DrawContext) { f(dc) }

// DrawContext is passed to Panel.Draw.
type DrawContext struct {
	// Surface has its scroll delta zeroed unless this panel was picked to
	// receive the wheel this frame.
	Surface   Surface
	Workspace *Workspace
	PanelID   string
	ViewportW int
	ViewportH int
}

// Bounds returns the panel's resolved bounds for this frame.
func (dc DrawContext) Bounds() Rect {
	r, _ := dc.Workspace.PanelBounds(dc.PanelID)
	return r
}

// BeginWindow opens the panel's host window; see Workspace.BeginWindow.
func (dc DrawContext) BeginWindow(extra WindowFlags) (bool, Rect) {
	return dc.Workspace.BeginWindow(dc.Surface, dc.PanelID, extra)
}

// Descriptor describes a panel at registration. It is immutable once
// registered.
type Descriptor struct {
	ID    string
	Title string
	Panel Panel

	DefaultSlot       Slot
	DefaultVisible    bool
	DefaultDetachable bool
	// DefaultDetachedBounds is used when the panel first floats. A zero
	// rectangle picks a per-slot default.
	DefaultDetachedBounds Rect
}

// State is the per-tab mutable state of a panel.
type State struct {
	Visible        bool
	Detached       bool
	Detachable     bool
	Slot           Slot
	DetachedBounds Rect
	ResolvedBounds Rect
}

func defaultDetachedBounds(slot Slot) Rect {
	switch slot {
	case SlotLeft, SlotTopLeft, SlotBottomLeft:
		return Rect{X: 40, Y: 40, W: 500, H: 760}
	case SlotRight, SlotTopRight, SlotBottomRight:
		return Rect{X: 980, Y: 40, W: 420, H: 760}
	case SlotTop:
		return Rect{X: 120, Y: 40, W: 1020, H: 320}
	case SlotBottom:
		return Rect{X: 120, Y: 520, W: 1020, H: 320}
	default:
		return Rect{X: 80, Y: 80, W: 560, H: 420}
	}
}

// initialState is the registration-time state of d.
func initialState(d Descriptor) State {
	st := State{
		Visible:    d.DefaultVisible,
		Detachable: d.DefaultDetachable,
		Slot:       d.DefaultSlot,
	}
	if d.DefaultDetachedBounds.Empty() {
		st.DetachedBounds = defaultDetachedBounds(d.DefaultSlot)
	} else {
		st.DetachedBounds = d.DefaultDetachedBounds
	}
	return st
}
