package dock

// Color is a non-premultiplied RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a Color.
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Style overrides the host's window style between PushStyle and PopStyle.
type Style struct {
	Background Color
	Border     float32
	Padding    Point
}

// Input is the host's pointer state for the current frame.
type Input struct {
	Pointer Point
	// Delta is the pointer motion since the previous frame.
	Delta Point
	// Down reports the primary button held; Pressed and Released report
	// the transitions that happened this frame.
	Down     bool
	Pressed  bool
	Released bool
	Scroll   Point
}

// WindowFlags select host window behaviour.
type WindowFlags uint32

const (
	FlagMovable WindowFlags = 1 << iota
	FlagResizable
	FlagClosable
	FlagMinimizable
	FlagNoScrollbar
	// FlagBackground keeps the window behind every other window.
	FlagBackground
	// FlagNoInput makes the window transparent to the pointer.
	FlagNoInput
	FlagBorder
	FlagTitle
	// FlagNoScrollFocus stops the wheel from focusing the window.
	FlagNoScrollFocus WindowFlags = 1 << 30
)

// Has reports whether every flag in o is set.
func (f WindowFlags) Has(o WindowFlags) bool { return f&o == o }

// Surface is the immediate-mode toolkit the engine draws through.
//
// Window ids are panel ids for panel windows. EndWindow must be called
// once for every BeginWindow that returned true. Drawing calls outside a
// window are ignored by hosts.
type Surface interface {
	Input() Input

	FocusedWindow() string
	SetFocusedWindow(id string)
	ShowWindow(id string, show bool)

	BeginWindow(id, title string, bounds Rect, flags WindowFlags) bool
	EndWindow()
	// WindowBounds returns the current window's bounds, which may differ
	// from the requested ones after the user moved or resized it.
	WindowBounds() Rect
	// WindowClosed reports whether the user closed window id.
	WindowClosed(id string) bool

	FillRect(r Rect, rounding float32, c Color)
	StrokeRect(r Rect, rounding, thickness float32, c Color)
	Line(x0, y0, x1, y1, thickness float32, c Color)
	Text(r Rect, s string, c Color)
	PushClip(r Rect)
	PopClip()

	PushStyle(s Style)
	PopStyle()
}

// routedSurface hides the scroll delta from panels that were not picked to
// receive it.
type routedSurface struct {
	Surface
}

func (s routedSurface) Input() Input {
	in := s.Surface.Input()
	in.Scroll = Point{}
	return in
}
