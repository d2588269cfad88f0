package dock

import (
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "paneldock/dock"

// Workspace is one complete layout: the per-panel state table for every
// registered panel, the splitter ratios, the slot touch serials and the
// transient splitter and drag interaction state.
type Workspace struct {
	cfg    Config
	reg    *Registry
	states []State
	ratios Ratios

	// serials records, per slot, the last time a panel was placed there.
	serials [slotCount]uint64
	serial  uint64

	viewW, viewH float32
	layout       Layout

	activeSplitter  Splitter
	hoveredSplitter Splitter
	drag            dragState

	logger *slog.Logger
	tracer trace.Tracer
}

// NewWorkspace returns an empty workspace with its own registry.
func NewWorkspace(cfg Config) (*Workspace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new workspace: %w", err)
	}
	return &Workspace{
		cfg:             cfg,
		reg:             NewRegistry(cfg.MaxPanels),
		ratios:          DefaultRatios(),
		viewW:           float32(cfg.InitialWidth),
		viewH:           float32(cfg.InitialHeight),
		activeSplitter:  SplitterNone,
		hoveredSplitter: SplitterNone,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:          otel.Tracer(tracerName),
	}, nil
}

// SetLogger replaces the discard logger.
func (w *Workspace) SetLogger(l *slog.Logger) {
	if l != nil {
		w.logger = l
	}
}

// Config returns the workspace metrics.
func (w *Workspace) Config() Config { return w.cfg }

// Registry returns the shared panel registry.
func (w *Workspace) Registry() *Registry { return w.reg }

// Register adds a panel and gives it its default state.
func (w *Workspace) Register(d Descriptor) (Handle, error) {
	h, err := w.reg.Add(d)
	if err != nil {
		w.logger.Warn("register panel failed", "id", d.ID, "err", err)
		return 0, fmt.Errorf("register: %w", err)
	}
	w.sync()
	w.logger.Debug("registered panel", "id", d.ID, "slot", d.DefaultSlot, "handle", int(h))
	return h, nil
}

// sync extends the state table to cover every registered panel.
func (w *Workspace) sync() {
	for len(w.states) < w.reg.Len() {
		st := initialState(w.reg.Descriptor(Handle(len(w.states))))
		st.DetachedBounds = w.sanitize(st.DetachedBounds)
		st.ResolvedBounds = st.DetachedBounds
		w.states = append(w.states, st)
		w.touch(st.Slot)
	}
}

func (w *Workspace) touch(s Slot) {
	w.serial++
	w.serials[s] = w.serial
}

// Serial returns the touch serial of slot s.
func (w *Workspace) Serial(s Slot) uint64 {
	if !s.Valid() {
		return 0
	}
	return w.serials[s]
}

// Shutdown shuts every panel down in reverse registration order and
// empties the workspace.
func (w *Workspace) Shutdown() {
	w.reg.Shutdown()
	w.states = nil
	w.resetTransient()
}

func (w *Workspace) resetTransient() {
	w.activeSplitter = SplitterNone
	w.hoveredSplitter = SplitterNone
	w.drag = dragState{}
}

func (w *Workspace) handle(id string) (Handle, error) {
	h, ok := w.reg.Lookup(id)
	if !ok || int(h) >= len(w.states) {
		return 0, fmt.Errorf("%w: unknown panel %q", ErrInvalidArgument, id)
	}
	return h, nil
}

func (w *Workspace) index(i int) (Handle, error) {
	if i < 0 || i >= len(w.states) {
		return 0, fmt.Errorf("%w: panel index %d out of range [0,%d)", ErrInvalidArgument, i, len(w.states))
	}
	return Handle(i), nil
}

// Count returns the number of panels.
func (w *Workspace) Count() int { return len(w.states) }

// IDAt returns the id of panel i, or "" when i is out of range.
func (w *Workspace) IDAt(i int) string {
	if _, err := w.index(i); err != nil {
		return ""
	}
	return w.reg.Descriptor(Handle(i)).ID
}

// TitleAt returns the title of panel i, or "" when i is out of range.
func (w *Workspace) TitleAt(i int) string {
	if _, err := w.index(i); err != nil {
		return ""
	}
	return w.reg.Descriptor(Handle(i)).Title
}

func (w *Workspace) stateAt(i int) State {
	if _, err := w.index(i); err != nil {
		return State{Slot: SlotCenter}
	}
	return w.states[i]
}

func (w *Workspace) IsVisibleAt(i int) bool    { return w.stateAt(i).Visible }
func (w *Workspace) IsDetachedAt(i int) bool   { return w.stateAt(i).Detached }
func (w *Workspace) IsDetachableAt(i int) bool { return w.stateAt(i).Detachable }

// SlotAt returns the slot of panel i, or SlotCenter when i is out of range.
func (w *Workspace) SlotAt(i int) Slot { return w.stateAt(i).Slot }

// State returns a copy of the state of panel id.
func (w *Workspace) State(id string) (State, error) {
	h, err := w.handle(id)
	if err != nil {
		return State{}, err
	}
	return w.states[h], nil
}

func (w *Workspace) IsVisible(id string) bool {
	st, err := w.State(id)
	return err == nil && st.Visible
}

func (w *Workspace) IsDetached(id string) bool {
	st, err := w.State(id)
	return err == nil && st.Detached
}

func (w *Workspace) IsDetachable(id string) bool {
	st, err := w.State(id)
	return err == nil && st.Detachable
}

// PanelBounds returns the bounds computed for panel id by the last layout.
func (w *Workspace) PanelBounds(id string) (Rect, error) {
	h, err := w.handle(id)
	if err != nil {
		return Rect{}, err
	}
	return w.states[h].ResolvedBounds, nil
}

// SetVisibleAt shows or hides panel i. Hiding a panel also docks it and
// cancels a drag it is part of.
func (w *Workspace) SetVisibleAt(i int, visible bool) error {
	h, err := w.index(i)
	if err != nil {
		return err
	}
	w.setVisible(h, visible)
	return nil
}

// SetVisible is SetVisibleAt by id.
func (w *Workspace) SetVisible(id string, visible bool) error {
	h, err := w.handle(id)
	if err != nil {
		return err
	}
	w.setVisible(h, visible)
	return nil
}

func (w *Workspace) setVisible(h Handle, visible bool) {
	st := &w.states[h]
	st.Visible = visible
	if !visible {
		st.Detached = false
		w.cancelDragOf(h)
	}
}

// SetDetachedAt floats or docks panel i. Floating a panel that is not
// detachable fails with ErrInvalidArgument.
func (w *Workspace) SetDetachedAt(i int, detached bool) error {
	h, err := w.index(i)
	if err != nil {
		return err
	}
	return w.setDetached(h, detached)
}

// SetDetached is SetDetachedAt by id.
func (w *Workspace) SetDetached(id string, detached bool) error {
	h, err := w.handle(id)
	if err != nil {
		return err
	}
	return w.setDetached(h, detached)
}

func (w *Workspace) setDetached(h Handle, detached bool) error {
	st := &w.states[h]
	if detached && !st.Detachable {
		return fmt.Errorf("%w: panel %q is not detachable", ErrInvalidArgument, w.reg.Descriptor(h).ID)
	}
	st.Detached = detached
	if detached {
		st.DetachedBounds = w.sanitize(st.DetachedBounds)
		st.ResolvedBounds = st.DetachedBounds
	}
	w.cancelDragOf(h)
	w.logger.Debug("set detached", "id", w.reg.Descriptor(h).ID, "detached", detached)
	return nil
}

// SetDetachableAt allows or forbids floating panel i. Forbidding it docks
// the panel if it is floating.
func (w *Workspace) SetDetachableAt(i int, detachable bool) error {
	h, err := w.index(i)
	if err != nil {
		return err
	}
	st := &w.states[h]
	st.Detachable = detachable
	if !detachable {
		st.Detached = false
	}
	return nil
}

// SetSlotAt moves panel i to slot s and marks s as the most recently
// touched slot.
func (w *Workspace) SetSlotAt(i int, s Slot) error {
	h, err := w.index(i)
	if err != nil {
		return err
	}
	return w.setSlot(h, s)
}

// SetSlot is SetSlotAt by id.
func (w *Workspace) SetSlot(id string, s Slot) error {
	h, err := w.handle(id)
	if err != nil {
		return err
	}
	return w.setSlot(h, s)
}

func (w *Workspace) setSlot(h Handle, s Slot) error {
	if !s.Valid() {
		return fmt.Errorf("%w: invalid slot %d", ErrInvalidArgument, int(s))
	}
	w.states[h].Slot = s
	w.touch(s)
	return nil
}

// SetDetachedBounds stores floating bounds for panel id, sanitized for the
// current viewport.
func (w *Workspace) SetDetachedBounds(id string, r Rect) error {
	h, err := w.handle(id)
	if err != nil {
		return err
	}
	st := &w.states[h]
	st.DetachedBounds = w.sanitize(r)
	if st.Detached {
		st.ResolvedBounds = st.DetachedBounds
	}
	return nil
}

// ShowAll makes every panel visible.
func (w *Workspace) ShowAll() {
	for i := range w.states {
		w.states[i].Visible = true
	}
}

// HideAll hides every panel.
func (w *Workspace) HideAll() {
	for i := range w.states {
		w.setVisible(Handle(i), false)
	}
}

// ResetLayout restores every panel's registration defaults and the
// default ratios.
func (w *Workspace) ResetLayout() {
	w.resetTransient()
	w.ratios = DefaultRatios()
	for i := range w.states {
		st := initialState(w.reg.Descriptor(Handle(i)))
		st.DetachedBounds = w.sanitize(st.DetachedBounds)
		st.ResolvedBounds = st.DetachedBounds
		w.states[i] = st
		w.touch(st.Slot)
	}
	w.logger.Debug("layout reset", "panels", len(w.states))
}
