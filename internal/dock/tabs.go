package dock

import (
	"fmt"
	"slices"
)

// MainTabName is the name of the tab created by the first registration.
const MainTabName = "Main"

// snapshot is the per-tab part of a workspace.
type snapshot struct {
	states  []State
	ratios  Ratios
	serials [slotCount]uint64
	serial  uint64
}

func (w *Workspace) snapshot() snapshot {
	return snapshot{
		states:  slices.Clone(w.states),
		ratios:  w.ratios,
		serials: w.serials,
		serial:  w.serial,
	}
}

func (w *Workspace) load(s snapshot) {
	w.states = slices.Clone(s.states)
	w.ratios = s.ratios
	w.serials = s.serials
	w.serial = s.serial
	w.resetTransient()
	w.Relayout(int(w.viewW), int(w.viewH))
}

// extend appends default state for panels registered after s was taken.
func (s *snapshot) extend(w *Workspace) {
	for len(s.states) < w.reg.Len() {
		st := initialState(w.reg.Descriptor(Handle(len(s.states))))
		st.DetachedBounds = w.sanitize(st.DetachedBounds)
		st.ResolvedBounds = st.DetachedBounds
		s.states = append(s.states, st)
		s.serial++
		s.serials[st.Slot] = s.serial
	}
}

type tab struct {
	name string
	snap snapshot
}

// Tabs is an ordered list of named layouts over one registry. The live
// state of the active tab is kept in the workspace; other tabs hold
// snapshots. Every mutation first commits the live workspace into the
// active tab.
type Tabs struct {
	ws     *Workspace
	tabs   []tab
	active int
}

// NewTabs wraps ws. The first tab is created lazily on the first
// registration.
func NewTabs(ws *Workspace) *Tabs {
	return &Tabs{ws: ws}
}

// Workspace returns the live workspace of the active tab.
func (t *Tabs) Workspace() *Workspace { return t.ws }

// Len returns the number of tabs.
func (t *Tabs) Len() int { return len(t.tabs) }

// Active returns the index of the active tab.
func (t *Tabs) Active() int { return t.active }

// Name returns the name of tab i, or "" when i is out of range.
func (t *Tabs) Name(i int) string {
	if i < 0 || i >= len(t.tabs) {
		return ""
	}
	return t.tabs[i].name
}

// Names returns every tab name in order.
func (t *Tabs) Names() []string {
	out := make([]string, len(t.tabs))
	for i, tb := range t.tabs {
		out[i] = tb.name
	}
	return out
}

func (t *Tabs) commit() {
	if len(t.tabs) == 0 {
		return
	}
	t.tabs[t.active].snap = t.ws.snapshot()
}

func (t *Tabs) ensureMain() {
	if len(t.tabs) > 0 {
		return
	}
	t.tabs = append(t.tabs, tab{name: MainTabName, snap: t.ws.snapshot()})
	t.active = 0
}

func (t *Tabs) checkIndex(i int) error {
	if i < 0 || i >= len(t.tabs) {
		return fmt.Errorf("%w: tab index %d out of range [0,%d)", ErrInvalidArgument, i, len(t.tabs))
	}
	return nil
}

// Register registers a panel in the live workspace and gives every tab a
// default state for it.
func (t *Tabs) Register(d Descriptor) (Handle, error) {
	t.commit()
	h, err := t.ws.Register(d)
	if err != nil {
		return 0, err
	}
	t.ensureMain()
	t.extendAll()
	return h, nil
}

func (t *Tabs) extendAll() {
	for i := range t.tabs {
		if i == t.active {
			t.tabs[i].snap = t.ws.snapshot()
			continue
		}
		t.tabs[i].snap.extend(t.ws)
	}
}

// Create appends a tab holding a copy of the active tab's layout and
// returns its index.
func (t *Tabs) Create(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty tab name", ErrInvalidArgument)
	}
	t.ensureMain()
	if len(t.tabs) >= t.ws.cfg.MaxTabs {
		return 0, fmt.Errorf("%w: tab list full (%d tabs)", ErrRuntime, t.ws.cfg.MaxTabs)
	}
	t.commit()
	snap := t.ws.snapshot()
	t.tabs = append(t.tabs, tab{name: name, snap: snap})
	t.ws.logger.Debug("tab created", "name", name, "index", len(t.tabs)-1)
	return len(t.tabs) - 1, nil
}

// Remove deletes tab i. The last remaining tab cannot be removed.
func (t *Tabs) Remove(i int) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	if len(t.tabs) == 1 {
		return fmt.Errorf("%w: cannot remove the last tab", ErrRuntime)
	}
	t.commit()
	name := t.tabs[i].name
	t.tabs = slices.Delete(t.tabs, i, i+1)
	switch {
	case i == t.active:
		t.active = min(i, len(t.tabs)-1)
		t.ws.load(t.tabs[t.active].snap)
	case i < t.active:
		t.active--
	}
	t.ws.logger.Debug("tab removed", "name", name, "active", t.active)
	return nil
}

// Rename renames tab i.
func (t *Tabs) Rename(i int, name string) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: empty tab name", ErrInvalidArgument)
	}
	t.commit()
	t.tabs[i].name = name
	return nil
}

// Move moves tab from to position to. The active index follows the tab it
// pointed at.
func (t *Tabs) Move(from, to int) error {
	if err := t.checkIndex(from); err != nil {
		return err
	}
	if err := t.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	t.commit()
	moved := t.tabs[from]
	t.tabs = slices.Delete(t.tabs, from, from+1)
	t.tabs = slices.Insert(t.tabs, to, moved)
	switch {
	case t.active == from:
		t.active = to
	case from < t.active && to >= t.active:
		t.active--
	case from > t.active && to <= t.active:
		t.active++
	}
	return nil
}

// SetActive commits the active tab and loads tab i into the workspace.
// Splitter and drag state is dropped.
func (t *Tabs) SetActive(i int) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	if i == t.active {
		return nil
	}
	t.commit()
	t.active = i
	t.ws.load(t.tabs[i].snap)
	t.ws.logger.Debug("tab activated", "name", t.tabs[i].name, "index", i)
	return nil
}
