package dock

import "fmt"

// Handle identifies a registered panel. Handles are dense indices in
// registration order and are shared by every tab of a workspace.
type Handle int

// Registry is the ordered set of panel descriptors. It is shared by every
// tab; only per-tab State differs.
type Registry struct {
	descs    []Descriptor
	byID     map[string]Handle
	capacity int
}

// NewRegistry returns an empty registry holding at most capacity panels.
func NewRegistry(capacity int) *Registry {
	return &Registry{
		byID:     make(map[string]Handle),
		capacity: capacity,
	}
}

// Add validates d, runs its Init and appends it.
func (r *Registry) Add(d Descriptor) (Handle, error) {
	if d.ID == "" {
		return 0, fmt.Errorf("%w: empty panel id", ErrInvalidArgument)
	}
	if d.Title == "" {
		return 0, fmt.Errorf("%w: panel %q has an empty title", ErrInvalidArgument, d.ID)
	}
	if d.Panel == nil {
		return 0, fmt.Errorf("%w: panel %q has no implementation", ErrInvalidArgument, d.ID)
	}
	if !d.DefaultSlot.Valid() {
		return 0, fmt.Errorf("%w: panel %q has invalid slot %d", ErrInvalidArgument, d.ID, int(d.DefaultSlot))
	}
	if _, dup := r.byID[d.ID]; dup {
		return 0, fmt.Errorf("%w: duplicate panel id %q", ErrInvalidArgument, d.ID)
	}
	if len(r.descs) >= r.capacity {
		return 0, fmt.Errorf("%w: registry full (%d panels)", ErrRuntime, r.capacity)
	}
	if err := d.Panel.Init(); err != nil {
		return 0, fmt.Errorf("%w: init panel %q: %w", ErrRuntime, d.ID, err)
	}
	h := Handle(len(r.descs))
	r.descs = append(r.descs, d)
	r.byID[d.ID] = h
	return h, nil
}

// Lookup returns the handle registered under id.
func (r *Registry) Lookup(id string) (Handle, bool) {
	h, ok := r.byID[id]
	return h, ok
}

// Len returns the number of registered panels.
func (r *Registry) Len() int { return len(r.descs) }

// Descriptor returns the descriptor of h. It panics if h is out of range.
func (r *Registry) Descriptor(h Handle) Descriptor { return r.descs[h] }

func (r *Registry) valid(h Handle) bool { return h >= 0 && int(h) < len(r.descs) }

// Shutdown calls Shutdown on every panel in reverse registration order and
// empties the registry.
func (r *Registry) Shutdown() {
	for i := len(r.descs) - 1; i >= 0; i-- {
		r.descs[i].Panel.Shutdown()
	}
	r.descs = nil
	r.byID = make(map[string]Handle)
}
