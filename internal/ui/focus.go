package ui

import "slices"

// FocusManager tracks and rotates keyboard focus across the visible
// panels.
type FocusManager struct {
	Current  string   // ID of the focused panel, "" for none
	Order    []string // rotation order
	OnChange func(from, to string)
}

// Sync replaces the rotation order. Focus on a panel that left the order
// is dropped.
func (f *FocusManager) Sync(order []string) {
	f.Order = append(f.Order[:0], order...)
	if f.Current != "" && !slices.Contains(f.Order, f.Current) {
		f.set("")
	}
}

// Next focuses the next panel in order and returns its ID.
func (f *FocusManager) Next() string { return f.step(1) }

// Prev focuses the previous panel in order and returns its ID.
func (f *FocusManager) Prev() string { return f.step(-1) }

func (f *FocusManager) step(d int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	i := slices.Index(f.Order, f.Current)
	switch {
	case i < 0 && d > 0:
		i = 0
	case i < 0:
		i = n - 1
	default:
		i = ((i+d)%n + n) % n
	}
	f.set(f.Order[i])
	return f.Current
}

// SetFocus focuses id and reports whether it is in the order. An empty id
// clears focus.
func (f *FocusManager) SetFocus(id string) bool {
	if id != "" && !slices.Contains(f.Order, id) {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
