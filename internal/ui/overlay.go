package ui

import tea "github.com/charmbracelet/bubbletea"

// ModalStack holds the open modals; the top one receives every key.
type ModalStack struct {
	Stack []View
}

// Push opens m on top.
func (s *ModalStack) Push(m View) { s.Stack = append(s.Stack, m) }

// Pop closes the top modal.
func (s *ModalStack) Pop() (View, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top modal without removing it.
func (s *ModalStack) Peek() (View, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of open modals.
func (s *ModalStack) Len() int { return len(s.Stack) }

// UpdateTop passes msg to the top modal and keeps the view it returns.
func (s *ModalStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	v, cmd := (*top).Update(msg)
	*top = v
	return cmd, true
}
