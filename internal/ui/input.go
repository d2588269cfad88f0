package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"paneldock/internal/dock"
)

// Pointer turns terminal mouse events into per-frame dock input. Every
// event is one frame; the pointer sits at the centre of its cell.
type Pointer struct {
	grid Grid
	pos  dock.Point
	down bool
}

// NewPointer returns a tracker for grid.
func NewPointer(grid Grid) *Pointer {
	return &Pointer{grid: grid}
}

func (p *Pointer) frame(col, row int) dock.Input {
	pos := p.grid.Center(col, row)
	in := dock.Input{Pointer: pos, Delta: pos.Sub(p.pos), Down: p.down}
	p.pos = pos
	return in
}

// Idle returns input for a frame with no mouse event.
func (p *Pointer) Idle() dock.Input {
	return dock.Input{Pointer: p.pos, Down: p.down}
}

// Move reports motion to a cell.
func (p *Pointer) Move(col, row int) dock.Input { return p.frame(col, row) }

// Press reports the primary button going down on a cell.
func (p *Pointer) Press(col, row int) dock.Input {
	in := p.frame(col, row)
	in.Pressed = !p.down
	in.Down = true
	p.down = true
	return in
}

// Release reports the primary button going up on a cell.
func (p *Pointer) Release(col, row int) dock.Input {
	in := p.frame(col, row)
	in.Released = p.down
	in.Down = false
	p.down = false
	return in
}

// Wheel reports a wheel notch over a cell; dy is positive away from the
// user.
func (p *Pointer) Wheel(col, row int, dy float32) dock.Input {
	in := p.frame(col, row)
	in.Scroll.Y = dy
	return in
}

// Mouse converts a Bubble Tea mouse message.
func (p *Pointer) Mouse(msg tea.MouseMsg) dock.Input {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return p.Press(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			return p.Wheel(msg.X, msg.Y, 1)
		case tea.MouseButtonWheelDown:
			return p.Wheel(msg.X, msg.Y, -1)
		}
	case tea.MouseActionRelease:
		if p.down {
			return p.Release(msg.X, msg.Y)
		}
	}
	return p.Move(msg.X, msg.Y)
}
