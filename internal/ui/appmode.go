package ui

// AppMode selects which bindings apply and where unbound keys go.
type AppMode int

const (
	// ModeDock routes unbound keys to the focused panel.
	ModeDock AppMode = iota
	// ModeShell is ModeDock with the shell panel focused.
	ModeShell
	// ModeModal sends every key to the top modal.
	ModeModal
)

func (m AppMode) String() string {
	switch m {
	case ModeDock:
		return "Dock"
	case ModeShell:
		return "Shell"
	case ModeModal:
		return "Modal"
	default:
		return "Unknown"
	}
}
