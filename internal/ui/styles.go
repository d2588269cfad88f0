package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"paneldock/internal/dock"
)

// Theme colors used by lipgloss-rendered chrome (help bar, modals).
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorDanger    = "196" // Red - for warnings, errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
)

// Canvas colors.
var (
	colorDesktop     = hex("#151a21")
	colorPanel       = hex("#1d232c")
	colorFloating    = hex("#222a35")
	colorBorder      = hex("#3a4657")
	colorBorderFocus = hex("#5ec8e5")
	colorTitle       = hex("#dfe4ec")
	colorText        = hex("#c5ccd6")
	colorMuted       = hex("#7d8896")
	colorAccent      = hex("#5fd7af")
	colorWarn        = hex("#ffaf5f")
	colorError       = hex("#ff5f5f")
	colorTabActive   = hex("#2f3b4b")
	colorModal       = hex("#262e3a")
)

// Panel text colors, in the engine's color type.
var (
	textColor   = dockColor(colorText)
	mutedColor  = dockColor(colorMuted)
	accentColor = dockColor(colorAccent)
	warnColor   = dockColor(colorWarn)
	errorColor  = dockColor(colorError)
	titleColor  = dockColor(colorTitle)
	tabColor    = dockColor(colorTabActive)
	stripColor  = dockColor(colorPanel)
)

func dockColor(c colorful.Color) dock.Color {
	r, g, b := c.RGB255()
	return dock.RGBA(r, g, b, 255)
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Styles contains shared lipgloss styles for modals and the help bar.
var Styles = struct {
	Title        lipgloss.Style // Bold accent color - for modal titles
	TitleWarning lipgloss.Style // Bold danger color - for warning titles
	Box          lipgloss.Style // Standard box with rounded border
	BoxDanger    lipgloss.Style // Warning box (danger border)
	Label        lipgloss.Style // Modal label/content
	Hint         lipgloss.Style // Help/hint text (muted color)
	HelpKey      lipgloss.Style // Key column of the help bar
	HelpDesc     lipgloss.Style // Description column of the help bar
	HelpBox      lipgloss.Style // Help bar frame
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2),
	Label: lipgloss.NewStyle(),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	HelpKey: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	HelpDesc: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
}
