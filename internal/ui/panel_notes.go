package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"paneldock/internal/dock"
	"paneldock/internal/ui/textutil"
)

// NotesPanel is a scratch pad: typed text is word-wrapped to the panel
// width, and the view follows the end of the text unless scrolled.
type NotesPanel struct {
	grid   Grid
	text   []rune
	offset int // lines scrolled up from the end
}

var (
	_ dock.Panel  = (*NotesPanel)(nil)
	_ KeyReceiver = (*NotesPanel)(nil)
)

// NewNotesPanel creates a pad holding text.
func NewNotesPanel(grid Grid, text string) *NotesPanel {
	return &NotesPanel{grid: grid, text: []rune(text)}
}

// Text returns the pad contents.
func (p *NotesPanel) Text() string { return string(p.text) }

// Init implements dock.Panel.
func (p *NotesPanel) Init() error { return nil }

// Shutdown implements dock.Panel.
func (p *NotesPanel) Shutdown() {}

// Draw implements dock.Panel.
func (p *NotesPanel) Draw(dc dock.DrawContext) {
	drawPanel(dc, p.grid, func(s dock.Surface, rows []dock.Rect) {
		h, w := rowsCols(p.grid, rows)
		if h == 0 || w == 0 {
			return
		}
		var lines []string
		for _, para := range strings.Split(string(p.text), "\n") {
			if para == "" {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, textutil.Wrap(para, w)...)
		}
		p.offset = max(min(p.offset+wheelLines(s), len(lines)-h), 0)
		start := max(len(lines)-h-p.offset, 0)
		end := min(start+h, len(lines))
		drawRows(s, rows, lines[start:end], textColor)
	})
}

// HandleKey implements KeyReceiver.
func (p *NotesPanel) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyRunes:
		p.text = append(p.text, msg.Runes...)
	case tea.KeySpace:
		p.text = append(p.text, ' ')
	case tea.KeyEnter:
		p.text = append(p.text, '\n')
	case tea.KeyBackspace:
		if n := len(p.text); n > 0 {
			p.text = p.text[:n-1]
		}
	default:
		return nil
	}
	p.offset = 0
	return nil
}
