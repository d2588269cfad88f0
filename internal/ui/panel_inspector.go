package ui

import (
	"fmt"
	"time"

	"paneldock/internal/dock"
	"paneldock/internal/trace"
	"paneldock/internal/ui/textutil"
)

// InspectorPanel shows the live layout state of the workspace it is drawn
// in, plus frame timings when a trace recorder is attached.
type InspectorPanel struct {
	grid     Grid
	recorder *trace.Recorder
	offset   int
}

var _ dock.Panel = (*InspectorPanel)(nil)

// NewInspectorPanel creates an inspector. recorder may be nil.
func NewInspectorPanel(grid Grid, recorder *trace.Recorder) *InspectorPanel {
	return &InspectorPanel{grid: grid, recorder: recorder}
}

// Init implements dock.Panel.
func (p *InspectorPanel) Init() error { return nil }

// Shutdown implements dock.Panel.
func (p *InspectorPanel) Shutdown() {}

type inspectorLine struct {
	text string
	col  dock.Color
}

// Draw implements dock.Panel.
func (p *InspectorPanel) Draw(dc dock.DrawContext) {
	drawPanel(dc, p.grid, func(s dock.Surface, rows []dock.Rect) {
		lines := p.lines(dc.Workspace, s.FocusedWindow())
		p.offset = max(min(p.offset-wheelLines(s), len(lines)-len(rows)), 0)
		for i, row := range rows {
			if j := i + p.offset; j < len(lines) {
				s.Text(row, lines[j].text, lines[j].col)
			}
		}
	})
}

func (p *InspectorPanel) lines(ws *dock.Workspace, focused string) []inspectorLine {
	var out []inspectorLine
	head := func(s string) { out = append(out, inspectorLine{s, accentColor}) }
	line := func(format string, args ...any) {
		out = append(out, inspectorLine{fmt.Sprintf(format, args...), textColor})
	}

	r := ws.Ratios()
	vw, vh := ws.Viewport()
	head("Layout")
	line("viewport   %.0fx%.0f", vw, vh)
	line("dock       %s", ws.DockBounds())
	line("columns    %.2f | %.2f", r.Left, r.Right)
	line("rows       %.2f | %.2f", r.Top, r.Bottom)
	line("splitter   %s (hover %s)", ws.ActiveSplitter(), ws.HoveredSplitter())
	d := ws.Drag()
	if d.Phase == dock.DragIdle {
		line("drag       idle")
	} else {
		line("drag       %s %s -> %s", d.Phase, d.PanelID, d.Target)
	}
	if focused == "" {
		focused = "-"
	}
	line("focus      %s", focused)

	head("Panels")
	for i := range ws.Count() {
		state := "hidden"
		col := mutedColor
		switch {
		case ws.IsVisibleAt(i) && ws.IsDetachedAt(i):
			state, col = "floating", warnColor
		case ws.IsVisibleAt(i):
			state, col = "docked", textColor
		}
		out = append(out, inspectorLine{
			fmt.Sprintf("%s %-11s %s", textutil.PadRightVisual(ws.IDAt(i), 10), ws.SlotAt(i), state),
			col,
		})
	}

	if p.recorder == nil {
		return out
	}
	head("Frames")
	st := p.recorder.Stats("dock.frame")
	line("count      %d", st.Count)
	line("last       %s", st.Last.Round(time.Microsecond))
	line("mean       %s", st.Mean().Round(time.Microsecond))
	line("max        %s", st.Max.Round(time.Microsecond))
	line("splits     %d", p.recorder.CountEvents("splitter.moved"))
	line("drops      %d", p.recorder.CountEvents("panel.dropped"))
	return out
}
