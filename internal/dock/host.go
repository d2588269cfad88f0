package dock

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Frame runs one UI frame: resolve the layout, apply splitter drags, run
// the drag-to-dock gesture, route the wheel, draw every visible panel
// (docked first, then floating) and draw the overlays. ctx only parents
// the frame's trace span.
func (w *Workspace) Frame(ctx context.Context, s Surface, viewportW, viewportH int) {
	if s == nil || viewportW <= 0 || viewportH <= 0 {
		return
	}
	_, span := w.tracer.Start(ctx, "dock.frame", trace.WithAttributes(
		attribute.Int("viewport.width", viewportW),
		attribute.Int("viewport.height", viewportH),
		attribute.Int("panels", len(w.states)),
	))
	defer span.End()

	w.Relayout(viewportW, viewportH)

	in := s.Input()
	if w.UpdateSplitters(in) {
		w.Relayout(viewportW, viewportH)
		span.AddEvent("splitter.moved", trace.WithAttributes(
			attribute.String("splitter", w.activeSplitter.String()),
			attribute.Float64("ratio.left", float64(w.ratios.Left)),
			attribute.Float64("ratio.right", float64(w.ratios.Right)),
			attribute.Float64("ratio.top", float64(w.ratios.Top)),
			attribute.Float64("ratio.bottom", float64(w.ratios.Bottom)),
		))
	}

	w.BeginDrag(in)
	if w.UpdateDrag(in) {
		w.Relayout(viewportW, viewportH)
		span.AddEvent("panel.dropped")
	}

	routed := w.RouteScroll(in, s.FocusedWindow())

	// Panels may change visibility while drawing; this frame draws the set
	// that was visible when drawing started.
	n := len(w.states)
	visible := make([]bool, n)
	detached := make([]bool, n)
	for i, st := range w.states {
		visible[i] = st.Visible
		detached[i] = st.Detached
	}
	draw := func(i int) {
		var surf Surface = routedSurface{s}
		if i == routed {
			surf = s
		}
		d := w.reg.Descriptor(Handle(i))
		d.Panel.Draw(DrawContext{
			Surface:   surf,
			Workspace: w,
			PanelID:   d.ID,
			ViewportW: viewportW,
			ViewportH: viewportH,
		})
	}
	for i := range n {
		if visible[i] && !detached[i] {
			draw(i)
		}
	}
	for i := range n {
		if visible[i] && detached[i] {
			draw(i)
		}
	}

	w.DrawOverlays(s)
}
