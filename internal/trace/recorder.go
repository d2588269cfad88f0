package trace

import (
	"context"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Span is a finished span as kept by the Recorder.
type Span struct {
	Name       string            `json:"name"`
	StartTime  time.Time         `json:"start_time"`
	Duration   time.Duration     `json:"duration"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Events     []string          `json:"events,omitempty"`
}

// Stats aggregates every finished span of one name.
type Stats struct {
	Count int           `json:"count"`
	Last  time.Duration `json:"last"`
	Max   time.Duration `json:"max"`
	Total time.Duration `json:"total"`
}

// Mean returns the average span duration.
func (s Stats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Recorder is a span processor that keeps the most recent finished spans in
// memory and per-name duration stats. It backs the inspector panel and the
// debug HTTP endpoint.
type Recorder struct {
	mu       sync.RWMutex
	recent   []Span // Ring buffer, next write at head
	head     int
	full     bool
	stats    map[string]Stats
	onChange func() // Callback when a span is recorded
}

var _ sdktrace.SpanProcessor = (*Recorder)(nil)

// NewRecorder creates a recorder keeping up to maxSpans spans.
func NewRecorder(maxSpans int) *Recorder {
	if maxSpans <= 0 {
		maxSpans = 64
	}
	return &Recorder{
		recent: make([]Span, maxSpans),
		stats:  make(map[string]Stats),
	}
}

// SetOnChange sets a callback invoked after each recorded span. It runs on
// the goroutine that ended the span.
func (r *Recorder) SetOnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// OnStart implements sdktrace.SpanProcessor.
func (r *Recorder) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd implements sdktrace.SpanProcessor.
func (r *Recorder) OnEnd(s sdktrace.ReadOnlySpan) {
	span := Span{
		Name:      s.Name(),
		StartTime: s.StartTime(),
		Duration:  s.EndTime().Sub(s.StartTime()),
	}
	if attrs := s.Attributes(); len(attrs) > 0 {
		span.Attributes = make(map[string]string, len(attrs))
		for _, kv := range attrs {
			span.Attributes[string(kv.Key)] = kv.Value.Emit()
		}
	}
	for _, ev := range s.Events() {
		span.Events = append(span.Events, ev.Name)
	}

	r.mu.Lock()
	r.recent[r.head] = span
	r.head = (r.head + 1) % len(r.recent)
	if r.head == 0 {
		r.full = true
	}
	st := r.stats[span.Name]
	st.Count++
	st.Last = span.Duration
	st.Total += span.Duration
	st.Max = max(st.Max, span.Duration)
	r.stats[span.Name] = st
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// Shutdown implements sdktrace.SpanProcessor.
func (r *Recorder) Shutdown(context.Context) error { return nil }

// ForceFlush implements sdktrace.SpanProcessor.
func (r *Recorder) ForceFlush(context.Context) error { return nil }

// Recent returns the kept spans, oldest first.
func (r *Recorder) Recent() []Span {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.full {
		return append([]Span(nil), r.recent[:r.head]...)
	}
	out := make([]Span, 0, len(r.recent))
	out = append(out, r.recent[r.head:]...)
	return append(out, r.recent[:r.head]...)
}

// Stats returns the aggregate for spans named name.
func (r *Recorder) Stats(name string) Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats[name]
}

// AllStats returns a copy of every aggregate keyed by span name.
func (r *Recorder) AllStats() map[string]Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Stats, len(r.stats))
	for k, v := range r.stats {
		out[k] = v
	}
	return out
}

// CountEvents returns how many kept spans carry an event named name.
func (r *Recorder) CountEvents(name string) int {
	n := 0
	for _, s := range r.Recent() {
		for _, ev := range s.Events {
			if ev == name {
				n++
			}
		}
	}
	return n
}
