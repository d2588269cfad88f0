package trace

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestSetup_DisabledWithoutEndpointOrRecorder(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	p, err := Setup(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if p != nil {
		t.Error("expected nil provider when disabled")
	}
	if p.Exporting() {
		t.Error("nil provider must not report exporting")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("nil Shutdown: %v", err)
	}
}

func TestSetup_RecorderReceivesGlobalSpans(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	rec := NewRecorder(4)
	p, err := Setup(context.Background(), Options{ServiceName: "test", Recorder: rec})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer p.Shutdown(context.Background())
	if p.Exporting() {
		t.Error("expected no export without endpoint")
	}

	_, span := otel.Tracer("paneldock/dock").Start(context.Background(), "dock.frame")
	span.End()

	if got := rec.Stats("dock.frame").Count; got != 1 {
		t.Errorf("expected 1 recorded frame, got %d", got)
	}
}
