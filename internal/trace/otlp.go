package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// Options configures Setup.
type Options struct {
	// ServiceName defaults to OTEL_SERVICE_NAME, then "paneldock".
	ServiceName string
	// Endpoint defaults to OTEL_EXPORTER_OTLP_ENDPOINT. Empty disables export.
	Endpoint string
	// Recorder, when set, receives every finished span.
	Recorder *Recorder
}

// Provider is the tracer provider installed by Setup.
type Provider struct {
	provider  *sdktrace.TracerProvider
	exporting bool
}

// Setup installs a global tracer provider that exports to OTLP/HTTP when an
// endpoint is configured and feeds opts.Recorder when one is given.
// Returns nil when neither is configured (tracing stays a no-op).
func Setup(ctx context.Context, opts Options) (*Provider, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if endpoint == "" && opts.Recorder == nil {
		return nil, nil // Disabled
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}
	if serviceName == "" {
		serviceName = "paneldock"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	popts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if endpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(), // For local dev; make configurable
		)
		if err != nil {
			return nil, err
		}
		popts = append(popts, sdktrace.WithBatcher(exporter))
	}
	if opts.Recorder != nil {
		popts = append(popts, sdktrace.WithSpanProcessor(opts.Recorder))
	}

	provider := sdktrace.NewTracerProvider(popts...)
	otel.SetTracerProvider(provider)
	return &Provider{provider: provider, exporting: endpoint != ""}, nil
}

// Exporting reports whether spans leave the process.
func (p *Provider) Exporting() bool {
	return p != nil && p.exporting
}

// Shutdown flushes and closes the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
