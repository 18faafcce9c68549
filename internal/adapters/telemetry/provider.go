package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/forge/internal/core/ports"
)

// Provider owns the process-global tracer provider.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Setup installs a tracer provider reporting through the engine logger and
// registers it globally, so otel.Tracer handles pick it up everywhere.
func Setup(logger ports.Logger) *Provider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
	otel.SetTracerProvider(tp)
	return &Provider{tp: tp}
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
