// Package telemetry wires OpenTelemetry tracing into the engine.
package telemetry

import (
	"context"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/forge/internal/core/ports"
)

// slowSpanThreshold is the duration past which a completed span is reported.
const slowSpanThreshold = time.Second

// Bridge implements sdktrace.SpanProcessor, reporting slow spans through the
// engine logger. It keeps no per-span state and never blocks span end.
type Bridge struct {
	logger ports.Logger
}

// NewBridge creates a bridge reporting through the given logger.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart is a no-op; only completed spans are reported.
func (b *Bridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd reports spans exceeding the slow threshold.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	elapsed := s.EndTime().Sub(s.StartTime())
	if elapsed < slowSpanThreshold {
		return
	}
	b.logger.Warn(fmt.Sprintf("slow operation %s took %s", s.Name(), elapsed.Round(time.Millisecond)))
}

// Shutdown satisfies sdktrace.SpanProcessor.
func (b *Bridge) Shutdown(context.Context) error { return nil }

// ForceFlush satisfies sdktrace.SpanProcessor.
func (b *Bridge) ForceFlush(context.Context) error { return nil }
