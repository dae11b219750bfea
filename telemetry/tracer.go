// Package telemetry provides OpenTelemetry tracing and metrics for graph
// operations. Spans are exported to a structured logger and metrics are
// recorded through the otel metric API. Both are best-effort: a failing
// export never blocks or fails the operation being observed.
package telemetry

import (
	"context"
	"encoding/hex"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// NewTracerProvider creates a TracerProvider configured with a SlogSpanExporter.
//
// The provider uses a SimpleSpanProcessor for immediate export without
// batching, so spans appear in the log as soon as they complete.
func NewTracerProvider(serviceName string, logger *slog.Logger) *sdktrace.TracerProvider {
	if logger == nil {
		logger = slog.Default()
	}
	if serviceName == "" {
		serviceName = "graphmind-sdk"
	}

	exporter := NewSlogSpanExporter(logger)
	processor := sdktrace.NewSimpleSpanProcessor(exporter)

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
		),
	)
	if err != nil {
		logger.Warn("failed to create resource, using default", "error", err)
		res = resource.Default()
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(res),
	)
}

// NewTracer creates a tracer from the TracerProvider with the standard name.
func NewTracer(tp *sdktrace.TracerProvider) trace.Tracer {
	return tp.Tracer("graphmind-sdk")
}

// CreateParentContext creates a context with a parent SpanContext from
// hex-encoded traceID and parentSpanID strings.
//
// Workers use this to link their execution spans to the dispatcher's span
// carried on the work item, producing one distributed trace per job.
//
// Returns a context with the parent span context injected, or the original
// context if the IDs cannot be decoded.
func CreateParentContext(ctx context.Context, traceID, parentSpanID string) context.Context {
	if traceID == "" || parentSpanID == "" {
		return ctx
	}

	traceIDBytes, err := hex.DecodeString(traceID)
	if err != nil || len(traceIDBytes) != 16 {
		return ctx
	}

	spanIDBytes, err := hex.DecodeString(parentSpanID)
	if err != nil || len(spanIDBytes) != 8 {
		return ctx
	}

	var tid trace.TraceID
	copy(tid[:], traceIDBytes)

	var sid trace.SpanID
	copy(sid[:], spanIDBytes)

	parentSpanContext := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     sid,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})

	return trace.ContextWithSpanContext(ctx, parentSpanContext)
}
