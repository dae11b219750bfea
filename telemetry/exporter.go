package telemetry

import (
	"context"
	"encoding/hex"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SlogSpanExporter implements the OpenTelemetry SpanExporter interface and
// writes completed spans to a structured logger. This gives every graph
// operation a trace record without requiring an external collector.
//
// Export is best-effort: errors are logged but never returned, so a broken
// log sink cannot break the trace pipeline.
type SlogSpanExporter struct {
	logger *slog.Logger
}

// NewSlogSpanExporter creates an exporter that writes spans to the given logger.
// A nil logger falls back to slog.Default().
func NewSlogSpanExporter(logger *slog.Logger) *SlogSpanExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSpanExporter{logger: logger}
}

// ExportSpans writes a batch of completed spans to the logger.
// It is called automatically by the OpenTelemetry SDK and always returns nil.
func (e *SlogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		sc := span.SpanContext()
		traceID := sc.TraceID()
		spanID := sc.SpanID()

		attrs := []any{
			"trace_id", hex.EncodeToString(traceID[:]),
			"span_id", hex.EncodeToString(spanID[:]),
			"duration_ms", span.EndTime().Sub(span.StartTime()).Milliseconds(),
		}

		if span.Parent().IsValid() {
			parentID := span.Parent().SpanID()
			attrs = append(attrs, "parent_span_id", hex.EncodeToString(parentID[:]))
		}

		for _, attr := range span.Attributes() {
			attrs = append(attrs, string(attr.Key), attr.Value.AsString())
		}

		status := span.Status()
		if status.Code == codes.Error {
			attrs = append(attrs, "error", status.Description)
			e.logger.Error("span "+span.Name(), attrs...)
			continue
		}

		e.logger.Info("span "+span.Name(), attrs...)
	}

	return nil
}

// Shutdown performs cleanup when the exporter is being shut down.
// This implementation is a no-op as the logger manages its own lifecycle.
func (e *SlogSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}
