package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanExporter writes finished spans to a structured logger at debug level
type SpanExporter struct {
	logger *slog.Logger
}

// NewSpanExporter creates an exporter on the given logger
func NewSpanExporter(logger *slog.Logger) *SpanExporter {
	return &SpanExporter{logger: logger}
}

// ExportSpans implements sdktrace.SpanExporter
func (e *SpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := []any{
			slog.String("name", s.Name()),
			slog.String("trace_id", s.SpanContext().TraceID().String()),
			slog.String("span_id", s.SpanContext().SpanID().String()),
			slog.Duration("duration", s.EndTime().Sub(s.StartTime())),
			slog.String("status", s.Status().Code.String()),
		}
		for _, kv := range s.Attributes() {
			attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
		}
		e.logger.DebugContext(ctx, "span", attrs...)
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter
func (e *SpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// SetupTracing installs a global tracer provider whose spans are logged.
// The returned function flushes pending spans.
func SetupTracing(logger *slog.Logger) (*sdktrace.TracerProvider, func(context.Context) error) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(NewSpanExporter(logger)))
	otel.SetTracerProvider(tp)
	return tp, tp.Shutdown
}
