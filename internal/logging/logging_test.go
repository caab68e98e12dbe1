package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gotest.tools/v3/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		assert.NilError(t, err)
		assert.Equal(t, got, tt.want)
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestSetupLoggerConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := SetupLogger(Options{Level: "warn", Output: &buf})
	assert.NilError(t, err)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", slog.String("table", "users"))

	out := buf.String()
	assert.Assert(t, !strings.Contains(out, "hidden"))
	assert.Assert(t, strings.Contains(out, "shown"))
	assert.Assert(t, strings.Contains(out, "table=users"))
}

func TestSetupLoggerRejectsBadLevel(t *testing.T) {
	_, _, err := SetupLogger(Options{Level: "verbose"})
	assert.Assert(t, err != nil)
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With(slog.String("tx_id", "abc"))

	assert.Assert(t, h.Enabled(context.Background(), slog.LevelDebug))
	logger.Info("one")
	logger.Error("two")

	assert.Assert(t, strings.Contains(a.String(), "one"))
	assert.Assert(t, strings.Contains(a.String(), "tx_id=abc"))
	assert.Assert(t, !strings.Contains(b.String(), "one"))
	assert.Assert(t, strings.Contains(b.String(), "two"))
}

func TestSpanExporterLogsSpans(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewSpanExporter(logger)))

	_, span := tp.Tracer("test").Start(context.Background(), "jsonserver.list")
	span.End()
	assert.NilError(t, tp.Shutdown(context.Background()))

	assert.Assert(t, strings.Contains(buf.String(), "name=jsonserver.list"))
}
