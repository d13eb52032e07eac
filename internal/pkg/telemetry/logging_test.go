package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_AddsTraceIDs(t *testing.T) {
	setupTracerProvider(t)

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	ctx, span := StartSpan(context.Background(), "record-order")
	defer span.End()

	logger.InfoContext(ctx, "order recorded", "order_id", "o-1")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "order recorded", entry["msg"])
	assert.Equal(t, "o-1", entry["order_id"])
	assert.Equal(t, TraceID(ctx), entry["trace_id"])
	assert.Equal(t, SpanID(ctx), entry["span_id"])
}

func TestNewLogger_WithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.InfoContext(context.Background(), "startup")

	entry := decodeEntry(t, &buf)
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "span_id")
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogger_TraceIDsStayAtRootInsideGroups(t *testing.T) {
	setupTracerProvider(t)

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).
		With("component", "http").
		WithGroup("request")

	ctx, span := StartSpan(context.Background(), "GET /api/v1/orders")
	defer span.End()

	logger.InfoContext(ctx, "served", "status", 200)

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "http", entry["component"])
	assert.NotEmpty(t, entry["trace_id"])

	group, ok := entry["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(200), group["status"])
	assert.NotContains(t, group, "trace_id")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
