package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestContextHandler_AddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-1")
	ctx = WithOwnerID(ctx, "owner-1")

	l.InfoContext(ctx, "hello")

	record := decode(t, &buf)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", record["trace_id"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "owner-1", record["owner_id"])
}

func TestContextHandler_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil))).With("component", "test")

	l.InfoContext(context.Background(), "hello")

	record := decode(t, &buf)
	assert.Equal(t, "test", record["component"])
	assert.NotContains(t, record, "trace_id")
	assert.NotContains(t, record, "request_id")
	assert.NotContains(t, record, "owner_id")
}
