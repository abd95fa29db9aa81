package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"movie-recommender/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Warn("poster fallback", slog.Int64("movie_id", 597), slog.String("kind", "timeout"))

	assert.NotContains(t, buf.String(), "hidden", "debug message should be filtered")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON")
	assert.Equal(t, "poster fallback", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(597), entry["movie_id"])
	assert.Equal(t, "timeout", entry["kind"])
	assert.NotContains(t, entry, "source")
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "text")

	logger.Debug("lookup done", slog.Int("count", 3))

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="lookup done"`)
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "source=")
}

func TestNewLogger_ReadsLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	logger := NewLogger()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewTextLogger(t *testing.T) {
	logger := NewTextLogger("debug")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "json")

	ctx := requestid.WithRequestID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	WithRequestID(ctx, base).Info("test message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", entry["request_id"])
}

func TestWithRequestID_EmptyRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "json")

	logger := WithRequestID(context.Background(), base)
	logger.Info("test message")

	assert.Same(t, base, logger)
	assert.NotContains(t, buf.String(), "request_id")
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{name: "without logger in context", ctx: context.Background()},
		{name: "with invalid value in context", ctx: context.WithValue(context.Background(), loggerContextKey, "not a logger")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, slog.Default(), FromContext(tt.ctx))
		})
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("test message")

	assert.Same(t, logger, FromContext(ctx))
	assert.Contains(t, buf.String(), "test message")
}
