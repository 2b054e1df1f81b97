package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utn-progav/autos-api/internal/platform/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"Error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := logger.ParseLevel(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, slog.LevelWarn)

	l.Info("dropped")
	assert.Empty(t, buf.String(), "info should be filtered at warn level")

	l.Warn("kept", "auto_id", 7)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, 7, entry["auto_id"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	scoped := logger.New(&buf, slog.LevelDebug).With("trace_id", "abc")
	fallback := logger.New(&bytes.Buffer{}, slog.LevelDebug)

	ctx := logger.WithLogger(context.Background(), scoped)

	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))

	logger.FromContext(ctx).Debug("hello")
	assert.Contains(t, buf.String(), `"trace_id":"abc"`)
}
