package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/lorrc/mentor-portal/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_AddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{
		Level:       "info",
		Format:      "json",
		Output:      &buf,
		ServiceName: "mentor-portal",
		Environment: "test",
	})

	ctx := logging.WithRequestID(context.Background(), "req-1")
	ctx = logging.WithUserID(ctx, "user-1")
	logger.InfoContext(ctx, "hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "mentor-portal", entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "warn", Output: &buf})

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestGetRequestID(t *testing.T) {
	assert.Empty(t, logging.GetRequestID(context.Background()))
	assert.Equal(t, "abc", logging.GetRequestID(logging.WithRequestID(context.Background(), "abc")))
}

func TestNewLogger_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Output: &buf})

	logger.Info("signup", "email", "jane@example.com", "password", "Secret12!", "Token", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "jane@example.com", entry["email"])
	assert.Equal(t, "[REDACTED]", entry["password"])
	assert.Equal(t, "[REDACTED]", entry["Token"])
	assert.NotContains(t, buf.String(), "Secret12!")
}

func TestNewLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "verbose", Output: &buf})

	logger.Debug("dropped")
	logger.Info("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
