package farfetch

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleLoggerFormatsKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter(&buf)

	logger.Debug("Starting request", "method", "GET", "url", "/people")
	logger.Warn("Request error", "status", 500)

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] Starting request method=GET url=/people")
	assert.Contains(t, out, "[WARN] Request error status=500")
}

func TestSimpleLoggerOddKeyValuesIgnoresTrailer(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter(&buf)

	logger.Info("msg", "lonely")
	assert.Contains(t, buf.String(), "[INFO] msg")
	assert.NotContains(t, buf.String(), "lonely")
}

func TestZerologLoggerEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Info("Request completed", "status", 200, "endpoint", "example.com/")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Request completed", entry["message"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "example.com/", entry["endpoint"])
	assert.Equal(t, "info", entry["level"])
}

func TestZerologLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Debug("d")
	logger.Warn("w")
	logger.Error("e")

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"level":"error"`)
}
