package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rate.log")

	log := New(path, false)
	log.Info("rating submitted", zap.Int64("sample_id", 7))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "rating submitted", entry["message"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(7), entry["sample_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer

	quiet := zap.New(newCore(zapcore.AddSync(&buf), false))
	quiet.Debug("hidden")
	assert.Empty(t, buf.String())

	verbose := zap.New(newCore(zapcore.AddSync(&buf), true))
	verbose.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
