package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	logger, err := NewLogger("debug", path)
	require.NoError(t, err)
	logger.Debug("calculated", zap.Int64("orders", 105))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "DEBUG", entry["severity"])
	assert.Equal(t, "calculated", entry["message"])
	assert.EqualValues(t, 105, entry["orders"])
}

func TestNewLogger_LevelFallback(t *testing.T) {
	for _, level := range []string{"", "loud"} {
		logger, err := NewLogger(level, filepath.Join(t.TempDir(), "log.json"))
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "level %q", level)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel), "level %q", level)
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
