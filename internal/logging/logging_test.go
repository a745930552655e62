package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates logger for every level", func(t *testing.T) {
		for _, level := range []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError} {
			logger, err := New(Config{Level: level, Format: FormatText, Output: "stderr"})
			require.NoError(t, err)
			assert.NotNil(t, logger)
		}
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger, err := New(Config{Level: "shouty", Format: FormatText, Output: "stderr"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("json format", func(t *testing.T) {
		logger, err := New(Config{Level: LevelInfo, Format: FormatJSON, Output: "stderr"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("file output creates the log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "portsweep.log")
		logger, err := New(Config{Level: LevelInfo, Format: FormatText, Output: path})
		require.NoError(t, err)

		logger.Info("hello", "key", "value")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, LevelInfo, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddSource)
}

func TestFieldHelpers(t *testing.T) {
	logger := NewDefault()

	assert.NotNil(t, logger.WithScanID("abc-123"))
	assert.NotNil(t, logger.WithTarget("10.0.0.1"))
	assert.NotNil(t, logger.WithFields("component", "scanner"))
}

func TestSetDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	replacement := NewDefault()
	SetDefault(replacement)

	assert.Same(t, replacement, Default())
}
