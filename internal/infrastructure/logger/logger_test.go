package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("json config", func(t *testing.T) {
		logger, err := New(&Config{
			Level:      "debug",
			Format:     "json",
			Output:     "stdout",
			TimeFormat: defaultTimeFormat,
		})
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("empty config falls back to console on stdout", func(t *testing.T) {
		logger, err := New(&Config{})
		require.NoError(t, err)
		require.NotNil(t, logger)

		logger.Info("smoke")
	})

	t.Run("file output creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sync.log")
		logger, err := New(&Config{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		logger.Info("sync run finished")
		require.NoError(t, logger.Sync())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "sync run finished")
	})

	t.Run("unwritable file path falls back without error", func(t *testing.T) {
		logger, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "sync.log")})
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestSync(t *testing.T) {
	logger, err := New(&Config{
		Level:  "info",
		Format: "json",
		Output: "stderr",
	})
	require.NoError(t, err)

	// Sync on stderr may error on some platforms, it just must not panic
	_ = Sync(logger)
}
