package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(context.Background()))
	assert.NoError(t, lp.ForceFlush(context.Background()))
}

func TestBridgeLogger_DisabledExportKeepsBase(t *testing.T) {
	base := zap.NewNop()
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, base)
	require.NoError(t, err)

	assert.Same(t, base, BridgeLogger(base, "info", lp, "lms-sync"))
	assert.Same(t, base, BridgeLogger(base, "info", nil, "lms-sync"))
}

func TestMinLevelCore_FiltersBelowThreshold(t *testing.T) {
	inner, recorded := observer.New(zapcore.DebugLevel)
	logger := zap.New(&minLevelCore{Core: inner, minLevel: zapcore.WarnLevel})

	logger.Info("sync progress")
	logger.Warn("sync stalled")
	logger.With(zap.String("platform_code", "UDEMY")).Error("sync failed")

	logs := recorded.All()
	require.Len(t, logs, 2)
	assert.Equal(t, "sync stalled", logs[0].Message)
	assert.Equal(t, "sync failed", logs[1].Message)
}

func TestParseExportLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseExportLevel(tt.input))
	}
}
