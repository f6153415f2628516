package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/logger"
)

func TestBuildHonoursLevel(t *testing.T) {
	t.Parallel()

	l, err := logger.Build(config.Observability{LogLevel: "warn", LogEncoding: "json", ServiceName: "fooddelivery"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestBuildFallsBackToInfo(t *testing.T) {
	t.Parallel()

	l, err := logger.Build(config.Observability{LogLevel: "chatty", LogEncoding: "console"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
