package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/kkkkikiki/lukitas/internal/config"
)

func TestNewLevels(t *testing.T) {
	logger, err := New(config.AppConfig{Environment: "production", LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = New(config.AppConfig{Environment: "development", LogLevel: "warn", Debug: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.AppConfig{LogLevel: "chatty"})
	require.Error(t, err)
}
