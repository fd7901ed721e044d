package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kkkkikiki/lukitas/internal/config"
)

// New builds the process logger. Development environments get the console
// encoder, everything else logs JSON.
func New(app config.AppConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(app.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", app.LogLevel, err)
	}
	if app.Debug {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	if app.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("env", app.Environment)), nil
}
