package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"himti/internal/config"
)

// New returns a JSON logger in production and a colored console logger everywhere else.
func New(env string) (*zap.Logger, error) {
	if env == config.EnvProduction {
		return zap.NewProduction()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if env == config.EnvTesting {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
