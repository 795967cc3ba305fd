package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log   *zap.Logger
	sugar *zap.SugaredLogger
)

// Init builds the process-wide logger. Call once from main before anything
// else logs; Init falls back to production defaults on a bad level string.
func Init(env, level string) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		l = zap.NewNop()
	}

	log = l
	sugar = l.Sugar()
}

// L returns the structured logger.
func L() *zap.Logger {
	if log == nil {
		Init("dev", "info")
	}
	return log
}

// S returns the sugared logger.
func S() *zap.SugaredLogger {
	if sugar == nil {
		Init("dev", "info")
	}
	return sugar
}

// Sync flushes buffered log entries. Safe to defer from main.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
