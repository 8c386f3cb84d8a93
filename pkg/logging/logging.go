package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields carries structured context attached to log entries.
type Fields map[string]any

// Logger is the leveled structured logger used across the codec.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

// Config controls logger construction.
type Config struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // console or json
}

type zapLogger struct {
	base *zap.Logger
}

// NewLogger builds a zap-backed Logger from config.
func NewLogger(cfg Config) (Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "", "console":
		zcfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q (must be console or json)", cfg.Format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableStacktrace = true

	base, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &zapLogger{base: base}, nil
}

// NewDefaultLogger returns a console logger at info level.
func NewDefaultLogger() Logger {
	logger, err := NewLogger(Config{Level: "info", Format: "console"})
	if err != nil {
		return &zapLogger{base: zap.NewNop()}
	}
	return logger
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &zapLogger{base: zap.NewNop()}
}

func (l *zapLogger) Debug(msg string, fields ...Fields) { l.base.Debug(msg, zapFields(fields)...) }
func (l *zapLogger) Info(msg string, fields ...Fields)  { l.base.Info(msg, zapFields(fields)...) }
func (l *zapLogger) Warn(msg string, fields ...Fields)  { l.base.Warn(msg, zapFields(fields)...) }
func (l *zapLogger) Error(msg string, fields ...Fields) { l.base.Error(msg, zapFields(fields)...) }

func (l *zapLogger) WithFields(fields Fields) Logger {
	return &zapLogger{base: l.base.With(zapFields([]Fields{fields})...)}
}

func zapFields(fields []Fields) []zap.Field {
	var out []zap.Field
	for _, f := range fields {
		for k, v := range f {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewDefaultLogger()
)

// Default returns the process-wide logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// WithFields returns the default logger scoped with fields.
func WithFields(fields Fields) Logger {
	return Default().WithFields(fields)
}

// Debug logs on the default logger.
func Debug(msg string, fields ...Fields) { Default().Debug(msg, fields...) }

// Info logs on the default logger.
func Info(msg string, fields ...Fields) { Default().Info(msg, fields...) }

// Warn logs on the default logger.
func Warn(msg string, fields ...Fields) { Default().Warn(msg, fields...) }

// Error logs on the default logger.
func Error(msg string, fields ...Fields) { Default().Error(msg, fields...) }
