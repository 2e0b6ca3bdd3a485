package logging

import (
	"os"

	"github.com/ganot/unolims/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger.
// level: debug, info, warn, error (default info).
// format: json or console (default console).
// Output goes to stderr so stdout stays free for rendered views and stdio JSON-RPC.
func New(level, format, service string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	if service != "" {
		logger = logger.With(zap.String("service_name", service))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		logger = logger.With(zap.String("hostname", hostname))
	}
	return logger, nil
}

// FromConfig builds the logger cfg describes: a size-capped file when a path
// is set, stderr otherwise. The returned func closes the file.
func FromConfig(cfg config.LogConfig, service string) (*zap.Logger, func() error, error) {
	if cfg.Path != "" {
		return NewFile(cfg.Level, cfg.Format, service, cfg.Path)
	}
	logger, err := New(cfg.Level, cfg.Format, service)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() error { return nil }, nil
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// OrNop returns logger, or a no-op logger when nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
