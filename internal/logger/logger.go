// Package logger provides the application's file logger.
//
// The TUI owns the terminal, so nothing is ever written to stdout or
// stderr: until Init is called the global loggers discard everything.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// L is the global sugared logger.
	L = zap.NewNop().Sugar()
	// Z is the global structured logger.
	Z = zap.NewNop()

	rotator *lumberjack.Logger
)

// Config configures the file logger.
type Config struct {
	Level      string // debug, info, warn, error
	File       string // log file path, empty disables logging
	MaxSize    int    // MB per file before rotation
	MaxBackups int
	MaxAge     int // days
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level: %q", level)
	}
}

// Init replaces the global loggers with a rotating file logger.
func Init(cfg Config) error {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	if cfg.File == "" {
		Z = zap.NewNop()
		L = Z.Sugar()
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	rotator = &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    positiveOr(cfg.MaxSize, 10),
		MaxBackups: positiveOr(cfg.MaxBackups, 3),
		MaxAge:     positiveOr(cfg.MaxAge, 7),
		Compress:   true,
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(rotator),
		lvl,
	)

	Z = zap.New(core, zap.AddCaller())
	L = Z.Sugar()
	return nil
}

// Named returns a child logger tagged with a component name.
func Named(name string) *zap.Logger {
	return Z.Named(name)
}

// Sync flushes buffered entries and closes the log file.
func Sync() {
	_ = Z.Sync()
	if rotator != nil {
		_ = rotator.Close()
	}
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
