package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	globalZap    *zap.Logger
)

// ParseLevel maps a config level string to a zap level. Unknown strings yield InfoLevel and false.
func ParseLevel(levelStr string) (zapcore.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return zapcore.DebugLevel, true
	case "INFO", "":
		return zapcore.InfoLevel, true
	case "WARN", "WARNING":
		return zapcore.WarnLevel, true
	case "ERROR":
		return zapcore.ErrorLevel, true
	}
	return zapcore.InfoLevel, false
}

// NewZap builds a JSON production zap logger at the given level.
func NewZap(levelStr string) (*zap.Logger, error) {
	level, ok := ParseLevel(levelStr)

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "json"
	cfg.DisableStacktrace = level > zapcore.DebugLevel

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	if !ok {
		z.Warn("Invalid log level string, defaulting to INFO", zap.String("input", levelStr))
	}
	return z, nil
}

// Install routes the package helpers and the default slog logger through z.
func Install(z *zap.Logger) {
	l := slog.New(zapslog.NewHandler(z.Core()))

	mu.Lock()
	globalZap = z
	globalLogger = l
	mu.Unlock()

	slog.SetDefault(l)
}

// InitZap builds a zap logger for levelStr and installs it.
func InitZap(levelStr string) (*zap.Logger, error) {
	z, err := NewZap(levelStr)
	if err != nil {
		return nil, err
	}
	Install(z)
	return z, nil
}

// Zap returns the installed zap logger, or a no-op logger before Install.
func Zap() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if globalZap == nil {
		return zap.NewNop()
	}
	return globalZap
}

func current() *slog.Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l == nil {
		return slog.Default()
	}
	return l
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	l := current()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	current().Error(msg, args...)
	_ = Zap().Sync()
	os.Exit(1)
}
