package log

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

func init() {
	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(config()),
		zapcore.Lock(os.Stdout),
		level,
	))

	zap.ReplaceGlobals(logger)
}

func config() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return encoderCfg
}

// Debug logs a debug message with structured key/value pairs.
func Debug(msg string, kv ...interface{}) {
	zap.S().Debugw(Clean(msg), kv...)
}

// Info logs an info message with structured key/value pairs.
func Info(msg string, kv ...interface{}) {
	zap.S().Infow(Clean(msg), kv...)
}

// Warn logs a warning message with structured key/value pairs.
func Warn(msg string, kv ...interface{}) {
	zap.S().Warnw(Clean(msg), kv...)
}

// Error logs an error message with structured key/value pairs.
func Error(msg string, kv ...interface{}) {
	zap.S().Errorw(Clean(msg), kv...)
}

// Panic logs a message and then panics.
func Panic(msg string, kv ...interface{}) {
	zap.S().Panicw(Clean(msg), kv...)
}

// Fatal logs a message and then calls os.Exit(1).
func Fatal(msg string, kv ...interface{}) {
	zap.S().Fatalw(Clean(msg), kv...)
}

// SetLevel sets the log level by name, which can be any of
// ["debug", "info", "warn", "error", "panic", "fatal"],
// case-insensitive.
func SetLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return fmt.Errorf("invalid log level string: %v", name)
	}

	level.SetLevel(l)
	return nil
}

// GetLevel returns the current log level.
func GetLevel() zapcore.Level {
	return level.Level()
}

// Clean normalises a log message: lower case, no surrounding whitespace.
func Clean(msg string) string {
	return strings.ToLower(strings.TrimSpace(msg))
}
