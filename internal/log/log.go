package log

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var (
	logger     *zap.SugaredLogger
	loggerOnce sync.Once
	mu         sync.RWMutex
	level      = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// initLogger builds the global zap logger writing JSON lines to stderr.
func initLogger() {
	loggerOnce.Do(func() {
		encoderCfg := zapcore.EncoderConfig{
			MessageKey: "msg",
			TimeKey:    "ts",
			LevelKey:   "level",
			EncodeTime: zapcore.RFC3339NanoTimeEncoder,
			EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(strings.ToUpper(l.String()))
			},
		}
		cfg := zap.Config{
			Level:             level,
			Encoding:          "json",
			EncoderConfig:     encoderCfg,
			OutputPaths:       []string{"stderr"},
			ErrorOutputPaths:  []string{"stderr"},
			DisableCaller:     true,
			DisableStacktrace: true,
		}
		zl, err := cfg.Build()
		if err != nil {
			zl = zap.NewNop()
		}
		mu.Lock()
		if logger == nil {
			logger = zl.Sugar()
		}
		mu.Unlock()
	})
}

// SetLevel changes the minimum level of the global logger.
func SetLevel(l Level) {
	initLogger()
	switch l {
	case LevelDebug:
		level.SetLevel(zapcore.DebugLevel)
	case LevelError:
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// ParseLevel maps a config string ("debug", "info", "error") to a Level.
// Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(LevelDebug):
		return LevelDebug
	case string(LevelError):
		return LevelError
	default:
		return LevelInfo
	}
}

// SetOutput replaces the underlying zap logger. Tests use it with
// zaptest/observer to inspect emitted records.
func SetOutput(zl *zap.Logger) {
	initLogger()
	if zl == nil {
		zl = zap.NewNop()
	}
	mu.Lock()
	logger = zl.Sugar()
	mu.Unlock()
}

func Debug(msg string, kv ...any) {
	current().Debugw(msg, kv...)
}

func Info(msg string, kv ...any) {
	current().Infow(msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	// Prepend error into key-value list.
	extended := append([]any{"err", err}, kv...)
	current().Errorw(msg, extended...)
}

func current() *zap.SugaredLogger {
	initLogger()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
