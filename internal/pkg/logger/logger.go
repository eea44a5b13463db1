package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ueberboese/ueberboese-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
	events = zap.NewNop()
)

// L returns the process-wide logger. Before Init it is a no-op logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Event returns the logger that receives raw device event bodies.
func Event() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return events
}

// Init builds the application and event loggers from cfg and installs them globally.
func Init(cfg config.LogConfig) error {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(cfg.Level)))); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}

	encoder := newEncoder(cfg.Format)
	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	if cfg.File != "" {
		w, err := rotatingWriter(cfg.File, cfg)
		if err != nil {
			return err
		}
		sinks = append(sinks, w)
	}
	app := zap.New(
		zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	ev := zap.NewNop()
	if cfg.EventFile != "" {
		w, err := rotatingWriter(cfg.EventFile, cfg)
		if err != nil {
			return err
		}
		ev = zap.New(zapcore.NewCore(newEncoder("json"), w, zapcore.InfoLevel)).Named("events")
	}

	Replace(app, ev)
	return nil
}

// Replace swaps the global loggers. Tests use it to capture output.
func Replace(app, ev *zap.Logger) {
	if app == nil {
		app = zap.NewNop()
	}
	if ev == nil {
		ev = zap.NewNop()
	}
	mu.Lock()
	global = app
	events = ev
	mu.Unlock()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
	_ = Event().Sync()
}

func newEncoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(format, "console") {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewJSONEncoder(encCfg)
}

func rotatingWriter(path string, cfg config.LogConfig) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}), nil
}
