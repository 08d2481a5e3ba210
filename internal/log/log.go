// Package log provides the slog-based application logger: console text or
// JSON output, optional rotating file output, configured directly or from
// HUEBOARD_LOG_* environment variables.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
//
//	HUEBOARD_LOG_LEVEL=debug|info|warn|error
//	HUEBOARD_LOG_FORMAT=text|json
//	HUEBOARD_LOG_FILE=<path>  (enables rotating file output)
type Options struct {
	Level  string
	Format string // "text" or "json"
	File   string // optional path for rotated file logging
}

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// L returns the application logger, initializing from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init configures the logger and installs it as slog's default.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)

	var w io.Writer = os.Stderr
	if strings.TrimSpace(opts.File) != "" {
		w = io.MultiWriter(os.Stderr, &lj.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MiB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	l := slog.New(h)
	mu.Lock()
	logger = l
	mu.Unlock()
	slog.SetDefault(l)
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:  getenv("HUEBOARD_LOG_LEVEL", "info"),
		Format: getenv("HUEBOARD_LOG_FORMAT", "text"),
		File:   os.Getenv("HUEBOARD_LOG_FILE"),
	}
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
