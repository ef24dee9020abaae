// Package logger configures the application's structured logging.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/yukikurage/task-manager-api/internal/config"
	gormlogger "gorm.io/gorm/logger"
)

// ParseLevel converts a configured level name into a slog.Level. Unknown
// names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a JSON or text logger writing to w and installs it as the slog default.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// GormLogger routes gorm's SQL logging through the given slog logger. SQL
// statements are only traced at debug level.
func GormLogger(logger *slog.Logger, level string) gormlogger.Interface {
	gormLevel := gormlogger.Warn
	switch ParseLevel(level) {
	case slog.LevelDebug:
		gormLevel = gormlogger.Info
	case slog.LevelError:
		gormLevel = gormlogger.Error
	}

	return gormlogger.NewSlogLogger(logger, gormlogger.Config{
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
	})
}
