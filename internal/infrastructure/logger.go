package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"bioarch/internal/config"
)

var (
	// globalLogger holds the process-wide logger instance
	globalLogger     *slog.Logger
	globalLoggerOnce sync.Once
)

// contextKey is a type for context keys
type contextKey string

// BatchIDContextKey is the key for the export batch id carried in a context
const BatchIDContextKey contextKey = "batch_id"

// InitializeLogger creates the process-wide logger from configuration and
// installs it as the slog default. Only the first call has an effect.
func InitializeLogger(cfg config.LoggingConfig) *slog.Logger {
	globalLoggerOnce.Do(func() {
		globalLogger = NewLogger(cfg, os.Stderr)
		slog.SetDefault(globalLogger)
	})
	return globalLogger
}

// GetLogger returns the global logger instance.
// If not initialized, returns the default slog logger.
func GetLogger() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// NewLogger builds a logger writing to w with the configured level and format.
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLogLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(&batchHandler{Handler: handler})
}

// batchHandler adds the batch id found in the record context.
type batchHandler struct {
	slog.Handler
}

// Handle adds batch_id to the record if present in context
func (h *batchHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetBatchID(ctx); id != "" {
		r.AddAttrs(slog.String("batch_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new Handler with additional attributes
func (h *batchHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &batchHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup returns a new Handler with the given group name
func (h *batchHandler) WithGroup(name string) slog.Handler {
	return &batchHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLogLevel converts a configured level name to slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithBatchID adds a batch id to the context
func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, BatchIDContextKey, id)
}

// GetBatchID retrieves the batch id from context
func GetBatchID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(BatchIDContextKey).(string); ok {
		return id
	}
	return ""
}
