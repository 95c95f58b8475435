// Package observability provides logging, metrics and tracing for namereg.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds a slog.Logger writing to w.
//
// level is one of "debug", "info", "warn", "error" (default "info").
// format is "json" or "text" (default "text").
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel converts a level name to a slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// EnrichLogger tags a logger with the registrar name.
//
// Example:
//
//	enriched := EnrichLogger(logger, "name-registrar")
//	enriched.Info("ready") // includes registrar=name-registrar
func EnrichLogger(logger *slog.Logger, registrar string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("registrar", registrar))
}

// LogRegister logs a registration. replaced is true when an existing
// binding was overwritten.
func LogRegister(logger *slog.Logger, key, valueType string, replaced bool) {
	if logger == nil {
		return
	}
	logger.Debug("name registered",
		slog.String("key", key),
		slog.String("type", valueType),
		slog.Bool("replaced", replaced),
	)
}

// LogUnregister logs a removal. existed is false for no-op removals.
func LogUnregister(logger *slog.Logger, key string, existed bool) {
	if logger == nil {
		return
	}
	logger.Debug("name unregistered",
		slog.String("key", key),
		slog.Bool("existed", existed),
	)
}

// LogNotFound logs a failed lookup.
func LogNotFound(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("name not found",
		slog.String("key", key),
	)
}

// LogDump logs a completed dump.
func LogDump(logger *slog.Logger, entries int, detail bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("registrar dumped",
		slog.Int("entries", entries),
		slog.Bool("detail", detail),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogWaitAbandoned logs a WaitFor that gave up before the key was bound.
func LogWaitAbandoned(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Info("wait for name abandoned",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogChangeDropped logs a change notification that did not fit in a
// subscriber's buffer.
func LogChangeDropped(logger *slog.Logger, subscriberID, key, kind string) {
	if logger == nil {
		return
	}
	logger.Warn("change notification dropped",
		slog.String("subscriber_id", subscriberID),
		slog.String("key", key),
		slog.String("kind", kind),
	)
}
