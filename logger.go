package ip2loc

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the fields ip2loc reports.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that writes JSON lines to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable lines to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// LogOpen logs the outcome of loading a database.
func (l *Logger) LogOpen(ctx context.Context, source string, size int, h *Header, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open database failed",
			"source", source,
			"size", size,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "database loaded",
		"source", source,
		"size", size,
		"type", h.Type,
		"date", h.Date().Format("2006-01-02"),
		"ipv4_rows", h.IPv4Count,
		"ipv6_rows", h.IPv6Count,
		"ipv4_index", h.IPv4IndexBase != 0,
		"ipv6_index", h.IPv6IndexBase != 0,
	)
}

// LogLookup logs a failed lookup at error level and a successful one at debug.
func (l *Logger) LogLookup(ctx context.Context, addr string, found bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "lookup failed",
			"addr", addr,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "lookup completed",
		"addr", addr,
		"found", found,
	)
}

// LogExport logs the end of an export run.
func (l *Logger) LogExport(ctx context.Context, format Format, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"format", format.String(),
			"records", records,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "export completed",
		"format", format.String(),
		"records", records,
	)
}
