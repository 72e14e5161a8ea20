package proxylist

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with proxylist-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithPath adds the database path to every record.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogOpen logs the decoded header of a newly opened database.
func (l *Logger) LogOpen(ctx context.Context, h Header, size int) {
	l.InfoContext(ctx, "database opened",
		"db_type", h.DatabaseType,
		"db_column", h.ColumnCount,
		"ipv4_count", h.IPv4Count,
		"ipv4_base", h.IPv4Base,
		"size", size,
	)
	if !h.Fits(size) {
		l.WarnContext(ctx, "ipv4 table exceeds file size, trailing rows will be skipped",
			"table_end", h.TableEnd(),
			"size", size,
		)
	}
}

// LogStart logs the beginning of an extraction.
func (l *Logger) LogStart(ctx context.Context, records uint32, chunks int) {
	l.InfoContext(ctx, "extracting ipv4 records",
		"records", records,
		"chunks", chunks,
	)
}

// LogProgress logs completed chunks.
func (l *Logger) LogProgress(ctx context.Context, p Progress) {
	l.InfoContext(ctx, "progress",
		"completed", p.Completed,
		"total", p.Total,
		"percent", p.Percent(),
	)
}

// LogBucket logs the size of one non-empty bucket.
func (l *Logger) LogBucket(ctx context.Context, name string, addresses, networks int) {
	l.InfoContext(ctx, "bucket",
		"name", name,
		"addresses", addresses,
		"networks", networks,
	)
}

// LogExtraction logs the outcome of an extraction.
func (l *Logger) LogExtraction(ctx context.Context, stats Stats, buckets int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extraction failed",
			"duration", duration,
			"error", err,
		)
		return
	}
	if stats.Skipped > 0 || stats.Degraded > 0 {
		l.WarnContext(ctx, "extraction completed with unreadable records",
			"records", stats.Records,
			"skipped", stats.Skipped,
			"degraded_fields", stats.Degraded,
			"buckets", buckets,
			"duration", duration,
		)
		return
	}
	l.InfoContext(ctx, "extraction completed",
		"records", stats.Records,
		"buckets", buckets,
		"duration", duration,
	)
}

// LogWrite logs the result of writing a document.
func (l *Logger) LogWrite(ctx context.Context, path string, lists int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "document saved",
		"path", path,
		"lists", lists,
	)
}
