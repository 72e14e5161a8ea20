package proxylist

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hupe1980/proxylist/internal/category"
	"github.com/hupe1980/proxylist/internal/pipeline"
)

const (
	// DefaultChunkSize is the number of records each worker task processes.
	DefaultChunkSize = pipeline.DefaultChunkSize
	// DefaultProgressInterval is the number of completed chunks between
	// progress reports.
	DefaultProgressInterval = pipeline.DefaultProgressInterval
)

type options struct {
	chunkSize           int
	workers             int
	progressInterval    int
	progress            func(Progress)
	progressLogInterval time.Duration
	timeout             time.Duration
	categories          category.Table
	clock               func() time.Time
	metricsCollector    MetricsCollector
	logger              *Logger
}

// Option configures an Extractor.
type Option func(*options)

// WithChunkSize sets the number of records per worker task. Larger chunks
// mean fewer merges under the shared lock; smaller chunks balance load
// better on skewed tables.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithWorkers bounds the number of chunks processed concurrently.
// n <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithProgressInterval sets how many completed chunks pass between
// progress reports. The last chunk is always reported.
func WithProgressInterval(n int) Option {
	return func(o *options) {
		o.progressInterval = n
	}
}

// WithProgress registers a callback for progress reports. Calls are
// serialized and Completed never decreases.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressLogInterval limits progress log lines to one per interval.
// The final report is always logged. 0 logs every report.
func WithProgressLogInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressLogInterval = d
	}
}

// WithTimeout bounds the duration of each Extract call. When exceeded,
// Extract fails with a *TimeoutError. 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithCategories replaces the default category table.
//
// Example:
//
//	ex, _ := proxylist.Open(path, proxylist.WithCategories([]proxylist.Category{
//	    {Substring: "VPN", Bucket: "vpn"},
//	    {Substring: "TOR", Bucket: "tor"},
//	}))
func WithCategories(categories []Category) Option {
	return func(o *options) {
		o.categories = category.Table(categories)
	}
}

// WithClock sets the source of document timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &proxylist.BasicMetricsCollector{}
//	ex, _ := proxylist.Open(path, proxylist.WithMetricsCollector(metrics))
//	// ... extract ...
//	stats := metrics.GetStats()
//	fmt.Printf("Chunks: %d, Avg latency: %dns\n", stats.ChunkCount, stats.ChunkAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := proxylist.NewJSONLogger(slog.LevelInfo)
//	ex, _ := proxylist.Open(path, proxylist.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) (options, error) {
	o := options{
		chunkSize:        DefaultChunkSize,
		progressInterval: DefaultProgressInterval,
		categories:       category.Default,
		clock:            time.Now,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if o.chunkSize < 1 {
		return o, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidOption, o.chunkSize)
	}
	if o.progressInterval < 1 {
		return o, fmt.Errorf("%w: progress interval must be positive, got %d", ErrInvalidOption, o.progressInterval)
	}
	if o.timeout < 0 {
		return o, fmt.Errorf("%w: negative timeout %s", ErrInvalidOption, o.timeout)
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o, nil
}
