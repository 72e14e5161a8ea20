package proxylist

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordChunk is called after each chunk is merged. It may be called
	// from several goroutines at once.
	RecordChunk(records, skipped int, duration time.Duration)

	// RecordExtraction is called once per Extract call. buckets is the
	// number of non-empty buckets; err is nil if successful.
	RecordExtraction(records, buckets int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordChunk(int, int, time.Duration)             {}
func (NoopMetricsCollector) RecordExtraction(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ChunkCount           atomic.Int64
	ChunkTotalNanos      atomic.Int64
	RecordCount          atomic.Int64
	SkippedCount         atomic.Int64
	ExtractionCount      atomic.Int64
	ExtractionErrors     atomic.Int64
	ExtractionTotalNanos atomic.Int64
	BucketCount          atomic.Int64
}

// RecordChunk implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunk(records, skipped int, duration time.Duration) {
	b.ChunkCount.Add(1)
	b.ChunkTotalNanos.Add(duration.Nanoseconds())
	b.RecordCount.Add(int64(records))
	b.SkippedCount.Add(int64(skipped))
}

// RecordExtraction implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtraction(records, buckets int, duration time.Duration, err error) {
	b.ExtractionCount.Add(1)
	b.ExtractionTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExtractionErrors.Add(1)
		return
	}
	b.BucketCount.Store(int64(buckets))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ChunkCount:       b.ChunkCount.Load(),
		ChunkAvgNanos:    avg(b.ChunkTotalNanos.Load(), b.ChunkCount.Load()),
		RecordCount:      b.RecordCount.Load(),
		SkippedCount:     b.SkippedCount.Load(),
		ExtractionCount:  b.ExtractionCount.Load(),
		ExtractionErrors: b.ExtractionErrors.Load(),
		ExtractionNanos:  avg(b.ExtractionTotalNanos.Load(), b.ExtractionCount.Load()),
		BucketCount:      b.BucketCount.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ChunkCount       int64
	ChunkAvgNanos    int64
	RecordCount      int64
	SkippedCount     int64
	ExtractionCount  int64
	ExtractionErrors int64
	ExtractionNanos  int64
	BucketCount      int64
}
