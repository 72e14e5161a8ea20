package proxylist

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	assert.Equal(t, BasicMetricsStats{}, m.GetStats())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordChunk(100, 2, 10*time.Millisecond)
		}()
	}
	wg.Wait()

	m.RecordExtraction(800, 5, time.Second, nil)
	m.RecordExtraction(0, 0, 3*time.Second, errors.New("failed"))

	stats := m.GetStats()
	assert.Equal(t, int64(8), stats.ChunkCount)
	assert.Equal(t, (10 * time.Millisecond).Nanoseconds(), stats.ChunkAvgNanos)
	assert.Equal(t, int64(800), stats.RecordCount)
	assert.Equal(t, int64(16), stats.SkippedCount)
	assert.Equal(t, int64(2), stats.ExtractionCount)
	assert.Equal(t, int64(1), stats.ExtractionErrors)
	assert.Equal(t, (2 * time.Second).Nanoseconds(), stats.ExtractionNanos)
	assert.Equal(t, int64(5), stats.BucketCount)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	m.RecordChunk(1, 0, time.Millisecond)
	m.RecordExtraction(1, 1, time.Millisecond, nil)
}
