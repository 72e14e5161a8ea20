package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/proxylist/internal/bucket"
	"github.com/hupe1980/proxylist/internal/category"
	"github.com/hupe1980/proxylist/internal/conv"
	"github.com/hupe1980/proxylist/internal/ip2db"
)

const (
	// DefaultChunkSize is the number of records per task.
	DefaultChunkSize = 10000
	// DefaultProgressInterval is the number of completed chunks between
	// progress reports.
	DefaultProgressInterval = 10
)

// ErrInvalidConfig is returned for configurations Run cannot honor.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// Source provides records by index.
type Source interface {
	// Len returns the number of record indexes to scan.
	Len() uint32
	// NewReader returns a reader for use by a single goroutine.
	NewReader() Reader
}

// Reader decodes records. Implementations need not be safe for concurrent use.
type Reader interface {
	Record(index uint32) (ip2db.Record, bool)
	// Degraded returns the number of fields that could not be decoded.
	Degraded() int
}

// Progress is reported as chunks complete.
type Progress struct {
	Completed int
	Total     int
}

// Percent returns the completed share in [0, 100].
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// ChunkStats describes one processed chunk.
type ChunkStats struct {
	Index    int
	Records  int
	Skipped  int
	Degraded int
	Duration time.Duration
}

// Stats aggregates ChunkStats over a run.
type Stats struct {
	Chunks   int
	Records  int
	Skipped  int
	Degraded int
}

func (s *Stats) add(c ChunkStats) {
	s.Chunks++
	s.Records += c.Records
	s.Skipped += c.Skipped
	s.Degraded += c.Degraded
}

// Config controls a run. Zero values select defaults.
type Config struct {
	ChunkSize        int
	Workers          int
	ProgressInterval int

	// Progress, if set, is called after every ProgressInterval completed
	// chunks and after the last one. Calls are serialized and Completed
	// never decreases.
	Progress func(Progress)

	// OnChunk, if set, is called once per completed chunk, possibly from
	// several goroutines at once.
	OnChunk func(ChunkStats)
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	return c
}

// Result is the outcome of a successful run.
type Result struct {
	// Lists holds the non-empty buckets ordered by name.
	Lists []bucket.List
	Stats Stats
}

// InvariantError reports a panic inside a chunk task. It indicates a
// programming error, never bad input, and fails the whole run.
type InvariantError struct {
	Chunk int
	Value any
	Stack []byte
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in chunk %d: %v", e.Chunk, e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *InvariantError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Run classifies every record of src with m.
//
// Records that cannot be read, or whose span is empty, are skipped and
// counted. Cancellation of ctx is checked before each chunk is scheduled
// and before it starts; a cancelled run returns ctx.Err() and no result.
func Run(ctx context.Context, src Source, m *category.Matcher, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	chunkSize, err := conv.IntToUint32(cfg.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("%w: chunk size: %w", ErrInvalidConfig, err)
	}

	total := uint64(src.Len())
	numChunks := int((total + uint64(chunkSize) - 1) / uint64(chunkSize))
	names := m.Buckets()

	var (
		mu        sync.Mutex
		shared    = bucket.NewAccumulator(len(names))
		stats     Stats
		completed int
	)

	merge := func(local *bucket.Accumulator, cs ChunkStats) {
		mu.Lock()
		defer mu.Unlock()

		shared.Merge(local)
		stats.add(cs)
		completed++
		if cfg.Progress != nil && (completed%cfg.ProgressInterval == 0 || completed == numChunks) {
			cfg.Progress(Progress{Completed: completed, Total: numChunks})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := 0; i < numChunks; i++ {
		if gctx.Err() != nil {
			break
		}

		start := uint64(i) * uint64(chunkSize)
		end := min(start+uint64(chunkSize), total)

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &InvariantError{Chunk: i, Value: r, Stack: debug.Stack()}
				}
			}()

			if err := gctx.Err(); err != nil {
				return err
			}

			local, cs := processChunk(src.NewReader(), m, uint32(start), uint32(end), len(names))
			cs.Index = i
			merge(local, cs)

			if cfg.OnChunk != nil {
				cfg.OnChunk(cs)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Lists: shared.Drain(names),
		Stats: stats,
	}, nil
}

func processChunk(r Reader, m *category.Matcher, start, end uint32, buckets int) (*bucket.Accumulator, ChunkStats) {
	began := time.Now()
	acc := bucket.NewAccumulator(buckets)

	var (
		cs  ChunkStats
		rec ip2db.Record
	)
	add := func(b int) { acc.Add(b, rec.From, rec.To) }

	for idx := start; idx < end; idx++ {
		var ok bool
		rec, ok = r.Record(idx)
		if !ok || !rec.Valid() {
			cs.Skipped++
			continue
		}
		cs.Records++
		m.Match(rec.Fields[:], add)
	}

	cs.Degraded = r.Degraded()
	cs.Duration = time.Since(began)
	return acc, cs
}
