package proxylist

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/proxylist/internal/category"
	"github.com/hupe1980/proxylist/internal/ip2db"
	"github.com/hupe1980/proxylist/internal/pipeline"
)

// Header describes the geometry of the database's IPv4 table.
type Header = ip2db.Header

// Layout holds the 1-based column positions of the proxy-type, usage-type
// and threat fields for one database type. 0 means the field is absent.
type Layout = ip2db.Layout

// Category maps a substring of an upper-cased field value to a bucket name.
type Category = category.Pattern

// Progress reports completed chunks out of the total.
type Progress = pipeline.Progress

// DefaultCategories returns a copy of the built-in category table.
func DefaultCategories() []Category {
	return append([]Category(nil), category.Default...)
}

// LayoutFor returns the field layout of a database type.
func LayoutFor(databaseType uint8) Layout {
	return ip2db.LayoutFor(databaseType)
}

// Extractor classifies the IPv4 table of one database file.
// Extract may be called concurrently and repeatedly.
type Extractor struct {
	path    string
	db      *ip2db.DB
	matcher *category.Matcher
	opts    options
	log     *Logger

	// mu keeps Close from unmapping while an extraction reads the file.
	mu     sync.RWMutex
	closed atomic.Bool
}

// Open maps the database at path and decodes its header.
//
// Open fails with an *IOError when the file cannot be opened or mapped, and
// with ErrInvalidOption for rejected options. A header that declares more
// rows than the file holds is not an error; the missing rows are skipped.
func Open(path string, optFns ...Option) (*Extractor, error) {
	o, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	m, err := category.NewMatcher(o.categories)
	if err != nil {
		return nil, errors.Join(ErrInvalidOption, err)
	}

	db, err := ip2db.Open(path)
	if err != nil {
		err = &IOError{Op: "open", Path: path, cause: err}
		o.logger.ErrorContext(context.Background(), "open failed", "path", path, "error", err)
		return nil, err
	}

	e := &Extractor{
		path:    path,
		db:      db,
		matcher: m,
		opts:    o,
		log:     o.logger.WithPath(path),
	}
	e.log.LogOpen(context.Background(), db.Header(), db.Size())
	return e, nil
}

// Extract is a convenience wrapper that opens path, extracts and closes.
func Extract(ctx context.Context, path string, optFns ...Option) (*Document, error) {
	e, err := Open(path, optFns...)
	if err != nil {
		return nil, err
	}
	defer e.Close()
	return e.Extract(ctx)
}

// Header returns the decoded database header.
func (e *Extractor) Header() Header { return e.db.Header() }

// Layout returns the field layout selected by the header's database type.
func (e *Extractor) Layout() Layout { return e.db.Layout() }

// Buckets returns the configured bucket names in table order.
func (e *Extractor) Buckets() []string {
	return append([]string(nil), e.matcher.Buckets()...)
}

// Extract scans every IPv4 record and returns the classified document.
//
// Malformed records never fail the run; they are skipped or resolve to no
// bucket and are counted in Document.Stats. Extract returns ctx.Err() when
// ctx is cancelled, a *TimeoutError when the WithTimeout bound is exceeded,
// and an *InvariantError if a worker panics.
func (e *Extractor) Extract(ctx context.Context) (*Document, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed.Load() {
		return nil, ErrClosed
	}

	parent := ctx
	if e.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.timeout)
		defer cancel()
	}

	records := e.db.Len()
	chunks := (uint64(records) + uint64(e.opts.chunkSize) - 1) / uint64(e.opts.chunkSize)
	e.log.LogStart(ctx, records, int(chunks))

	began := time.Now()
	res, err := pipeline.Run(ctx, source{e.db}, e.matcher, pipeline.Config{
		ChunkSize:        e.opts.chunkSize,
		Workers:          e.opts.workers,
		ProgressInterval: e.opts.progressInterval,
		Progress:         e.progressFunc(ctx),
		OnChunk: func(cs pipeline.ChunkStats) {
			e.opts.metricsCollector.RecordChunk(cs.Records, cs.Skipped, cs.Duration)
		},
	})
	duration := time.Since(began)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
			err = &TimeoutError{Timeout: e.opts.timeout, cause: err}
		}
		e.opts.metricsCollector.RecordExtraction(0, 0, duration, err)
		e.log.LogExtraction(ctx, Stats{}, 0, duration, err)
		return nil, err
	}

	doc := assemble(res.Lists, res.Stats, e.opts.clock())
	for _, name := range doc.Names() {
		l := doc.Lists[name]
		e.log.LogBucket(ctx, name, len(l.Addresses), len(l.Networks))
	}
	e.opts.metricsCollector.RecordExtraction(res.Stats.Records, len(doc.Lists), duration, nil)
	e.log.LogExtraction(ctx, res.Stats, len(doc.Lists), duration, nil)
	return doc, nil
}

// progressFunc forwards reports to the WithProgress callback and the log.
// Log lines are throttled to one per WithProgressLogInterval; the final
// report is always logged.
func (e *Extractor) progressFunc(ctx context.Context) func(Progress) {
	var throttle *rate.Sometimes
	if e.opts.progressLogInterval > 0 {
		throttle = &rate.Sometimes{Interval: e.opts.progressLogInterval}
	}
	return func(p Progress) {
		if throttle == nil || p.Completed == p.Total {
			e.log.LogProgress(ctx, p)
		} else {
			throttle.Do(func() { e.log.LogProgress(ctx, p) })
		}
		if e.opts.progress != nil {
			e.opts.progress(p)
		}
	}
}

// Close unmaps the database once running extractions have returned.
// It is idempotent.
func (e *Extractor) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Swap(true) {
		return nil
	}
	return e.db.Close()
}

// source adapts a DB to the pipeline.
type source struct{ db *ip2db.DB }

func (s source) Len() uint32                { return s.db.Len() }
func (s source) NewReader() pipeline.Reader { return s.db.NewResolver() }
