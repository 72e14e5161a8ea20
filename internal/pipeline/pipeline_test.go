package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/proxylist/internal/bucket"
	"github.com/hupe1980/proxylist/internal/category"
	"github.com/hupe1980/proxylist/internal/ip2db"
	"github.com/hupe1980/proxylist/testutil"
)

type dbSource struct{ db *ip2db.DB }

func (s dbSource) Len() uint32       { return s.db.Len() }
func (s dbSource) NewReader() Reader { return s.db.NewResolver() }

// sliceSource serves records from memory; a nil entry reads as absent.
type sliceSource struct {
	records []*ip2db.Record
	onRead  func(index uint32)
}

func (s *sliceSource) Len() uint32       { return uint32(len(s.records)) }
func (s *sliceSource) NewReader() Reader { return &sliceReader{s} }

type sliceReader struct{ src *sliceSource }

func (r *sliceReader) Record(index uint32) (ip2db.Record, bool) {
	if r.src.onRead != nil {
		r.src.onRead(index)
	}
	if int(index) >= len(r.src.records) || r.src.records[index] == nil {
		return ip2db.Record{}, false
	}
	return *r.src.records[index], true
}

func (r *sliceReader) Degraded() int { return 0 }

func record(from, to uint32, fields ...string) *ip2db.Record {
	rec := &ip2db.Record{From: from, To: to}
	for i := range rec.Fields {
		rec.Fields[i] = ip2db.Absent
	}
	copy(rec.Fields[:], fields)
	return rec
}

func defaultMatcher(t *testing.T) *category.Matcher {
	t.Helper()
	m, err := category.NewMatcher(category.Default)
	require.NoError(t, err)
	return m
}

func TestRun_SingleAddress(t *testing.T) {
	db := ip2db.FromBytes(testutil.NewBuilder(10, 5).Add(16909060, 16909061, "", "DCH").Bytes())

	res, err := Run(context.Background(), dbSource{db}, defaultMatcher(t), Config{})
	require.NoError(t, err)

	require.Len(t, res.Lists, 1)
	assert.Equal(t, bucket.List{
		Name:      "ip2proxy_dch",
		Addresses: []uint64{16909060},
		Networks:  []bucket.Range{},
	}, res.Lists[0])
	assert.Equal(t, Stats{Chunks: 1, Records: 1, Degraded: 2}, res.Stats)
}

func TestRun_Range(t *testing.T) {
	db := ip2db.FromBytes(testutil.NewBuilder(10, 5).Add(16909060, 16909070, "", "DCH").Bytes())

	res, err := Run(context.Background(), dbSource{db}, defaultMatcher(t), Config{})
	require.NoError(t, err)

	require.Len(t, res.Lists, 1)
	assert.Equal(t, []uint64{}, res.Lists[0].Addresses)
	assert.Equal(t, []bucket.Range{{16909060, 16909069}}, res.Lists[0].Networks)
}

func TestRun_MultipleBuckets(t *testing.T) {
	src := &sliceSource{records: []*ip2db.Record{
		record(10, 11, "VPN", "DCH", "-"),
		record(20, 30, "TOR", "-", "SPAM/SCANNER"),
		record(40, 41, "-", "-", "-"),
	}}

	res, err := Run(context.Background(), src, defaultMatcher(t), Config{ChunkSize: 1})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Lists))
	for _, l := range res.Lists {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{
		"ip2proxy_dch", "ip2proxy_scanner", "ip2proxy_spam", "ip2proxy_tor", "ip2proxy_vpn",
	}, names)
	assert.Equal(t, 3, res.Stats.Chunks)
	assert.Equal(t, 3, res.Stats.Records)
}

func TestRun_SkipsBadRows(t *testing.T) {
	src := &sliceSource{records: []*ip2db.Record{
		nil,
		record(50, 50, "VPN"),
		record(60, 59, "VPN"),
		record(70, 71, "VPN"),
	}}

	res, err := Run(context.Background(), src, defaultMatcher(t), Config{})
	require.NoError(t, err)

	require.Len(t, res.Lists, 1)
	assert.Equal(t, []uint64{70}, res.Lists[0].Addresses)
	assert.Equal(t, 3, res.Stats.Skipped)
	assert.Equal(t, 1, res.Stats.Records)
}

func TestRun_TruncatedTable(t *testing.T) {
	b := testutil.NewBuilder(2, 3).Add(1, 2, "VPN").Add(3, 4, "VPN")
	b.DeclaredCount = 25000
	db := ip2db.FromBytes(b.Bytes())

	res, err := Run(context.Background(), dbSource{db}, defaultMatcher(t), Config{})
	require.NoError(t, err)

	require.Len(t, res.Lists, 1)
	assert.Equal(t, []uint64{1, 3}, res.Lists[0].Addresses)
	assert.Equal(t, 3, res.Stats.Chunks)
	assert.Equal(t, 25000-2, res.Stats.Skipped)
}

func TestRun_Empty(t *testing.T) {
	res, err := Run(context.Background(), &sliceSource{}, defaultMatcher(t), Config{
		Progress: func(Progress) { t.Fatal("no chunks, no progress") },
	})
	require.NoError(t, err)
	assert.Empty(t, res.Lists)
	assert.Zero(t, res.Stats.Chunks)
}

func TestRun_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(4711)
	rows := rng.Duplicate(rng.Rows(5000))
	db := ip2db.FromBytes(testutil.NewBuilder(12, 13).AddRows(rows).Bytes())
	m := defaultMatcher(t)

	want, err := Run(context.Background(), dbSource{db}, m, Config{ChunkSize: len(rows), Workers: 1})
	require.NoError(t, err)
	require.NotEmpty(t, want.Lists)

	for _, cfg := range []Config{
		{ChunkSize: 1, Workers: 8},
		{ChunkSize: 7, Workers: 3},
		{ChunkSize: 333, Workers: 16},
		{ChunkSize: 10000},
	} {
		got, err := Run(context.Background(), dbSource{db}, m, cfg)
		require.NoError(t, err)
		assert.Equal(t, want.Lists, got.Lists, "chunk size %d workers %d", cfg.ChunkSize, cfg.Workers)
		assert.Equal(t, want.Stats.Records, got.Stats.Records)
	}

	for _, l := range want.Lists {
		for i := 1; i < len(l.Addresses); i++ {
			assert.Less(t, l.Addresses[i-1], l.Addresses[i], "%s addresses strictly ascending", l.Name)
		}
		for i := 1; i < len(l.Networks); i++ {
			assert.Negative(t, bucket.Compare(l.Networks[i-1], l.Networks[i]), "%s ranges strictly ascending", l.Name)
		}
	}
}

func TestRun_Progress(t *testing.T) {
	records := make([]*ip2db.Record, 25)
	for i := range records {
		records[i] = record(uint32(i*2), uint32(i*2+1), "PUB")
	}

	var (
		mu    sync.Mutex
		calls []Progress
		seen  atomic.Int64
	)
	res, err := Run(context.Background(), &sliceSource{records: records}, defaultMatcher(t), Config{
		ChunkSize:        1,
		Workers:          4,
		ProgressInterval: 10,
		Progress: func(p Progress) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, p)
		},
		OnChunk: func(ChunkStats) { seen.Add(1) },
	})
	require.NoError(t, err)
	require.Len(t, res.Lists, 1)

	assert.Equal(t, []Progress{{10, 25}, {20, 25}, {25, 25}}, calls)
	assert.Equal(t, int64(25), seen.Load())
	assert.InDelta(t, 40.0, calls[0].Percent(), 1e-9)
	assert.InDelta(t, 100.0, Progress{}.Percent(), 1e-9)
}

func TestRun_Cancelled(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, &sliceSource{records: []*ip2db.Record{record(1, 2, "VPN")}}, defaultMatcher(t), Config{})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("while running", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		records := make([]*ip2db.Record, 1000)
		for i := range records {
			records[i] = record(uint32(i), uint32(i+1), "VPN")
		}
		src := &sliceSource{
			records: records,
			onRead: func(index uint32) {
				if index == 10 {
					cancel()
				}
			},
		}

		_, err := Run(ctx, src, defaultMatcher(t), Config{ChunkSize: 1, Workers: 1})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRun_PanicIsInvariantError(t *testing.T) {
	boom := errors.New("boom")
	src := &sliceSource{
		records: []*ip2db.Record{record(1, 2, "VPN"), record(3, 4, "VPN")},
		onRead: func(index uint32) {
			if index == 1 {
				panic(boom)
			}
		},
	}

	_, err := Run(context.Background(), src, defaultMatcher(t), Config{ChunkSize: 1})
	require.Error(t, err)

	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, 1, inv.Chunk)
	assert.NotEmpty(t, inv.Stack)
	assert.ErrorIs(t, err, boom)
}

func TestRun_InvalidChunkSize(t *testing.T) {
	if ^uint(0)>>32 == 0 {
		t.Skip("int is 32-bit")
	}
	maxChunk := ^uint32(0)
	big := int(maxChunk) + 1

	_, err := Run(context.Background(), &sliceSource{}, defaultMatcher(t), Config{ChunkSize: big})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
