// Package bucket accumulates deduplicated address sets per category.
//
// Single addresses are kept in 32-bit roaring bitmaps, which deduplicate
// on insert and iterate in ascending order. Spans wider than one address
// are kept as inclusive [start, end] pairs. Both are widened to uint64 when
// drained.
package bucket

import (
	"cmp"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Range is an inclusive address range [start, end].
type Range [2]uint64

// Start returns the first address of the range.
func (r Range) Start() uint64 { return r[0] }

// End returns the last address of the range.
func (r Range) End() uint64 { return r[1] }

// Compare orders ranges by start, then end.
func Compare(a, b Range) int {
	if c := cmp.Compare(a[0], b[0]); c != 0 {
		return c
	}
	return cmp.Compare(a[1], b[1])
}

// Set is the accumulator of one bucket.
type Set struct {
	addrs  *roaring.Bitmap
	ranges map[Range]struct{}
}

func newSet() Set {
	return Set{
		addrs:  roaring.New(),
		ranges: make(map[Range]struct{}),
	}
}

// Add records the span [from, to). A span of one address is stored as an
// address, anything wider as the range [from, to-1]. Empty or inverted
// spans are ignored.
func (s *Set) Add(from, to uint32) {
	switch {
	case to <= from:
		return
	case to-from == 1:
		s.addrs.Add(from)
	default:
		s.ranges[Range{uint64(from), uint64(to) - 1}] = struct{}{}
	}
}

// Len returns the number of distinct addresses plus distinct ranges.
func (s *Set) Len() int {
	return int(s.addrs.GetCardinality()) + len(s.ranges)
}

// Merge adds every entry of other to s.
func (s *Set) Merge(other *Set) {
	s.addrs.Or(other.addrs)
	for r := range other.ranges {
		s.ranges[r] = struct{}{}
	}
}

// Addresses returns the addresses in ascending order.
func (s *Set) Addresses() []uint64 {
	out := make([]uint64, 0, s.addrs.GetCardinality())
	it := s.addrs.Iterator()
	for it.HasNext() {
		out = append(out, uint64(it.Next()))
	}
	return out
}

// Ranges returns the ranges ordered by (start, end).
func (s *Set) Ranges() []Range {
	out := make([]Range, 0, len(s.ranges))
	for r := range s.ranges {
		out = append(out, r)
	}
	slices.SortFunc(out, Compare)
	return out
}

// List is the drained, sorted content of one bucket.
type List struct {
	Name      string
	Addresses []uint64
	Networks  []Range
}

// Accumulator holds one Set per bucket index.
type Accumulator struct {
	sets []Set
}

// NewAccumulator returns an accumulator for n buckets.
func NewAccumulator(n int) *Accumulator {
	a := &Accumulator{sets: make([]Set, n)}
	for i := range a.sets {
		a.sets[i] = newSet()
	}
	return a
}

// Len returns the number of buckets.
func (a *Accumulator) Len() int { return len(a.sets) }

// Add records the span [from, to) in bucket b.
func (a *Accumulator) Add(b int, from, to uint32) {
	a.sets[b].Add(from, to)
}

// Set returns the accumulator of bucket b.
func (a *Accumulator) Set(b int) *Set { return &a.sets[b] }

// Merge unions other into a. Both must have the same number of buckets.
func (a *Accumulator) Merge(other *Accumulator) {
	for i := range a.sets {
		a.sets[i].Merge(&other.sets[i])
	}
}

// Drain returns the sorted lists of all non-empty buckets, named by names
// and ordered by name. The accumulator must not be used afterwards.
func (a *Accumulator) Drain(names []string) []List {
	lists := make([]List, 0, len(a.sets))
	for i := range a.sets {
		s := &a.sets[i]
		if s.Len() == 0 {
			continue
		}
		lists = append(lists, List{
			Name:      names[i],
			Addresses: s.Addresses(),
			Networks:  s.Ranges(),
		})
		a.sets[i] = Set{}
	}
	slices.SortFunc(lists, func(x, y List) int { return cmp.Compare(x.Name, y.Name) })
	return lists
}
