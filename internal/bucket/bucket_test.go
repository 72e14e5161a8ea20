package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Add(t *testing.T) {
	s := newSet()

	s.Add(16909060, 16909061)
	s.Add(16909060, 16909070)
	s.Add(5, 5) // empty
	s.Add(9, 3) // inverted
	s.Add(16909060, 16909061)

	assert.Equal(t, []uint64{16909060}, s.Addresses())
	assert.Equal(t, []Range{{16909060, 16909069}}, s.Ranges())
	assert.Equal(t, 2, s.Len())
}

func TestSet_Boundaries(t *testing.T) {
	s := newSet()
	s.Add(0, 1)
	s.Add(^uint32(0)-1, ^uint32(0))
	s.Add(0, ^uint32(0))

	assert.Equal(t, []uint64{0, 1<<32 - 2}, s.Addresses())
	assert.Equal(t, []Range{{0, 1<<32 - 2}}, s.Ranges())
}

func TestSet_SortOrder(t *testing.T) {
	s := newSet()
	s.Add(50, 60)
	s.Add(10, 30)
	s.Add(10, 20)
	s.Add(7, 8)
	s.Add(3, 4)
	s.Add(99, 100)

	assert.Equal(t, []uint64{3, 7, 99}, s.Addresses())
	assert.Equal(t, []Range{{10, 19}, {10, 29}, {50, 59}}, s.Ranges())
}

func TestAccumulator_MergeDrain(t *testing.T) {
	names := []string{"b_second", "a_first", "c_empty"}

	shared := NewAccumulator(len(names))
	one := NewAccumulator(len(names))
	two := NewAccumulator(len(names))

	one.Add(0, 10, 11)
	one.Add(0, 100, 200)
	one.Add(1, 1, 2)
	two.Add(0, 10, 11)
	two.Add(0, 100, 200)
	two.Add(0, 5, 6)

	shared.Merge(one)
	shared.Merge(two)
	require.Equal(t, 3, shared.Set(0).Len())

	lists := shared.Drain(names)
	require.Len(t, lists, 2, "empty buckets are omitted")

	assert.Equal(t, List{Name: "a_first", Addresses: []uint64{1}, Networks: []Range{}}, lists[0])
	assert.Equal(t, List{Name: "b_second", Addresses: []uint64{5, 10}, Networks: []Range{{100, 199}}}, lists[1])
}

func TestCompare(t *testing.T) {
	assert.Negative(t, Compare(Range{1, 5}, Range{2, 3}))
	assert.Negative(t, Compare(Range{1, 5}, Range{1, 6}))
	assert.Zero(t, Compare(Range{1, 5}, Range{1, 5}))
	assert.Positive(t, Compare(Range{2, 0}, Range{1, 9}))

	r := Range{4, 8}
	assert.Equal(t, uint64(4), r.Start())
	assert.Equal(t, uint64(8), r.End())
}
