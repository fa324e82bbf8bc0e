package avlset

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool { return a < b }

func TestInsertFindAndValuesOrdered(t *testing.T) {
	s := New(intLess)
	values := []int{5, 3, 8, 1, 4, 7, 9, 2, 6}
	for _, v := range values {
		assert.True(t, s.Insert(v))
	}
	assert.False(t, s.Insert(5))
	assert.Equal(t, len(values), s.Len())

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	assert.Equal(t, sorted, s.Values())

	for _, v := range values {
		got, ok := s.Find(v)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
	_, ok := s.Find(100)
	assert.False(t, ok)
}

func TestLowerAndUpperBound(t *testing.T) {
	s := New(intLess)
	for _, v := range []int{10, 20, 30, 40} {
		s.Insert(v)
	}

	lb, ok := s.LowerBound(25)
	require.True(t, ok)
	assert.Equal(t, 30, lb)

	lb, ok = s.LowerBound(30)
	require.True(t, ok)
	assert.Equal(t, 30, lb)

	ub, ok := s.UpperBound(30)
	require.True(t, ok)
	assert.Equal(t, 40, ub)

	_, ok = s.LowerBound(41)
	assert.False(t, ok)
	_, ok = s.UpperBound(40)
	assert.False(t, ok)
}

func TestIteratorBidirectional(t *testing.T) {
	s := New(intLess)
	for _, v := range []int{1, 2, 3} {
		s.Insert(v)
	}
	it := s.NewIterator()
	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, _ = it.Next()
	assert.Equal(t, 2, v)
	v, _ = it.Next()
	assert.Equal(t, 3, v)
	_, ok = it.Next()
	assert.False(t, ok)

	v, ok = it.Prev()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestRandomInsertsStayBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(228))
	s := New(intLess)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := rng.Intn(1000)
		grew := s.Insert(v)
		assert.Equal(t, !seen[v], grew)
		seen[v] = true
	}
	assert.Equal(t, len(seen), s.Len())

	values := s.Values()
	for i := 1; i < len(values); i++ {
		assert.Less(t, values[i-1], values[i])
	}

	maxHeight := height(s.root)
	assert.LessOrEqual(t, maxHeight, 2*len(values)/3+5)
}
