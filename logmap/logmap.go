// Package logmap implements an insertion-only map using the
// logarithmic method: up to ⌈log₂ n⌉ sorted buckets, each a power-of-
// two size, merged by doubling whenever two adjacent buckets collide
// in size. Lookup is binary search per bucket. Grounded on
// original_source/MapForPoor.h. Not consumed by dynconn's core; kept
// as a respecified collaborator utility per SPEC_FULL.md §7.
package logmap

import "sort"

type pair struct {
	key, value int
}

// Map is an insertion-only map keyed by int.
type Map struct {
	buckets [][]pair // front to back, smallest bucket first
	size    int
}

// New returns an empty Map.
func New() *Map { return &Map{} }

// Len returns the number of key-value pairs inserted.
func (m *Map) Len() int { return m.size }

func (m *Map) findBucket(key int) ([]pair, int, bool) {
	for _, bucket := range m.buckets {
		idx := sort.Search(len(bucket), func(i int) bool { return bucket[i].key >= key })
		if idx < len(bucket) && bucket[idx].key == key {
			return bucket, idx, true
		}
	}
	return nil, 0, false
}

// Contains reports whether key has been inserted.
func (m *Map) Contains(key int) bool {
	_, _, ok := m.findBucket(key)
	return ok
}

// Get returns the value associated with key and whether it was found.
func (m *Map) Get(key int) (int, bool) {
	bucket, idx, ok := m.findBucket(key)
	if !ok {
		return 0, false
	}
	return bucket[idx].value, true
}

// Insert adds key -> value. Re-inserting an existing key adds a new
// entry rather than replacing the old one (matching the reference's
// insertion-only contract); Get and Contains find whichever copy a
// bucket scan reaches first.
func (m *Map) Insert(key, value int) {
	m.size++
	m.buckets = append([][]pair{{{key, value}}}, m.buckets...)

	for len(m.buckets) > 1 && len(m.buckets[0]) == len(m.buckets[1]) {
		merged := mergeSorted(m.buckets[0], m.buckets[1])
		m.buckets = append([][]pair{merged}, m.buckets[2:]...)
	}
}

func mergeSorted(a, b []pair) []pair {
	out := make([]pair, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].key <= b[j].key {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
