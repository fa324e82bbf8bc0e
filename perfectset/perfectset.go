// Package perfectset implements a two-level Fredman-Komlós-Szemerédi
// static perfect hash set over int, grounded on
// original_source/FixedSet.h. Build once from a fixed element set;
// Contains afterwards is worst-case O(1) with no collision chains. Not
// consumed by dynconn's core, which needs no static membership set;
// kept as a respecified collaborator utility per SPEC_FULL.md §7.
package perfectset

import "math/rand"

// primeBase is the modulus every level's hash coefficients are drawn
// from, matching the reference's fixed choice.
const primeBase = 2_000_000_011

// linearHash is h(x) = ((x*a + b) mod primeBase) mod buckets.
type linearHash struct {
	a, b    int64
	buckets int64
}

func (h linearHash) apply(x int) int {
	v := (int64(x)*h.a + h.b) % primeBase
	if v < 0 {
		v += primeBase
	}
	return int(v % h.buckets)
}

func randomLinearHash(rng *rand.Rand, buckets int) linearHash {
	return linearHash{
		a:       rng.Int63n(primeBase),
		b:       rng.Int63n(primeBase),
		buckets: int64(buckets),
	}
}

type innerTable struct {
	hash  linearHash
	slots []int
	set   []bool
}

func (t *innerTable) contains(x int) bool {
	if len(t.slots) == 0 {
		return false
	}
	idx := t.hash.apply(x)
	return t.set[idx] && t.slots[idx] == x
}

func buildInner(rng *rand.Rand, elems []int) innerTable {
	if len(elems) == 0 {
		return innerTable{}
	}
	size := len(elems) * len(elems)
	t := innerTable{slots: make([]int, size), set: make([]bool, size)}
	for {
		t.hash = randomLinearHash(rng, size)
		for i := range t.set {
			t.set[i] = false
		}
		collided := false
		for _, x := range elems {
			idx := t.hash.apply(x)
			if t.set[idx] && t.slots[idx] != x {
				collided = true
				break
			}
			t.slots[idx] = x
			t.set[idx] = true
		}
		if !collided {
			return t
		}
	}
}

// Set is an immutable perfect hash set over int, built once from a
// fixed slice of elements (duplicates tolerated).
type Set struct {
	outer  linearHash
	inners []innerTable
}

// acceptanceFactor bounds the outer level's total bucket-size squares
// at acceptanceFactor*n, matching the reference's retry condition.
const acceptanceFactor = 8

// New builds a perfect hash set over elements using rng for the
// outer and inner hash coefficient draws.
func New(rng *rand.Rand, elements []int) *Set {
	n := len(elements)
	if n == 0 {
		return &Set{}
	}

	bucketOf := make([]int, n)
	sizes := make([]int, n)
	var outer linearHash
	for {
		outer = randomLinearHash(rng, n)
		for i := range sizes {
			sizes[i] = 0
		}
		for i, x := range elements {
			b := outer.apply(x)
			bucketOf[i] = b
			sizes[b]++
		}
		var sumSquares int64
		for _, s := range sizes {
			sumSquares += int64(s) * int64(s)
		}
		if sumSquares <= acceptanceFactor*int64(n) {
			break
		}
	}

	buckets := make([][]int, n)
	for i, x := range elements {
		b := bucketOf[i]
		buckets[b] = append(buckets[b], x)
	}

	inners := make([]innerTable, n)
	for i, elems := range buckets {
		inners[i] = buildInner(rng, elems)
	}
	return &Set{outer: outer, inners: inners}
}

// Contains reports whether x was among the elements New was built
// from.
func (s *Set) Contains(x int) bool {
	if len(s.inners) == 0 {
		return false
	}
	return s.inners[s.outer.apply(x)].contains(x)
}
