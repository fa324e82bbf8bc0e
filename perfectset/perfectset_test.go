package perfectset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetContainsExactlyBuiltElements(t *testing.T) {
	rng := rand.New(rand.NewSource(228))
	elems := []int{3, 17, 42, 100, -5, 999999, 7, 8, 9, 10}
	s := New(rng, elems)

	for _, x := range elems {
		assert.True(t, s.Contains(x), "expected %d to be present", x)
	}

	present := make(map[int]bool, len(elems))
	for _, x := range elems {
		present[x] = true
	}
	absentCount := 0
	for x := -10; x < 20; x++ {
		if !present[x] && s.Contains(x) {
			absentCount++
		}
	}
	assert.Zero(t, absentCount)
}

func TestEmptySet(t *testing.T) {
	rng := rand.New(rand.NewSource(228))
	s := New(rng, nil)
	assert.False(t, s.Contains(0))
}

func TestSetToleratesDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := New(rng, []int{5, 5, 5, 10})
	assert.True(t, s.Contains(5))
	assert.True(t, s.Contains(10))
	assert.False(t, s.Contains(6))
}
