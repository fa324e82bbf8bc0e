package unionfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFindMergesAndReports(t *testing.T) {
	uf := New(6)
	assert.Equal(t, 6, uf.Groups())
	assert.False(t, uf.Connected(0, 1))

	assert.True(t, uf.Union(0, 1))
	assert.True(t, uf.Connected(0, 1))
	assert.Equal(t, 5, uf.Groups())

	assert.False(t, uf.Union(0, 1))
	assert.Equal(t, 5, uf.Groups())

	uf.Union(2, 3)
	uf.Union(1, 2)
	assert.True(t, uf.Connected(0, 3))
	assert.False(t, uf.Connected(0, 4))
	assert.Equal(t, 3, uf.Groups())
}

func TestUnionFindSingletons(t *testing.T) {
	uf := New(1)
	assert.True(t, uf.Connected(0, 0))
	assert.Equal(t, 1, uf.Groups())
}
