package treap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// label lets a test recover which node it's looking at, via a
// parallel map from *Node to int, since Node carries no payload.
func newLabeled(n int) ([]*Node, map[*Node]int) {
	nodes := make([]*Node, n)
	labels := make(map[*Node]int, n)
	for i := range nodes {
		nodes[i] = &Node{Size: 1}
		labels[nodes[i]] = i
	}
	return nodes, labels
}

func inorder(labels map[*Node]int, n *Node, out *[]int) {
	if n == nil {
		return
	}
	inorder(labels, n.Left, out)
	*out = append(*out, labels[n])
	inorder(labels, n.Right, out)
}

func sequence(labels map[*Node]int, root *Node) []int {
	var out []int
	inorder(labels, root, &out)
	return out
}

func newTreap() *Treap {
	return New(rand.New(rand.NewSource(228)))
}

func TestMergePreservesOrder(t *testing.T) {
	tp := newTreap()
	nodes, labels := newLabeled(6)

	var root *Node
	for _, n := range nodes {
		root = tp.Merge(root, n)
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, sequence(labels, root))
	assert.Equal(t, 6, Size(root))
}

func TestMergeAssociativity(t *testing.T) {
	tp := newTreap()
	nodes, labels := newLabeled(8)

	left := tp.Merge(tp.Merge(nodes[0], nodes[1]), tp.Merge(nodes[2], nodes[3]))
	right := tp.Merge(tp.Merge(nodes[4], nodes[5]), tp.Merge(nodes[6], nodes[7]))
	root := tp.Merge(left, right)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, sequence(labels, root))
}

func TestSplit2RoundTrip(t *testing.T) {
	tp := newTreap()
	nodes, labels := newLabeled(7)

	var root *Node
	for _, n := range nodes {
		root = tp.Merge(root, n)
	}

	for cut := 0; cut < len(nodes); cut++ {
		before, from := tp.Split2(nodes[cut])
		require.Equal(t, cut, Size(before))
		require.Equal(t, len(nodes)-cut, Size(from))

		gotBefore := sequence(labels, before)
		gotFrom := sequence(labels, from)
		assert.Equal(t, seqRange(0, cut), gotBefore)
		assert.Equal(t, seqRange(cut, len(nodes)), gotFrom)

		root = tp.Merge(before, from)
	}
}

func TestSplit3ExcludesPivotAndRoundTrips(t *testing.T) {
	tp := newTreap()
	nodes, labels := newLabeled(7)

	var root *Node
	for _, n := range nodes {
		root = tp.Merge(root, n)
	}

	for cut := 0; cut < len(nodes); cut++ {
		before, after := tp.Split3(nodes[cut])
		require.Equal(t, cut, Size(before))
		require.Equal(t, len(nodes)-cut-1, Size(after))

		assert.Equal(t, seqRange(0, cut), sequence(labels, before))
		assert.Equal(t, seqRange(cut+1, len(nodes)), sequence(labels, after))
		assert.Equal(t, 1, Size(nodes[cut]))
		assert.Nil(t, nodes[cut].Parent)

		mid := tp.Cons(nodes[cut], after)
		root = tp.Merge(before, mid)
	}
}

func TestConsInsertsAtFront(t *testing.T) {
	tp := newTreap()
	nodes, labels := newLabeled(4)

	var tail *Node
	for i := len(nodes) - 1; i >= 1; i-- {
		tail = tp.Merge(nodes[i], tail)
	}
	root := tp.Cons(nodes[0], tail)

	assert.Equal(t, []int{0, 1, 2, 3}, sequence(labels, root))
	assert.Equal(t, 4, Size(root))
}

func TestConsOnNilTree(t *testing.T) {
	tp := newTreap()
	n := &Node{Size: 1}
	assert.Same(t, n, tp.Cons(n, nil))
}

func TestMarkUnionPropagatesUpAndIsPruned(t *testing.T) {
	tp := newTreap()
	nodes, _ := newLabeled(5)

	var root *Node
	for _, n := range nodes {
		root = tp.Merge(root, n)
	}

	assert.False(t, root.EdgeUnion)

	nodes[3].EdgeMark = true
	UpdatePath(nodes[3])

	assert.True(t, root.EdgeUnion)
	assert.False(t, root.VertexUnion)

	nodes[3].EdgeMark = false
	UpdatePath(nodes[3])
	assert.False(t, root.EdgeUnion)
}

func seqRange(lo, hi int) []int {
	var out []int
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
