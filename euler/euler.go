// Package euler implements an Euler-tour forest with marks: a balanced
// representation of an unrooted forest on a fixed vertex set, where
// each tree edge occupies two positions in a sequence ordered by a
// pre-order Euler tour of its tree. Link and Cut run in expected
// O(log n); IsConnected and subtree-size queries are O(log n); the two
// independent per-node mark planes (edge, vertex) support O(log n)
// updates and pruned subtree enumeration.
//
// A Forest is built on top of treap.Treap: every tree edge contributes
// two treap.Node values, pre-allocated once at Init and never
// reallocated, so every *treap.Node handed out by this package stays
// valid for the Forest's lifetime.
package euler

import (
	"math/rand"

	"github.com/katalvlaran/dynconn/treap"
)

// Forest represents one level's spanning forest: up to numVertices-1
// tree edges over numVertices vertices, each tree edge identified by a
// dense tree-edge index tii in [0, numVertices-1).
type Forest struct {
	treap *treap.Treap

	nodes []treap.Node // len 2*(numVertices-1); first/second occurrence per tii
	first []int        // per-vertex index into nodes, or -1 if isolated

	edgeMark   []bool // per-tii edge mark, source of truth (node.EdgeMark mirrors it)
	vertexMark []bool // per-vertex vertex mark, source of truth
}

// New returns a Forest over numVertices vertices with no tree edges,
// using rng for the underlying treap's balance decisions.
func New(numVertices int, rng *rand.Rand) *Forest {
	edgeCount := numVertices - 1
	f := &Forest{
		treap:      treap.New(rng),
		nodes:      make([]treap.Node, edgeCount*2),
		first:      make([]int, numVertices),
		edgeMark:   make([]bool, edgeCount),
		vertexMark: make([]bool, numVertices),
	}
	for i := range f.nodes {
		f.nodes[i].Index = i
		f.nodes[i].Size = 1
	}
	for v := range f.first {
		f.first[v] = -1
	}
	return f
}

// NumVertices returns the number of vertices the forest was built for.
func (f *Forest) NumVertices() int { return len(f.first) }

// NumTreeEdgeSlots returns the maximum number of tree edges the forest
// can hold (numVertices - 1).
func (f *Forest) NumTreeEdgeSlots() int { return len(f.edgeMark) }

// TreeRef identifies a tree within the forest by its root node; the
// zero TreeRef denotes an isolated vertex (a one-vertex "tree" with no
// tree edges and thus no node at all).
type TreeRef struct {
	root *treap.Node
}

// IsIsolatedVertex reports whether t refers to a vertex with no
// incident tree edge.
func (t TreeRef) IsIsolatedVertex() bool { return t.root == nil }

// Equal reports whether t and other refer to the same tree.
func (t TreeRef) Equal(other TreeRef) bool { return t.root == other.root }

// GetTreeRef returns a reference to v's tree.
func (f *Forest) GetTreeRef(v int) TreeRef {
	pos := f.first[v]
	if pos == -1 {
		return TreeRef{}
	}
	return TreeRef{root: treap.FindRoot(&f.nodes[pos])}
}

// IsConnected reports whether u and v lie in the same tree. It is
// reflexive: IsConnected(v, v) is always true.
func (f *Forest) IsConnected(u, v int) bool {
	if u == v {
		return true
	}
	uPos, vPos := f.first[u], f.first[v]
	if uPos == -1 || vPos == -1 {
		return false
	}
	return treap.FindRoot(&f.nodes[uPos]) == treap.FindRoot(&f.nodes[vPos])
}

// TreeSize returns the number of vertices in t's tree (1 for an
// isolated vertex).
func (f *Forest) TreeSize(t TreeRef) int {
	if t.IsIsolatedVertex() {
		return 1
	}
	return t.root.Size/2 + 1
}

func (f *Forest) updateMarks(pos, vertex int) {
	n := &f.nodes[pos]
	n.EdgeMark = pos < f.NumTreeEdgeSlots() && f.edgeMark[pos]
	n.VertexMark = f.vertexMark[vertex]
	treap.UpdatePath(n)
}

// firstPosChanged replays the stored marks onto whichever of the two
// occurrence slots is now v's representative after a Link or Cut.
func (f *Forest) firstPosChanged(v, oldPos, newPos int) {
	if oldPos != -1 {
		f.updateMarks(oldPos, v)
	}
	if newPos != -1 {
		f.updateMarks(newPos, v)
	}
}

// Link makes tii a tree edge joining u and v, which must currently lie
// in different trees (or be isolated vertices).
func (f *Forest) Link(tii, u, v int) {
	// posU/posV are the occurrence slots tied to u and v respectively.
	// The smaller of u, v always ends up tied to slot tii, the larger
	// to slot tii+NumTreeEdgeSlots — independent of which one is
	// passed as u and which as v.
	posU, posV := tii, tii+f.NumTreeEdgeSlots()
	if u > v {
		posU, posV = posV, posU
	}

	uOld, vOld := f.first[u], f.first[v]

	var left, mid, right *treap.Node
	if uOld != -1 {
		before, from := f.treap.Split2(&f.nodes[uOld])
		mid = f.treap.Merge(from, before)
	} else {
		mid = nil
		f.first[u] = posU
		f.firstPosChanged(u, -1, posU)
	}

	if vOld != -1 {
		before, from := f.treap.Split2(&f.nodes[vOld])
		left, right = before, from
	} else {
		left, right = nil, nil
		f.first[v] = posV
		f.firstPosChanged(v, -1, posV)
	}

	mid = f.treap.Cons(&f.nodes[posV], mid)
	right = f.treap.Cons(&f.nodes[posU], right)

	f.treap.Merge(f.treap.Merge(left, mid), right)
}

// Cut removes the tree edge tii joining u and v, splitting their tree
// into the two components on either side of the edge.
func (f *Forest) Cut(tii, u, v int) {
	if u > v {
		u, v = v, u
	}
	firstPos, secondPos := tii, tii+f.NumTreeEdgeSlots()

	firstBefore, firstAfter := f.treap.Split3(&f.nodes[firstPos])
	sizeAfterFirstSplit := treap.Size(firstAfter)
	secondBefore, secondAfter := f.treap.Split3(&f.nodes[secondPos])

	// The three pieces left, mid, right are, in tour order: left
	// (before the edge's first occurrence), mid (strictly between the
	// two occurrences — the cut-off subtree), right (after the second
	// occurrence). Splitting at firstPos first tells us whether
	// secondPos landed in "firstAfter" (the usual case) or, when the
	// roles were inverted at Link time, in front of it; detect which
	// by checking whether splitting at secondPos changed the size of
	// the piece that used to be firstAfter.
	var left, mid, right *treap.Node
	if firstAfter == &f.nodes[secondPos] || treap.Size(firstAfter) != sizeAfterFirstSplit {
		left, mid, right = firstBefore, secondBefore, secondAfter
	} else {
		u, v = v, u
		firstPos, secondPos = secondPos, firstPos
		left, mid, right = secondBefore, secondAfter, firstAfter
	}

	if f.first[u] == firstPos {
		var newPos int
		if right != nil {
			newPos = treap.FindHead(right).Index
		} else if left != nil {
			newPos = treap.FindHead(left).Index
		} else {
			newPos = -1
		}
		f.first[u] = newPos
		f.firstPosChanged(u, firstPos, newPos)
	}
	if f.first[v] == secondPos {
		newPos := -1
		if mid != nil {
			newPos = treap.FindHead(mid).Index
		}
		f.first[v] = newPos
		f.firstPosChanged(v, secondPos, newPos)
	}

	f.treap.Merge(left, right)
}

// ChangeEdgeMark sets the edge mark of tree edge tii and refreshes the
// subtree-union aggregates from that node up to its root.
func (f *Forest) ChangeEdgeMark(tii int, mark bool) {
	f.edgeMark[tii] = mark
	n := &f.nodes[tii]
	n.EdgeMark = mark
	treap.UpdatePath(n)
}

// VertexMark returns the vertex mark most recently set for v via
// ChangeVertexMark (false if never set).
func (f *Forest) VertexMark(v int) bool { return f.vertexMark[v] }

// ChangeVertexMark sets the vertex mark of v and refreshes the
// subtree-union aggregates from v's representative occurrence up to
// its root. It is a no-op on the aggregate if v is currently isolated
// (the mark is still remembered and will take effect once v gains a
// tree edge).
func (f *Forest) ChangeVertexMark(v int, mark bool) {
	f.vertexMark[v] = mark
	pos := f.first[v]
	if pos == -1 {
		return
	}
	n := &f.nodes[pos]
	n.VertexMark = mark
	treap.UpdatePath(n)
}

// MarkCallback is invoked once per marked node found during a pruned
// enumeration, with the node's tii (for edges) or its index in the
// node array (for vertices, see EnumMarkedVertices). Returning false stops enumeration
// early.
type MarkCallback func(id int) bool

// EnumMarkedEdges visits every tree edge (by tii) marked within t's
// tree, in tour order, skipping any subtree whose edge-union bit is
// clear.
func (f *Forest) EnumMarkedEdges(t TreeRef, cb MarkCallback) bool {
	return f.enumMarks(t, cb, planeEdge)
}

// EnumMarkedVertices visits every node (by its index in the node
// array) whose own vertex mark is set within t's tree, in tour order,
// skipping any subtree whose vertex-union bit is clear. Callers map
// the yielded index back to a vertex via whatever external bookkeeping
// associated that occurrence with its vertex (dynconn uses it to
// recover the non-tail endpoint of the corresponding tree edge).
func (f *Forest) EnumMarkedVertices(t TreeRef, cb MarkCallback) bool {
	return f.enumMarks(t, cb, planeVertex)
}

type markPlane int

const (
	planeEdge markPlane = iota
	planeVertex
)

func (f *Forest) enumMarks(t TreeRef, cb MarkCallback, plane markPlane) bool {
	if t.IsIsolatedVertex() {
		return true
	}
	if !unionBit(t.root, plane) {
		return true
	}
	return f.enumMarksRec(t.root, cb, plane)
}

func (f *Forest) enumMarksRec(n *treap.Node, cb MarkCallback, plane markPlane) bool {
	if n.Left != nil && unionBit(n.Left, plane) {
		if !f.enumMarksRec(n.Left, cb, plane) {
			return false
		}
	}
	if ownBit(n, plane) {
		if !cb(n.Index) {
			return false
		}
	}
	if n.Right != nil && unionBit(n.Right, plane) {
		if !f.enumMarksRec(n.Right, cb, plane) {
			return false
		}
	}
	return true
}

func unionBit(n *treap.Node, plane markPlane) bool {
	if plane == planeEdge {
		return n.EdgeUnion
	}
	return n.VertexUnion
}

func ownBit(n *treap.Node, plane markPlane) bool {
	if plane == planeEdge {
		return n.EdgeMark
	}
	return n.VertexMark
}
