package dynconn

import (
	"fmt"
	"math/bits"
	"math/rand"

	"github.com/katalvlaran/dynconn/euler"
)

// Graph is a fully dynamic connectivity structure over a fixed set of
// V vertices. The zero value is not usable; construct with New.
type Graph struct {
	numVertices int
	numLevels   int
	components  int
	nextEdgeID  int

	forests []*euler.Forest // one spanning forest per level, forests[0] is the top-level forest

	edgeLevel     []int // per edge id, -1 once removed
	treeEdgeIndex []int // per edge id, tii or -1 if not currently a tree edge
	treeEdgeMap   []int // per tii, edge id or -1 if free
	freeTii       []int // free-list stack of tii values

	posHead         []int // per slot (2*e, 2*e+1), the endpoint stored there
	nextIncidentPos []int // per slot, next slot in its incidence list, -1 at tail, -2 if not linked
	prevIncidentPos []int // per slot, previous slot in its incidence list, -1 at head, -2 if not linked

	firstIncidentPos [][]int // [level][vertex] -> head slot of that vertex's incidence list, -1 if empty

	edgeVisited  []bool // per edge id, scratch state for Replace
	visitedEdges []int  // scratch accumulator for Replace, reused across its phases

	allEdges map[[2]int][]int // (min,max) endpoint pair -> FIFO stack of edge ids

	rng *rand.Rand
}

// New returns a fresh Graph of numVertices isolated vertices.
func New(numVertices uint, opts ...Option) (*Graph, error) {
	if numVertices == 0 {
		return nil, ErrInvalidVertexCount
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	v := int(numVertices)
	numLevels := levelCount(v)
	treeEdgeSlots := v - 1

	g := &Graph{
		numVertices:      v,
		numLevels:        numLevels,
		components:       v,
		forests:          make([]*euler.Forest, numLevels),
		treeEdgeMap:      make([]int, treeEdgeSlots),
		freeTii:          make([]int, treeEdgeSlots),
		firstIncidentPos: make([][]int, numLevels),
		allEdges:         make(map[[2]int][]int),
		rng:              cfg.rng,
	}
	for lvl := range g.forests {
		g.forests[lvl] = euler.New(v, g.rng)
	}
	for i := range g.treeEdgeMap {
		g.treeEdgeMap[i] = -1
		g.freeTii[i] = i
	}
	for lvl := range g.firstIncidentPos {
		row := make([]int, v)
		for i := range row {
			row[i] = -1
		}
		g.firstIncidentPos[lvl] = row
	}
	return g, nil
}

// levelCount computes L = min(⌊log₂ V⌋+1, 16) via bits.Len rather than
// math.Log2, so exact powers of two never round the wrong way.
func levelCount(v int) int {
	l := bits.Len(uint(v))
	if l > 16 {
		l = 16
	}
	return l
}

// NumVertices returns V, fixed at construction.
func (g *Graph) NumVertices() uint { return uint(g.numVertices) }

// ComponentCount returns the number of connected components over the
// current edge set.
func (g *Graph) ComponentCount() uint { return uint(g.components) }

func (g *Graph) checkVertex(v uint) error {
	if int(v) >= g.numVertices {
		return fmt.Errorf("%w: %d (numVertices=%d)", ErrVertexOutOfRange, v, g.numVertices)
	}
	return nil
}

// IsConnected reports whether u and v are joined by a path of current
// edges. It is reflexive: IsConnected(v, v) is always true.
func (g *Graph) IsConnected(u, v uint) (bool, error) {
	if err := g.checkVertex(u); err != nil {
		return false, err
	}
	if err := g.checkVertex(v); err != nil {
		return false, err
	}
	return g.forests[0].IsConnected(int(u), int(v)), nil
}

// slot/edge-id bookkeeping: every edge e owns two slots, 2e and 2e+1,
// into posHead/nextIncidentPos/prevIncidentPos. These are distinct
// from the ETT's own tii/tii+(V-1) occurrence addressing, which is
// entirely internal to package euler.
func firstSlot(e int) int  { return 2 * e }
func secondSlot(e int) int { return 2*e + 1 }
func edgeOfSlot(pos int) int { return pos / 2 }

// AddEdge adds an edge between u and v (self-loops and parallel edges
// are both accepted) and returns its edge id.
func (g *Graph) AddEdge(u, v uint) (uint, error) {
	if err := g.checkVertex(u); err != nil {
		return 0, err
	}
	if err := g.checkVertex(v); err != nil {
		return 0, err
	}

	hi, lo := int(u), int(v)
	if lo > hi {
		hi, lo = lo, hi
	}

	e := g.nextEdgeID
	g.nextEdgeID++
	key := [2]int{hi, lo}
	g.allEdges[key] = append(g.allEdges[key], e)

	g.posHead = append(g.posHead, lo, hi)
	g.nextIncidentPos = append(g.nextIncidentPos, -2, -2)
	g.prevIncidentPos = append(g.prevIncidentPos, -2, -2)
	g.edgeVisited = append(g.edgeVisited, false)
	g.treeEdgeIndex = append(g.treeEdgeIndex, -1)
	g.edgeLevel = append(g.edgeLevel, 0)

	if !g.forests[0].IsConnected(hi, lo) {
		g.addTreeEdge(e)
		g.components--
	} else if hi != lo {
		g.insertNontreeEdge(e)
	}
	return uint(e), nil
}

// RemoveEdge removes the oldest edge currently recorded between u and
// v (in either order).
func (g *Graph) RemoveEdge(u, v uint) error {
	if err := g.checkVertex(u); err != nil {
		return err
	}
	if err := g.checkVertex(v); err != nil {
		return err
	}

	hi, lo := int(u), int(v)
	if lo > hi {
		hi, lo = lo, hi
	}
	key := [2]int{hi, lo}
	ids := g.allEdges[key]
	if len(ids) == 0 {
		return fmt.Errorf("%w: (%d, %d)", ErrNoSuchEdge, u, v)
	}
	e := ids[0]
	if len(ids) == 1 {
		delete(g.allEdges, key)
	} else {
		g.allEdges[key] = ids[1:]
	}

	pf, ps := firstSlot(e), secondSlot(e)
	first, second := g.posHead[ps], g.posHead[pf]

	lvl := g.edgeLevel[e]
	tii := g.treeEdgeIndex[e]

	splitOff := false
	if tii != -1 {
		g.treeEdgeMap[tii] = -1
		g.treeEdgeIndex[e] = -1
		g.freeTii = append(g.freeTii, tii)

		for i := 0; i <= lvl; i++ {
			g.forests[i].Cut(tii, first, second)
		}
		g.forests[lvl].ChangeEdgeMark(tii, false)

		splitOff = !g.replace(lvl, first, second)
	} else if first != second {
		g.deleteNontreeEdge(e)
	}

	g.posHead[pf], g.posHead[ps] = -1, -1
	g.edgeLevel[e] = -1

	if splitOff {
		g.components++
	}
	return nil
}

// addTreeEdge promotes edge e (currently a non-tree edge about to be
// inserted, or one just found as a replacement) to a tree edge: it
// claims a tii from the free list and links it into every forest from
// level 0 up to e's current level, inclusive.
func (g *Graph) addTreeEdge(e int) {
	first := g.posHead[secondSlot(e)]
	second := g.posHead[firstSlot(e)]
	lvl := g.edgeLevel[e]

	tii := g.freeTii[len(g.freeTii)-1]
	g.freeTii = g.freeTii[:len(g.freeTii)-1]
	g.treeEdgeIndex[e] = tii
	g.treeEdgeMap[tii] = e

	g.forests[lvl].ChangeEdgeMark(tii, true)
	for i := 0; i <= lvl; i++ {
		g.forests[i].Link(tii, first, second)
	}
}

func (g *Graph) insertIncidentPos(pos, vertex int) {
	e := edgeOfSlot(pos)
	lvl := g.edgeLevel[e]

	next := g.firstIncidentPos[lvl][vertex]
	g.firstIncidentPos[lvl][vertex] = pos
	g.nextIncidentPos[pos] = next
	g.prevIncidentPos[pos] = -1
	if next != -1 {
		g.prevIncidentPos[next] = pos
	}
	if next == -1 {
		g.forests[lvl].ChangeVertexMark(vertex, true)
	}
}

func (g *Graph) deleteIncidentPos(pos, vertex int) {
	e := edgeOfSlot(pos)
	lvl := g.edgeLevel[e]

	next, prev := g.nextIncidentPos[pos], g.prevIncidentPos[pos]
	g.nextIncidentPos[pos], g.prevIncidentPos[pos] = -2, -2
	if next != -1 {
		g.prevIncidentPos[next] = prev
	}
	if prev != -1 {
		g.nextIncidentPos[prev] = next
	} else {
		g.firstIncidentPos[lvl][vertex] = next
	}
	if next == -1 && prev == -1 {
		g.forests[lvl].ChangeVertexMark(vertex, false)
	}
}

func (g *Graph) insertNontreeEdge(e int) {
	pf, ps := firstSlot(e), secondSlot(e)
	g.insertIncidentPos(pf, g.posHead[ps])
	g.insertIncidentPos(ps, g.posHead[pf])
}

func (g *Graph) deleteNontreeEdge(e int) {
	pf, ps := firstSlot(e), secondSlot(e)
	g.deleteIncidentPos(pf, g.posHead[ps])
	g.deleteIncidentPos(ps, g.posHead[pf])
}

// treeEdgeEndpoint recovers, from an ETT occurrence position belonging
// to some tree edge tii, the specific vertex that occurrence is
// structurally tied to (the smaller endpoint if the occurrence is
// tii's first slot, the larger if its second) — the inverse of the
// addressing euler.Forest.Link establishes when linking tii.
func (g *Graph) treeEdgeEndpoint(occPos int) int {
	slots := g.numVertices - 1
	isSecond := occPos >= slots
	tii := occPos
	if isSecond {
		tii -= slots
	}
	e := g.treeEdgeMap[tii]
	hi := g.posHead[secondSlot(e)]
	lo := g.posHead[firstSlot(e)]
	if isSecond == (hi > lo) {
		return hi
	}
	return lo
}

func (g *Graph) enumIncidentPos(forest *euler.Forest, tree euler.TreeRef, vertex, lvl int, cb func(pos int) bool) bool {
	if tree.IsIsolatedVertex() {
		return g.enumIncidentPosAtVertex(lvl, vertex, cb)
	}
	return forest.EnumMarkedVertices(tree, func(occPos int) bool {
		return g.enumIncidentPosAtVertex(lvl, g.treeEdgeEndpoint(occPos), cb)
	})
}

func (g *Graph) enumIncidentPosAtVertex(lvl, vertex int, cb func(pos int) bool) bool {
	pos := g.firstIncidentPos[lvl][vertex]
	for pos != -1 {
		if !cb(pos) {
			return false
		}
		pos = g.nextIncidentPos[pos]
	}
	return true
}

// findReplacementEdge is the per-slot callback driving the incident
// scan in replace: it skips edges already visited this search, records
// a dead-end edge (both endpoints already inside uRoot) as visited for
// later level promotion, and stops the scan the moment it finds an
// edge whose other endpoint lies outside uRoot.
func (g *Graph) findReplacementEdge(pos, lvl int, uRoot euler.TreeRef, replacementEdge *int) bool {
	e := edgeOfSlot(pos)
	if g.edgeVisited[e] {
		return true
	}
	hRoot := g.forests[lvl].GetTreeRef(g.posHead[pos])
	if hRoot.IsIsolatedVertex() || !hRoot.Equal(uRoot) {
		*replacementEdge = e
		return false
	}
	g.edgeVisited[e] = true
	g.visitedEdges = append(g.visitedEdges, e)
	return true
}

// consumeReplacement installs e as the tree edge that reconnects the
// two sides of a just-cut edge, and clears any scratch visited state
// still pending (a no-op once that state has already been drained).
func (g *Graph) consumeReplacement(e int) {
	g.deleteNontreeEdge(e)
	g.addTreeEdge(e)
	for _, id := range g.visitedEdges {
		g.edgeVisited[id] = false
	}
	g.visitedEdges = g.visitedEdges[:0]
}

// replace searches level lvl (and, failing that, every level below)
// for a non-tree edge that reconnects u and v after their tree edge at
// lvl was just cut. It returns whether a replacement was found at any
// level from lvl down to 0.
func (g *Graph) replace(lvl, u, v int) bool {
	forest := g.forests[lvl]
	uTree, vTree := forest.GetTreeRef(u), forest.GetTreeRef(v)

	smallest, smallTree := u, uTree
	if forest.TreeSize(vTree) < forest.TreeSize(uTree) {
		smallest, smallTree = v, vTree
	}

	replacementEdge := -1
	g.enumIncidentPos(forest, smallTree, smallest, lvl, func(pos int) bool {
		return g.findReplacementEdge(pos, lvl, smallTree, &replacementEdge)
	})

	if replacementEdge != -1 && len(g.visitedEdges)+1 <= g.numLevels {
		g.consumeReplacement(replacementEdge)
		return true
	}

	levelUp := lvl+1 < g.numLevels
	for _, e := range g.visitedEdges {
		g.edgeVisited[e] = false
		if levelUp {
			g.deleteNontreeEdge(e)
			g.edgeLevel[e]++
			g.insertNontreeEdge(e)
		}
	}
	g.visitedEdges = g.visitedEdges[:0]

	forest.EnumMarkedEdges(smallTree, func(tii int) bool {
		g.visitedEdges = append(g.visitedEdges, tii)
		return true
	})
	for _, tii := range g.visitedEdges {
		e := g.treeEdgeMap[tii]
		newFirst := g.posHead[secondSlot(e)]
		newSecond := g.posHead[firstSlot(e)]
		newLvl := g.edgeLevel[e]
		if levelUp {
			g.edgeLevel[e] = newLvl + 1
			g.forests[newLvl].ChangeEdgeMark(tii, false)
			g.forests[newLvl+1].ChangeEdgeMark(tii, true)
			g.forests[newLvl+1].Link(tii, newFirst, newSecond)
		}
	}
	g.visitedEdges = g.visitedEdges[:0]

	if replacementEdge != -1 {
		g.consumeReplacement(replacementEdge)
		return true
	}
	if lvl > 0 {
		return g.replace(lvl-1, u, v)
	}
	return false
}
