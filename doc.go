// Package dynconn implements fully dynamic graph connectivity on an
// undirected, fixed-vertex-count graph: online interleaved edge
// insertion, edge removal, pointwise connectivity queries, and a
// running connected-component count, each in amortized polylogarithmic
// time per update.
//
// The structure follows the Holm-Lichtenberg-Thorup (HLT) scheme. A
// spanning forest is maintained at each of L = min(⌊log₂ V⌋+1, 16)
// levels, one euler.Forest per level (package euler, itself built on
// package treap's randomized bottom-up treap). Every edge carries a
// level that only ever increases; a tree edge at level ℓ is linked
// into every forest 0..ℓ simultaneously. Non-tree edges are kept in
// per-level, per-vertex doubly linked incidence lists, searched by the
// Replace procedure whenever a tree edge is cut and a same-level
// replacement is sought before the edge's two sides are allowed to
// fall apart at level 0.
//
// A Graph is not safe for concurrent use; callers needing concurrent
// access must serialize it externally.
package dynconn
