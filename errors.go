package dynconn

import "errors"

// Sentinel errors returned by Graph's public operations. Wrap with
// fmt.Errorf("%w: ...", ErrX) to attach operation-specific detail;
// callers should match with errors.Is.
var (
	// ErrInvalidVertexCount is returned by New when numVertices is 0.
	ErrInvalidVertexCount = errors.New("dynconn: vertex count must be at least 1")

	// ErrVertexOutOfRange is returned when a vertex id is not in [0, V).
	ErrVertexOutOfRange = errors.New("dynconn: vertex id out of range")

	// ErrNoSuchEdge is returned by RemoveEdge when no edge between the
	// given endpoints currently exists.
	ErrNoSuchEdge = errors.New("dynconn: no matching edge to remove")
)
