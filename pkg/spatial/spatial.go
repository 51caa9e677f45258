// Package spatial defines the abstract spatial index interface used for
// neighbor queries over the input point cloud. Implementations (kdtree,
// rtree) provide radius search behind this interface, so the engine can
// swap backends without changing its candidate loops.
package spatial

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Neighbor is a single radius-search hit: the index of the point in the
// original point sequence and its squared distance to the query point.
type Neighbor struct {
	Index int
	Dist2 float64
}

// Index is the abstract spatial index over a fixed set of 3D points.
//
// RadiusSearch returns every point within radius of q, inclusive,
// sorted by squared distance and then by index. The sort order is part
// of the contract: the engine's candidate iteration order, and with it
// the output mesh, is deterministic only if the index is.
type Index interface {
	RadiusSearch(q v3.Vec, radius float64) []Neighbor
}
