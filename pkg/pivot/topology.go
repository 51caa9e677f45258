package pivot

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// vertexType classifies a vertex by its incident edges.
type vertexType int

const (
	vertexOrphan vertexType = iota // no incident edges yet
	vertexFront                    // at least one non-inner incident edge
	vertexInner                    // every incident edge is inner
)

// edgeType classifies an edge by its adjacent triangles.
type edgeType int

const (
	edgeBorder edgeType = iota // pivoting found no candidate at the current radius
	edgeFront                  // one adjacent triangle, eligible for pivoting
	edgeInner                  // two adjacent triangles, terminal
)

// vertex is one input point lifted into the topology store. Position and
// normal are copies of the cloud entries at the same index. The engine's
// vertex slice is the arena that owns all topology; edges and triangles
// point back into it.
type vertex struct {
	idx    int
	pos    v3.Vec
	normal v3.Vec
	edges  []*edge
	typ    vertexType
}

// updateType recomputes the classification from the incident edge set.
// Called after every change to the set or to an incident edge's type.
func (v *vertex) updateType() {
	if len(v.edges) == 0 {
		v.typ = vertexOrphan
		return
	}
	for _, e := range v.edges {
		if e.typ != edgeInner {
			v.typ = vertexFront
			return
		}
	}
	v.typ = vertexInner
}

// addEdge inserts e into the incident set if not already present.
func (v *vertex) addEdge(e *edge) {
	for _, have := range v.edges {
		if have == e {
			return
		}
	}
	v.edges = append(v.edges, e)
}

// edge connects source and target and records up to two adjacent
// triangles; triangle0 is always filled first. A new edge starts out
// front; the first triangle keeps it front, the second makes it inner.
// Border is assigned only by the pivoting loop, and a border edge can
// return to the front on a radius change.
type edge struct {
	source, target *vertex
	triangle0      *triangle
	triangle1      *triangle
	typ            edgeType
}

func newEdge(source, target *vertex) *edge {
	return &edge{source: source, target: target, typ: edgeFront}
}

// oppositeVertex returns the vertex of triangle0 that is not an endpoint
// of the edge, or nil if the edge has no adjacent triangle yet.
func (e *edge) oppositeVertex() *vertex {
	if e.triangle0 == nil {
		return nil
	}
	t := e.triangle0
	switch {
	case t.v0.idx != e.source.idx && t.v0.idx != e.target.idx:
		return t.v0
	case t.v1.idx != e.source.idx && t.v1.idx != e.target.idx:
		return t.v1
	default:
		return t.v2
	}
}

// triangle references three vertices and the center at which the
// pivoting ball rested on them. Vertex order encodes orientation.
type triangle struct {
	v0, v1, v2 *vertex
	ballCenter v3.Vec
}
