package pivot

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ballpivot/pkg/spatial"
)

// tryTriangleSeed checks whether (v0, v1, v2) can form a seed triangle
// with the current ball radius: normals compatible, no inner edge among
// (v0,v2) and (v1,v2), ball center computable, and the ball empty of
// every other neighbor in nbs.
func (e *Engine) tryTriangleSeed(v0, v1, v2 *vertex, nbs []spatial.Neighbor, radius float64) (v3.Vec, bool) {
	if !compatible(v0, v1, v2) {
		return v3.Vec{}, false
	}

	if ed := e.linkingEdge(v0, v2); ed != nil && ed.typ == edgeInner {
		return v3.Vec{}, false
	}
	if ed := e.linkingEdge(v1, v2); ed != nil && ed.typ == edgeInner {
		return v3.Vec{}, false
	}

	center, ok := e.ballCenter(v0, v1, v2, radius)
	if !ok {
		return v3.Vec{}, false
	}

	for _, nb := range nbs {
		if nb.Index == v0.idx || nb.Index == v1.idx || nb.Index == v2.idx {
			continue
		}
		if center.Sub(e.vertices[nb.Index].pos).Length() < radius-1e-16 {
			return v3.Vec{}, false
		}
	}

	return center, true
}

// trySeed looks for a seed triangle anchored at the orphan vertex v,
// pairing it with two orphan neighbors in radius-search order. On
// success the triangle is created and its front edges queued; the
// return value reports whether the front is now non-empty.
func (e *Engine) trySeed(v *vertex, radius float64) bool {
	e.debugf("[trySeed] v=%d radius=%g", v.idx, radius)
	nbs := e.index.RadiusSearch(v.pos, 2*radius)
	if len(nbs) < 3 {
		return false
	}

	for i0 := 0; i0 < len(nbs); i0++ {
		nb0 := e.vertices[nbs[i0].Index]
		if nb0.typ != vertexOrphan || nb0.idx == v.idx {
			continue
		}

		var nb1 *vertex
		var center v3.Vec
		for i1 := i0 + 1; i1 < len(nbs); i1++ {
			cand := e.vertices[nbs[i1].Index]
			if cand.typ != vertexOrphan || cand.idx == v.idx {
				continue
			}
			if c, ok := e.tryTriangleSeed(v, nb0, cand, nbs, radius); ok {
				nb1 = cand
				center = c
				break
			}
		}
		if nb1 == nil {
			continue
		}

		// A seed triangle needs every one of its edges on the front.
		if ed := e.linkingEdge(v, nb1); ed != nil && ed.typ != edgeFront {
			continue
		}
		if ed := e.linkingEdge(nb0, nb1); ed != nil && ed.typ != edgeFront {
			continue
		}
		if ed := e.linkingEdge(v, nb0); ed != nil && ed.typ != edgeFront {
			continue
		}

		e.createTriangle(v, nb0, nb1, center)

		if ed := e.linkingEdge(v, nb1); ed.typ == edgeFront {
			e.front.pushFront(ed)
		}
		if ed := e.linkingEdge(nb0, nb1); ed.typ == edgeFront {
			e.front.pushFront(ed)
		}
		if ed := e.linkingEdge(v, nb0); ed.typ == edgeFront {
			e.front.pushFront(ed)
		}

		if !e.front.empty() {
			return true
		}
	}

	return false
}

// findSeedTriangle seeds every still-orphan vertex in input index order
// and exhausts the front each time a seed takes, so a connected patch is
// fully pivoted before the scan moves on.
func (e *Engine) findSeedTriangle(radius float64) {
	for _, v := range e.vertices {
		if v.typ == vertexOrphan {
			if e.trySeed(v, radius) {
				e.expandTriangulation(radius)
			}
		}
	}
}
