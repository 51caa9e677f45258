package pivot

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ballpivot/pkg/geom"
)

// findCandidateVertex pivots the ball around ed: among the neighbors of
// the edge midpoint it picks the vertex reachable with the smallest
// rotation from the current ball position whose new ball encloses no
// other point. Returns nil when no candidate qualifies.
func (e *Engine) findCandidateVertex(ed *edge, radius float64) (*vertex, v3.Vec) {
	src := ed.source
	tgt := ed.target
	opp := ed.oppositeVertex()
	if opp == nil {
		e.debugf("[findCandidateVertex] edge (%d, %d) has no adjacent triangle", src.idx, tgt.idx)
		return nil, v3.Vec{}
	}

	mp := src.pos.Add(tgt.pos).MulScalar(0.5)
	oldCenter := ed.triangle0.ballCenter

	// Unit edge axis and unit direction to the current ball center.
	v := tgt.pos.Sub(src.pos)
	v = v.DivScalar(v.Length())
	a := oldCenter.Sub(mp)
	a = a.DivScalar(a.Length())

	nbs := e.index.RadiusSearch(mp, 2*radius)
	e.debugf("[findCandidateVertex] edge (%d, %d): %d potential candidates", src.idx, tgt.idx, len(nbs))

	var best *vertex
	var bestCenter v3.Vec
	minAngle := 2 * math.Pi

	for _, nb := range nbs {
		candidate := e.vertices[nb.Index]
		if candidate.idx == src.idx || candidate.idx == tgt.idx || candidate.idx == opp.idx {
			continue
		}

		// Reject pivots that stay in the plane of the existing triangle
		// and cut through one of its far edges.
		if geom.PointsCoplanar(src.pos, tgt.pos, opp.pos, candidate.pos) &&
			(geom.SegmentsMinDistance(mp, candidate.pos, src.pos, opp.pos) < 1e-12 ||
				geom.SegmentsMinDistance(mp, candidate.pos, tgt.pos, opp.pos) < 1e-12) {
			continue
		}

		newCenter, ok := e.ballCenter(src, tgt, candidate, radius)
		if !ok {
			continue
		}

		// Pivot angle from the old ball center to the new one, measured
		// around the oriented edge axis.
		b := newCenter.Sub(mp)
		b = b.DivScalar(b.Length())
		cosinus := math.Min(math.Max(a.Dot(b), -1), 1)
		angle := math.Acos(cosinus)
		if a.Cross(b).Dot(v) < 0 {
			angle = 2*math.Pi - angle
		}
		if angle >= minAngle {
			continue
		}

		emptyBall := true
		for _, other := range nbs {
			if other.Index == src.idx || other.Index == tgt.idx || other.Index == candidate.idx {
				continue
			}
			if newCenter.Sub(e.vertices[other.Index].pos).Length() < radius-1e-16 {
				emptyBall = false
				break
			}
		}

		if emptyBall {
			minAngle = angle
			best = candidate
			bestCenter = newCenter
		}
	}

	return best, bestCenter
}

// expandTriangulation drains the front queue, pivoting over each front
// edge. An edge with no usable candidate becomes a border edge; a
// successful pivot pushes the new triangle's front edges on top of the
// queue so expansion stays depth-first and local.
func (e *Engine) expandTriangulation(radius float64) {
	for !e.front.empty() {
		ed := e.front.popFront()
		if ed.typ != edgeFront {
			continue
		}

		candidate, center := e.findCandidateVertex(ed, radius)
		if candidate == nil ||
			candidate.typ == vertexInner ||
			!compatible(candidate, ed.source, ed.target) {
			ed.typ = edgeBorder
			e.border = append(e.border, ed)
			continue
		}

		e0 := e.linkingEdge(candidate, ed.source)
		e1 := e.linkingEdge(candidate, ed.target)
		if (e0 != nil && e0.typ != edgeFront) || (e1 != nil && e1.typ != edgeFront) {
			ed.typ = edgeBorder
			e.border = append(e.border, ed)
			continue
		}

		e.createTriangle(ed.source, ed.target, candidate, center)

		e0 = e.linkingEdge(candidate, ed.source)
		e1 = e.linkingEdge(candidate, ed.target)
		if e0.typ == edgeFront {
			e.front.pushFront(e0)
		}
		if e1.typ == edgeFront {
			e.front.pushFront(e1)
		}
	}
}
